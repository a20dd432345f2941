package firebase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-service/app/config"
	"identity-service/app/utils/logger"
)

func newDegradedClient(t *testing.T) *Client {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)

	// An unreadable credentials file makes auth client construction fail,
	// which is the degraded path.
	cfg := &config.Config{
		FirebaseProjectID:       "test-project",
		FirebaseCredentialsFile: "/nonexistent/credentials.json",
	}

	return NewClient(cfg, log)
}

func TestClient_ConstructionIsLazy(t *testing.T) {
	client := newDegradedClient(t)

	// No verification attempted yet, so the bad credentials file has not
	// been touched and the client is not degraded.
	assert.False(t, client.Degraded())
}

func TestClient_DegradedRejectsAllTokens(t *testing.T) {
	client := newDegradedClient(t)

	token, err := client.VerifyIDToken(context.Background(), "any-token")

	assert.Error(t, err)
	assert.Nil(t, token)
	assert.Contains(t, err.Error(), "identity provider degraded")
	assert.True(t, client.Degraded())
}

func TestClient_InitFailureIsSticky(t *testing.T) {
	client := newDegradedClient(t)

	_, first := client.VerifyIDToken(context.Background(), "token-1")
	_, second := client.VerifyIDToken(context.Background(), "token-2")

	assert.Error(t, first)
	assert.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
	assert.True(t, client.Degraded())
}
