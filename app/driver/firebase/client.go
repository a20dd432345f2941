package firebase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"identity-service/app/config"
)

// Client wraps the Firebase Admin SDK auth client. Initialization is lazy
// and happens at most once per process: the first verification attempt
// performs it, concurrent first uses race safely through sync.Once. When
// initialization fails the client stays up in a degraded state and answers
// every verification with an error instead of panicking, so request
// handling keeps working (fail closed).
type Client struct {
	cfg      *config.Config
	logger   *slog.Logger
	initOnce sync.Once
	authAPI  *auth.Client
	initErr  error
	degraded atomic.Bool
}

// NewClient creates a new Firebase client wrapper. No network calls are made
// here; the SDK client is built on first use.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger.With("component", "firebase_client"),
	}
}

// ensureInit initializes the SDK client exactly once. Re-entry is a no-op.
func (c *Client) ensureInit(ctx context.Context) error {
	c.initOnce.Do(func() {
		fbConfig := &firebase.Config{
			ProjectID: c.cfg.FirebaseProjectID,
		}

		var opts []option.ClientOption
		if c.cfg.FirebaseCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(c.cfg.FirebaseCredentialsFile))
		}

		app, err := firebase.NewApp(ctx, fbConfig, opts...)
		if err != nil {
			c.initErr = fmt.Errorf("failed to initialize firebase app: %w", err)
			c.degraded.Store(true)
			c.logger.Warn("authentication degraded: firebase initialization failed, all verifications will be rejected",
				"project_id", c.cfg.FirebaseProjectID,
				"error", err)
			return
		}

		authAPI, err := app.Auth(ctx)
		if err != nil {
			c.initErr = fmt.Errorf("failed to initialize firebase auth client: %w", err)
			c.degraded.Store(true)
			c.logger.Warn("authentication degraded: firebase auth client initialization failed, all verifications will be rejected",
				"project_id", c.cfg.FirebaseProjectID,
				"error", err)
			return
		}

		c.authAPI = authAPI
		c.logger.Info("firebase client initialized", "project_id", c.cfg.FirebaseProjectID)
	})

	return c.initErr
}

// VerifyIDToken verifies a raw ID token against Firebase and returns the
// decoded token. While the client is degraded every token is rejected.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if err := c.ensureInit(ctx); err != nil {
		return nil, fmt.Errorf("identity provider degraded: %w", err)
	}

	return c.authAPI.VerifyIDToken(ctx, idToken)
}

// Degraded reports whether initialization failed. False until first use.
func (c *Client) Degraded() bool {
	return c.degraded.Load()
}
