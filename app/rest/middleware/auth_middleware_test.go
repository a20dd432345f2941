package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"identity-service/app/domain"
	mock_port "identity-service/app/mocks"
	apperrors "identity-service/app/utils/errors"
	"identity-service/app/utils/logger"
)

func newTestMiddleware(t *testing.T, authUsecase *mock_port.MockAuthUsecase, userUsecase *mock_port.MockUserUsecase) *AuthMiddleware {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)

	return NewAuthMiddleware(authUsecase, userUsecase, DefaultTokenCookieName, log)
}

func newEchoContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestExtractCredential(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*http.Request)
		expected string
	}{
		{
			name: "bearer header",
			setup: func(req *http.Request) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
			},
			expected: "header-token",
		},
		{
			name: "cookie",
			setup: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: DefaultTokenCookieName, Value: "cookie-token"})
			},
			expected: "cookie-token",
		},
		{
			name: "query parameter",
			setup: func(req *http.Request) {
				q := req.URL.Query()
				q.Set("token", "query-token")
				req.URL.RawQuery = q.Encode()
			},
			expected: "query-token",
		},
		{
			name: "header wins over cookie and query",
			setup: func(req *http.Request) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
				req.AddCookie(&http.Cookie{Name: DefaultTokenCookieName, Value: "cookie-token"})
				q := req.URL.Query()
				q.Set("token", "query-token")
				req.URL.RawQuery = q.Encode()
			},
			expected: "header-token",
		},
		{
			name: "cookie wins over query",
			setup: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: DefaultTokenCookieName, Value: "cookie-token"})
				q := req.URL.Query()
				q.Set("token", "query-token")
				req.URL.RawQuery = q.Encode()
			},
			expected: "cookie-token",
		},
		{
			name: "malformed authorization header falls through to cookie",
			setup: func(req *http.Request) {
				req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
				req.AddCookie(&http.Cookie{Name: DefaultTokenCookieName, Value: "cookie-token"})
			},
			expected: "cookie-token",
		},
		{
			name: "bearer without space is not a bearer credential",
			setup: func(req *http.Request) {
				req.Header.Set(echo.HeaderAuthorization, "Bearertoken")
			},
			expected: "",
		},
		{
			name:     "no credential",
			setup:    func(req *http.Request) {},
			expected: "",
		},
		{
			name: "empty cookie falls through to query",
			setup: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: DefaultTokenCookieName, Value: ""})
				q := req.URL.Query()
				q.Set("token", "query-token")
				req.URL.RawQuery = q.Encode()
			},
			expected: "query-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl), mock_port.NewMockUserUsecase(ctrl))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			c, _ := newEchoContext(req)

			assert.Equal(t, tt.expected, m.ExtractCredential(c))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	claim := &domain.IdentityClaim{SubjectID: "subject-123", ProviderID: "google.com"}

	t.Run("valid credential binds claim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAuth := mock_port.NewMockAuthUsecase(ctrl)
		mockAuth.EXPECT().Verify(gomock.Any(), "valid-token").Return(claim, nil)

		m := newTestMiddleware(t, mockAuth, mock_port.NewMockUserUsecase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
		c, rec := newEchoContext(req)

		err := m.RequireAuth()(func(c echo.Context) error {
			assert.Equal(t, claim, BoundClaim(c))
			return okHandler(c)
		})(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing credential answers 401", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl), mock_port.NewMockUserUsecase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, rec := newEchoContext(req)

		err := m.RequireAuth()(okHandler)(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(apperrors.ErrCodeNoCredential), body["code"])
	})

	t.Run("invalid credential answers 401, not 5xx", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAuth := mock_port.NewMockAuthUsecase(ctrl)
		mockAuth.EXPECT().Verify(gomock.Any(), "bad-token").
			Return(nil, apperrors.ErrInvalidCredential)

		m := newTestMiddleware(t, mockAuth, mock_port.NewMockUserUsecase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer bad-token")
		c, rec := newEchoContext(req)

		err := m.RequireAuth()(okHandler)(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	claim := &domain.IdentityClaim{SubjectID: "subject-123"}

	t.Run("valid credential binds claim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAuth := mock_port.NewMockAuthUsecase(ctrl)
		mockAuth.EXPECT().Verify(gomock.Any(), "valid-token").Return(claim, nil)

		m := newTestMiddleware(t, mockAuth, mock_port.NewMockUserUsecase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
		c, rec := newEchoContext(req)

		err := m.OptionalAuth()(func(c echo.Context) error {
			assert.Equal(t, claim, BoundClaim(c))
			return okHandler(c)
		})(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing credential proceeds anonymously", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl), mock_port.NewMockUserUsecase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, rec := newEchoContext(req)

		err := m.OptionalAuth()(func(c echo.Context) error {
			assert.Nil(t, BoundClaim(c))
			return okHandler(c)
		})(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid credential proceeds anonymously", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAuth := mock_port.NewMockAuthUsecase(ctrl)
		mockAuth.EXPECT().Verify(gomock.Any(), "bad-token").
			Return(nil, apperrors.ErrInvalidCredential)

		m := newTestMiddleware(t, mockAuth, mock_port.NewMockUserUsecase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer bad-token")
		c, rec := newEchoContext(req)

		err := m.OptionalAuth()(func(c echo.Context) error {
			assert.Nil(t, BoundClaim(c))
			return okHandler(c)
		})(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireUser(t *testing.T) {
	claim := &domain.IdentityClaim{SubjectID: "subject-123"}
	record := &domain.UserRecord{SubjectID: "subject-123", DisplayName: "Test User"}

	t.Run("resolves and binds record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUser := mock_port.NewMockUserUsecase(ctrl)
		mockUser.EXPECT().Resolve(gomock.Any(), claim).Return(record, nil)

		m := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl), mockUser)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, rec := newEchoContext(req)
		c.Set("identity_claim", claim)

		err := m.RequireUser()(func(c echo.Context) error {
			assert.Equal(t, record, BoundRecord(c))
			return okHandler(c)
		})(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no bound claim answers 401", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl), mock_port.NewMockUserUsecase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, rec := newEchoContext(req)

		err := m.RequireUser()(okHandler)(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unavailable store answers 503, not 401", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUser := mock_port.NewMockUserUsecase(ctrl)
		mockUser.EXPECT().Resolve(gomock.Any(), claim).
			Return(nil, apperrors.ErrPersistenceUnavailable)

		m := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl), mockUser)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, rec := newEchoContext(req)
		c.Set("identity_claim", claim)

		err := m.RequireUser()(okHandler)(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("resolution fault answers 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUser := mock_port.NewMockUserUsecase(ctrl)
		mockUser.EXPECT().Resolve(gomock.Any(), claim).
			Return(nil, apperrors.NewResolutionError(assert.AnError))

		m := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl), mockUser)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, rec := newEchoContext(req)
		c.Set("identity_claim", claim)

		err := m.RequireUser()(okHandler)(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestBoundAccessors_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newEchoContext(req)

	assert.Nil(t, BoundClaim(c))
	assert.Nil(t, BoundRecord(c))
}
