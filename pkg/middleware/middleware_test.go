package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/SnippetGate/pkg/common"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/jwt"
	jwtMocks "github.com/NeuralTrust/SnippetGate/pkg/infra/jwt/mocks"
	"github.com/NeuralTrust/SnippetGate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuthMiddleware(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	tests := []struct {
		name       string
		header     string
		setup      func(m *jwtMocks.Manager)
		wantStatus int
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			header: "Bearer bad",
			setup: func(m *jwtMocks.Manager) {
				m.On("ValidateToken", "bad").Return(nil, jwt.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer old",
			setup: func(m *jwtMocks.Manager) {
				m.On("ValidateToken", "old").Return(nil, jwt.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "non-admin role",
			header: "Bearer viewer",
			setup: func(m *jwtMocks.Manager) {
				m.On("ValidateToken", "viewer").Return(&jwt.Claims{Role: "viewer"}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "admin",
			header: "Bearer good",
			setup: func(m *jwtMocks.Manager) {
				m.On("ValidateToken", "good").Return(&jwt.Claims{Role: jwt.RoleAdmin}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := new(jwtMocks.Manager)
			if tt.setup != nil {
				tt.setup(manager)
			}

			app := fiber.New()
			app.Use(middleware.NewAdminAuthMiddleware(logger, manager).Middleware())
			app.Get("/admin", func(c *fiber.Ctx) error {
				claims, ok := c.Locals(common.ClaimsKey).(*jwt.Claims)
				if !ok || claims.Role != jwt.RoleAdmin {
					return errors.New("claims not stored")
				}
				return c.SendString("OK")
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			manager.AssertExpectations(t)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	fixed := uuid.MustParse("7b0f3b9c-6f51-4c39-9c36-8f8c9b1c7e11")
	app := fiber.New()
	app.Use(middleware.NewRequestIDMiddleware(func() uuid.UUID { return fixed }).Middleware())
	app.Get("/", func(c *fiber.Ctx) error {
		fromCtx, _ := c.UserContext().Value(common.RequestIDKey).(string)
		return c.SendString(middleware.RequestID(c) + "|" + fromCtx)
	})

	t.Run("generates an id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fixed.String(), resp.Header.Get(common.RequestIDHeader))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(common.RequestIDHeader, "abc-123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "abc-123", resp.Header.Get(common.RequestIDHeader))
	})
}

func TestPanicRecoverMiddleware(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	app := fiber.New()
	app.Use(middleware.NewPanicRecoverMiddleware(logger).Middleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSecurityMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewSecurityMiddleware(middleware.DefaultSecurityHeaders()).Middleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", resp.Header.Get("Referrer-Policy"))
	assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
}

func TestMetricsMiddleware_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewMetricsMiddleware().Middleware())
	app.Get("/api/v1/snippets/:snippet_id", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/snippets/abc", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
