package dependency_container

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NeuralTrust/SnippetGate/pkg/config"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/response"
	"github.com/NeuralTrust/SnippetGate/pkg/server/router"
	"github.com/go-redis/redismock/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.WithDefaults(config.Config{})
	cfg.Metrics.EnableProcesses = false
	cfg.Server.SecretKey = "test-secret"
	return &cfg
}

func newTestContainer(t *testing.T, di ContainerDI) *Container {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	di.Logger = logger
	if di.Cfg == nil {
		di.Cfg = testConfig()
	}
	c, err := NewContainer(di)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	t.Cleanup(func() {
		cancel()
		require.NoError(t, c.Close())
	})
	return c
}

func TestNewContainer_MemoryWiring(t *testing.T) {
	c := newTestContainer(t, ContainerDI{})

	assert.True(t, c.HandlerTransport.Complete())
	assert.NotNil(t, c.MiddlewareTransport.AdminAuthMiddleware)
	assert.Empty(t, c.HealthChecks)
	assert.Equal(t, 5, c.Limiter.Policy().AnonymousLimit)
	assert.Equal(t, 3, c.Limiter.Policy().AuthenticatedLimit)
}

func TestNewContainer_SubmitAndRead(t *testing.T) {
	c := newTestContainer(t, ContainerDI{})

	app := fiber.New()
	require.NoError(t, router.NewAPIRouter(c.MiddlewareTransport, c.HandlerTransport).BuildRoutes(app))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/snippets",
		strings.NewReader(`{"title":"hello","description":"greeting","code":"console.log('hi')","language":"javascript"}`))
	req.Header.Set("X-User-ID", "42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var created response.SnippetOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, 0, created.RiskScore)

	getResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/snippets/"+created.ID.String(), nil))
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	adminResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/admin/rules", nil))
	require.NoError(t, err)
	defer adminResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, adminResp.StatusCode)
}

func TestNewContainer_AdminTokenFromJWTManager(t *testing.T) {
	c := newTestContainer(t, ContainerDI{})

	app := fiber.New()
	require.NoError(t, router.NewAPIRouter(c.MiddlewareTransport, c.HandlerTransport).BuildRoutes(app))

	token, err := c.JWTManager.CreateToken("ops", "admin", 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rules", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewContainer_RateLimitCheckCannotDrainAnotherIdentity(t *testing.T) {
	c := newTestContainer(t, ContainerDI{})

	app := fiber.New()
	require.NoError(t, router.NewAPIRouter(c.MiddlewareTransport, c.HandlerTransport).BuildRoutes(app))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/rate-limits/check",
			strings.NewReader(`{"key":"user:alice","is_authenticated":true}`))
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/snippets",
		strings.NewReader(`{"title":"hello","description":"greeting","code":"console.log('hi')","language":"javascript"}`))
	req.Header.Set("X-User-ID", "alice")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Remaining"))
}

func TestNewContainer_RedisWiring(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Store = config.StoreRedis
	rdb, _ := redismock.NewClientMock()

	c := newTestContainer(t, ContainerDI{Cfg: cfg, Redis: rdb})
	assert.Contains(t, c.HealthChecks, "redis")
}

func TestNewContainer_UnknownExporter(t *testing.T) {
	cfg := testConfig()
	cfg.Events.Exporters = []config.ExporterConfig{{Name: "carrier-pigeon"}}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	_, err := NewContainer(ContainerDI{Cfg: cfg, Logger: logger})
	assert.Error(t, err)
}

func TestNewContainer_DatabaseExporterNeedsDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.Events.Exporters = []config.ExporterConfig{{Name: "database"}}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	_, err := NewContainer(ContainerDI{Cfg: cfg, Logger: logger})
	assert.Error(t, err)
}
