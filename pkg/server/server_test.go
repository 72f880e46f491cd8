package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/SnippetGate/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBase() *BaseServer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := config.WithDefaults(config.Config{})
	return NewBaseServer(&cfg, logger)
}

func TestBaseServer_Liveness(t *testing.T) {
	s := newTestBase()
	s.WithHealthCheck("redis", func(context.Context) error { return errors.New("down") })
	s.setupHealthCheck()

	resp, err := s.Router.Test(httptest.NewRequest(http.MethodGet, HealthPath, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBaseServer_Readiness(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		s := newTestBase()
		s.WithHealthCheck("database", func(context.Context) error { return nil })
		s.setupHealthCheck()

		resp, err := s.Router.Test(httptest.NewRequest(http.MethodGet, AdminHealthPath, nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("failing dependency", func(t *testing.T) {
		s := newTestBase()
		s.WithHealthCheck("database", func(context.Context) error { return nil })
		s.WithHealthCheck("redis", func(context.Context) error { return errors.New("connection refused") })
		s.setupHealthCheck()

		resp, err := s.Router.Test(httptest.NewRequest(http.MethodGet, AdminHealthPath, nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "ok", body.Checks["database"])
		assert.Equal(t, "connection refused", body.Checks["redis"])
	})
}

func TestBaseServer_MetricsDisabled(t *testing.T) {
	s := newTestBase()
	s.Config.Metrics.Enabled = false
	s.setupMetricsEndpoint()
	assert.Nil(t, s.metricsApp)
}
