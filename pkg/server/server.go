package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/config"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/prometheus"
	"github.com/NeuralTrust/SnippetGate/pkg/server/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	HealthPath      = "/health"
	AdminHealthPath = "/__/health"

	healthCheckTimeout = 2 * time.Second
	shutdownTimeout    = 10 * time.Second
)

// Server interface defines the common behavior for all servers
type Server interface {
	Run() error
	Shutdown() error
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type BaseServer struct {
	Config       *config.Config
	Logger       *logrus.Logger
	Router       *fiber.App
	healthChecks map[string]HealthCheck
	metricsApp   *fiber.App
}

func NewBaseServer(cfg *config.Config, logger *logrus.Logger) *BaseServer {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Network:               fiber.NetworkTCP,
		BodyLimit:             4 * 1024 * 1024,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
	})
	r.Server().NoDefaultServerHeader = true

	return &BaseServer{
		Config:       cfg,
		Logger:       logger,
		Router:       r,
		healthChecks: make(map[string]HealthCheck),
	}
}

// WithHealthCheck registers a dependency probed by the readiness endpoint.
func (s *BaseServer) WithHealthCheck(name string, check HealthCheck) *BaseServer {
	s.healthChecks[name] = check
	return s
}

// setupHealthCheck adds liveness and readiness endpoints. Liveness never
// touches dependencies; readiness answers 503 when any check fails.
func (s *BaseServer) setupHealthCheck() {
	s.Router.Get(HealthPath, func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	s.Router.Get(AdminHealthPath, func(ctx *fiber.Ctx) error {
		checkCtx, cancel := context.WithTimeout(ctx.UserContext(), healthCheckTimeout)
		defer cancel()

		status := fiber.StatusOK
		results := make(map[string]string, len(s.healthChecks))
		for name, check := range s.healthChecks {
			if err := check(checkCtx); err != nil {
				s.Logger.WithError(err).WithField("dependency", name).Warn("health check failed")
				results[name] = err.Error()
				status = fiber.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		state := "ok"
		if status != fiber.StatusOK {
			state = "degraded"
		}
		return ctx.Status(status).JSON(fiber.Map{
			"status": state,
			"checks": results,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

func (s *BaseServer) WithRouters(routers ...router.ServerRouter) *BaseServer {
	for _, r := range routers {
		if err := r.BuildRoutes(s.Router); err != nil {
			s.Logger.WithError(err).Error("failed to build routes")
		}
	}
	return s
}

func (s *BaseServer) setupMetricsEndpoint() {
	if !s.Config.Metrics.Enabled {
		s.Logger.Info("prometheus metrics are disabled by configuration")
		return
	}
	if s.metricsApp != nil {
		return
	}

	s.metricsApp = fiber.New(fiber.Config{DisableStartupMessage: true})
	s.metricsApp.Use(recover.New())

	handler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(prometheus.Gatherer(), promhttp.HandlerOpts{}),
	)
	s.metricsApp.Get("/metrics", func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})

	addr := net.JoinHostPort(s.Config.Server.Host, fmt.Sprint(s.Config.Server.MetricsPort))
	go func() {
		if err := s.metricsApp.Listen(addr); err != nil {
			if !strings.Contains(err.Error(), "address already in use") {
				s.Logger.WithError(err).Error("failed to start metrics server")
			}
		}
	}()
	s.Logger.WithField("addr", addr).Info("metrics server started")
}

func (s *BaseServer) shutdown() error {
	var errs []error
	if s.metricsApp != nil {
		errs = append(errs, s.metricsApp.ShutdownWithTimeout(shutdownTimeout))
	}
	errs = append(errs, s.Router.ShutdownWithTimeout(shutdownTimeout))
	return errors.Join(errs...)
}
