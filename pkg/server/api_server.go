package server

import (
	"fmt"
	"net"

	"github.com/NeuralTrust/SnippetGate/pkg/config"
	"github.com/NeuralTrust/SnippetGate/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		Config       *config.Config
		Logger       *logrus.Logger
		Routers      []router.ServerRouter
		HealthChecks map[string]HealthCheck
	}
	APIServer struct {
		*BaseServer
		routers []router.ServerRouter
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	base := NewBaseServer(di.Config, di.Logger)
	for name, check := range di.HealthChecks {
		base.WithHealthCheck(name, check)
	}
	return &APIServer{
		BaseServer: base,
		routers:    di.Routers,
	}
}

func (s *APIServer) Run() error {
	s.setupHealthCheck()
	s.WithRouters(s.routers...)
	s.setupMetricsEndpoint()

	addr := net.JoinHostPort(s.Config.Server.Host, fmt.Sprint(s.Config.Server.Port))
	s.Logger.WithField("addr", addr).Info("starting api server")
	return s.Router.Listen(addr)
}

func (s *APIServer) Shutdown() error {
	return s.shutdown()
}
