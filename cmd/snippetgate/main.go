package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/SnippetGate/pkg/config"
	"github.com/NeuralTrust/SnippetGate/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/SnippetGate/pkg/infra/logger"
	"github.com/NeuralTrust/SnippetGate/pkg/server"
	"github.com/NeuralTrust/SnippetGate/pkg/server/router"
	"github.com/NeuralTrust/SnippetGate/pkg/version"
	"github.com/joho/godotenv"
)

// @title SnippetGate API
// @version 0.4.0
// @description Content security scanning and rate limiting for code snippet submissions.
// @BasePath /
func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger, logCloser, err := infraLogger.NewLogger(infraLogger.Options{
		Name:    "snippetgate",
		Console: os.Getenv("LOG_CONSOLE") != "false",
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logCloser.Close()

	if err := config.Load("../../config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	container.Start(ctx)

	srv := server.NewAPIServer(server.APIServerDI{
		Config:       cfg,
		Logger:       logger,
		Routers:      []router.ServerRouter{router.NewAPIRouter(container.MiddlewareTransport, container.HandlerTransport)},
		HealthChecks: container.HealthChecks,
	})

	logger.WithField("version", version.Version).Info("starting snippetgate")
	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	cancel()
	exitCode := 0
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		exitCode = 1
	}
	if err := container.Close(); err != nil {
		logger.WithError(err).Error("error releasing dependencies")
		exitCode = 1
	}
	fmt.Println("server gracefully stopped")
	if exitCode != 0 {
		_ = logCloser.Close()
		os.Exit(exitCode)
	}
}
