package dependency_container

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/SnippetGate/pkg/app/submission"
	"github.com/NeuralTrust/SnippetGate/pkg/common"
	"github.com/NeuralTrust/SnippetGate/pkg/config"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/snippet"
	handlers "github.com/NeuralTrust/SnippetGate/pkg/handlers/http"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/cache"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/database"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/events"
	dbExporter "github.com/NeuralTrust/SnippetGate/pkg/infra/events/database"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/events/kafka"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/httpx"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/jwt"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/prometheus"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/repository"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/scanner"
	"github.com/NeuralTrust/SnippetGate/pkg/middleware"
	"github.com/NeuralTrust/SnippetGate/pkg/server"
	"github.com/NeuralTrust/SnippetGate/pkg/utils"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Scanner             *scanner.Scanner
	Limiter             *ratelimit.Limiter
	MemoryStore         *ratelimit.MemoryStore
	SnippetRepository   snippet.Repository
	Dispatcher          events.Dispatcher
	Checker             submission.Checker
	Gate                submission.Gate
	JWTManager          jwt.Manager
	HandlerTransport    *handlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
	HealthChecks        map[string]server.HealthCheck

	logger  *logrus.Logger
	cfg     *config.Config
	closers []func() error
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// Redis replaces the client built from Cfg.Redis when set.
	Redis *redis.Client
	// DB replaces the connection built from Cfg.Database when set.
	DB *database.DB
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	c := &Container{
		logger:       di.Logger,
		cfg:          cfg,
		HealthChecks: make(map[string]server.HealthCheck),
	}

	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency:   cfg.Metrics.EnableLatency,
		EnableRuleHits:  cfg.Metrics.EnableRuleHits,
		EnableProcesses: cfg.Metrics.EnableProcesses,
	})

	// scanner
	scannerOpts := []scanner.Option{
		scanner.WithWhitelistMode(cfg.Scanner.WhitelistMode),
		scanner.WithDefaultLanguage(cfg.Scanner.DefaultLanguage),
	}
	if cfg.Scanner.RulesFile != "" {
		extra, err := scanner.LoadRulesFile(cfg.Scanner.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scanner rules: %w", err)
		}
		scannerOpts = append(scannerOpts, extra...)
		di.Logger.WithField("path", cfg.Scanner.RulesFile).Info("extra scanner rules loaded")
	}
	c.Scanner = scanner.New(scannerOpts...)

	identities, err := utils.NewIdentityResolver(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server.trusted_proxies: %w", err)
	}
	if identities.TrustsAll() {
		di.Logger.Warn("no trusted proxies configured, identity headers are taken as sent")
	}

	// redis, only when the limiter is shared
	var cacheClient cache.Client
	if cfg.RateLimit.Store == config.StoreRedis {
		if di.Redis != nil {
			cacheClient = cache.NewClientFromRedis(di.Redis, common.SnippetCacheTTL)
		} else {
			var err error
			cacheClient, err = cache.NewClient(redisConfig(cfg), di.Logger)
			if err != nil {
				// The failover store serves from memory until redis answers again.
				di.Logger.WithError(err).Warn("redis unreachable at startup, limiting locally")
				cacheClient = cache.NewClientFromRedis(cache.NewRedisClient(redisConfig(cfg)), common.SnippetCacheTTL)
			}
		}
		c.addCloser(cacheClient.RedisClient().Close)
		c.HealthChecks["redis"] = cacheClient.Ping
	}

	// rate limiter
	c.MemoryStore = ratelimit.NewMemoryStore()
	var store ratelimit.Store = c.MemoryStore
	if cacheClient != nil {
		breaker := httpx.NewCircuitBreaker(httpx.BreakerSettings{
			Name:             "ratelimit-redis",
			Timeout:          cfg.RateLimit.Breaker.Timeout,
			MaxFailures:      uint32(cfg.RateLimit.Breaker.MaxFailures),
			HalfOpenRequests: uint32(cfg.RateLimit.Breaker.HalfOpenRequests),
		}, di.Logger)
		redisStore := ratelimit.NewRedisStore(cacheClient.RedisClient(), ratelimit.DefaultKeyPrefix)
		store = ratelimit.NewFailoverStore(redisStore, c.MemoryStore, breaker, di.Logger)
	}
	policy := ratelimit.Policy{
		Window:             cfg.RateLimit.Window,
		AuthenticatedLimit: cfg.RateLimit.AuthenticatedLimit,
		AnonymousLimit:     cfg.RateLimit.AnonymousLimit,
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate limit policy: %w", err)
	}
	c.Limiter = ratelimit.NewLimiter(store, policy, nil)

	// repositories
	var decisionRepo repository.DecisionRepository
	db := di.DB
	if db == nil && cfg.Database.Enabled {
		var err error
		db, err = database.NewDB(di.Logger, &database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			c.closeAll()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	if db != nil {
		c.addCloser(db.Close)
		c.HealthChecks["database"] = db.Ping
		c.SnippetRepository = repository.NewSnippetRepository(db.DB)
		decisionRepo = repository.NewDecisionRepository(db.DB)
	} else {
		di.Logger.Warn("database disabled, snippets are kept in memory")
		c.SnippetRepository = repository.NewMemorySnippetRepository()
	}
	if cacheClient != nil {
		c.SnippetRepository = repository.NewCachedSnippetRepository(
			c.SnippetRepository, cacheClient, common.SnippetCacheTTL, di.Logger,
		)
	}

	// decision events
	locator := events.NewExporterLocator(
		events.WithExporter(dbExporter.NewExporter(decisionRepo)),
		events.WithExporter(kafka.NewKafkaExporter()),
	)
	specs := make([]events.ExporterSpec, 0, len(cfg.Events.Exporters))
	for _, e := range cfg.Events.Exporters {
		specs = append(specs, events.ExporterSpec{Name: e.Name, Settings: e.Settings})
	}
	exporters, err := locator.Build(specs)
	if err != nil {
		c.closeAll()
		return nil, fmt.Errorf("failed to build decision exporters: %w", err)
	}
	c.Dispatcher = events.NewWorker(di.Logger, exporters, cfg.Events.BufferSize)

	// application
	c.Checker = submission.NewChecker(c.Scanner, cfg.Security.MaxBatchSize)
	c.Gate = submission.NewGate(di.Logger, c.Checker, c.Limiter, c.SnippetRepository, c.Dispatcher, &submission.GateOpts{
		DefaultLanguage: cfg.Scanner.DefaultLanguage,
	})
	c.JWTManager = jwt.NewJwtManager(cfg.Server.SecretKey, nil)

	expose := cfg.Security.ExposePatternDetails
	c.HandlerTransport = &handlers.HandlerTransport{
		SecurityCheckHandler:      handlers.NewSecurityCheckHandler(di.Logger, c.Checker, expose),
		BatchSecurityCheckHandler: handlers.NewBatchSecurityCheckHandler(di.Logger, c.Checker, expose),
		RateLimitCheckHandler:     handlers.NewRateLimitCheckHandler(di.Logger, c.Limiter),
		CreateSnippetHandler:      handlers.NewCreateSnippetHandler(di.Logger, c.Gate, identities, expose),
		GetSnippetHandler:         handlers.NewGetSnippetHandler(di.Logger, c.SnippetRepository, expose),
		ListRulesHandler:          handlers.NewListRulesHandler(c.Scanner),
		ResetRateLimitHandler:     handlers.NewResetRateLimitHandler(di.Logger, c.Limiter),
		GetVersionHandler:         handlers.NewGetVersionHandler(),
	}
	c.MiddlewareTransport = &middleware.Transport{
		RequestIDMiddleware:       middleware.NewRequestIDMiddleware(nil),
		PanicRecoverMiddleware:    middleware.NewPanicRecoverMiddleware(di.Logger),
		SecurityHeadersMiddleware: middleware.NewSecurityMiddleware(middleware.DefaultSecurityHeaders()),
		MetricsMiddleware:         middleware.NewMetricsMiddleware(),
		AdminAuthMiddleware:       middleware.NewAdminAuthMiddleware(di.Logger, c.JWTManager),
	}

	return c, nil
}

// Start launches the event workers and the memory store sweeper. Both stop
// when ctx is done or Close is called.
func (c *Container) Start(ctx context.Context) {
	c.Dispatcher.StartWorkers(c.cfg.Events.Workers)
	go c.MemoryStore.RunSweeper(ctx, c.cfg.RateLimit.SweepInterval, c.logger)
}

// Close drains queued decision events, then releases connections.
func (c *Container) Close() error {
	if c.Dispatcher != nil {
		c.Dispatcher.Shutdown()
	}
	return c.closeAll()
}

func (c *Container) addCloser(fn func() error) {
	c.closers = append(c.closers, fn)
}

func (c *Container) closeAll() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func redisConfig(cfg *config.Config) cache.Config {
	return cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		LocalTTL: common.SnippetCacheTTL,
	}
}
