package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	SnippetKeyPattern = "snippetgate:snippet:%s"
)

// ErrMiss is returned by Get when the key is absent from both layers.
var ErrMiss = errors.New("cache miss")

// Client is a two-layer cache: an in-process TTL map in front of redis.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	RedisClient() *redis.Client
	Ping(ctx context.Context) error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
	// LocalTTL bounds how long a value stays in the in-process layer.
	LocalTTL time.Duration
}

type client struct {
	redisClient *redis.Client
	local       *TTLMap
}

// NewRedisClient opens a go-redis client for the configured address.
func NewRedisClient(cfg Config) *redis.Client {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(options)
}

func NewClient(cfg Config, logger *logrus.Logger) (Client, error) {
	rdb := NewRedisClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host":  cfg.Host,
			"port":  cfg.Port,
			"error": err.Error(),
		}).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": cfg.Host,
		"port": cfg.Port,
	}).Info("redis connected successfully")

	return NewClientFromRedis(rdb, cfg.LocalTTL), nil
}

// NewClientFromRedis wraps an existing redis client, as tests do with redismock.
func NewClientFromRedis(rdb *redis.Client, localTTL time.Duration) Client {
	if localTTL <= 0 {
		localTTL = 30 * time.Second
	}
	return &client{
		redisClient: rdb,
		local:       NewTTLMap(localTTL),
	}
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	if value, ok := c.local.Get(key); ok {
		str, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("cache value error: expected string, got %T", value)
		}
		return str, nil
	}
	value, err := c.redisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	c.local.Set(key, value)
	return value, nil
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.redisClient.Set(ctx, key, value, expiration).Err(); err != nil {
		return err
	}
	c.local.Set(key, value)
	return nil
}

func (c *client) Delete(ctx context.Context, key string) error {
	c.local.Delete(key)
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}

func (c *client) Ping(ctx context.Context) error {
	return c.redisClient.Ping(ctx).Err()
}
