package session

import (
	"context"
	"errors"
	"time"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store keeps one Session per chat.
type Store interface {
	// Get returns nil, nil when no live session exists for id.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Put(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

var (
	ErrInvalidStoreType = errors.New("invalid session store type")
	ErrInvalidConfig    = errors.New("invalid session store configuration")
)

type storeConfig struct {
	redisClient   *redis.Client
	ttl           time.Duration
	sweepInterval time.Duration
}

type Option func(*storeConfig)

func WithRedisClient(client *redis.Client) Option {
	return func(c *storeConfig) { c.redisClient = client }
}

// WithTTL expires sessions idle for longer than ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *storeConfig) { c.ttl = ttl }
}

func WithSweepInterval(d time.Duration) Option {
	return func(c *storeConfig) { c.sweepInterval = d }
}

// NewStore builds the driver named by storeType.
func NewStore(storeType StoreType, opts ...Option) (Store, error) {
	cfg := &storeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case StoreTypeMemory, "":
		return NewMemoryStore(cfg.ttl, cfg.sweepInterval), nil
	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return NewRedisStore(cfg.redisClient, cfg.ttl), nil
	default:
		return nil, ErrInvalidStoreType
	}
}

// clone deep-copies s so callers never share a cart slice with the store.
func clone(s *domain.Session) *domain.Session {
	c := *s
	c.Cart = s.Cart.Snapshot()
	return &c
}
