package app

import (
	"context"
	"errors"
	"fmt"

	"campus-prep/internal/config"
	dbpostgres "campus-prep/internal/database/postgres"
	"campus-prep/internal/delivery/http/handler"
	"campus-prep/internal/pkg/logger"
	"campus-prep/internal/session"
	"campus-prep/internal/storage"
	"campus-prep/internal/storage/memory"
	pgstore "campus-prep/internal/storage/postgres"
	redisstore "campus-prep/internal/storage/redis"

	goredis "github.com/redis/go-redis/v9"
)

const sessionNamespace = "campusprep:"

// Container owns the backing connections and the stores built on them.
type Container struct {
	Config   config.Config
	Records  storage.Store
	Sessions *session.Store
	Checkers map[string]handler.Checker

	closers []func() error
}

func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	c := &Container{Config: cfg, Checkers: map[string]handler.Checker{}}

	var redisClient *goredis.Client
	redisConn := func() (*goredis.Client, error) {
		if redisClient != nil {
			return redisClient, nil
		}
		client, err := redisstore.Connect(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		redisClient = client
		c.closers = append(c.closers, client.Close)
		c.Checkers["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return client, nil
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		c.Records = memory.New()
	case config.DriverRedis:
		client, err := redisConn()
		if err != nil {
			return nil, c.fail(err)
		}
		c.Records = redisstore.New(client, redisstore.WithLogger(logger.With("records")))
	case config.DriverPostgres:
		pool, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, c.fail(fmt.Errorf("%w: %v", storage.ErrUnavailable, err))
		}
		c.closers = append(c.closers, pool.Close)
		c.Checkers["postgres"] = pool.Ping

		store := pgstore.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, c.fail(err)
		}
		c.Records = store
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	var sessionKV storage.Store
	switch cfg.Storage.SessionDriver {
	case config.DriverMemory:
		sessionKV = memory.New(memory.WithTTL(cfg.Storage.SessionTTL))
	case config.DriverRedis:
		client, err := redisConn()
		if err != nil {
			return nil, c.fail(err)
		}
		sessionKV = redisstore.New(client,
			redisstore.WithTTL(cfg.Storage.SessionTTL),
			redisstore.WithNamespace(sessionNamespace),
			redisstore.WithLogger(logger.With("sessions")),
		)
	default:
		return nil, c.fail(fmt.Errorf("unsupported session driver %q", cfg.Storage.SessionDriver))
	}
	c.Sessions = session.NewStore(sessionKV, session.WithLogger(logger.With("session")))

	return c, nil
}

func (c *Container) fail(err error) error {
	if cerr := c.Close(); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
