package app

import (
	"io"

	"tiercache/internal/cache"
	"tiercache/internal/common/logging"
	"tiercache/internal/config"
	"tiercache/internal/redis"
)

// App wires configuration, the Redis adapter and the tiered cache together
// for the command line.
type App struct {
	Config *config.Config
	Logger logging.Logger
	Redis  *redis.Client
	Cache  *cache.TieredCache[any]

	out io.Writer
}

// New builds the application. cfg must already be validated. Command output
// goes to out.
func New(cfg *config.Config, logger logging.Logger, out io.Writer) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		out:    out,
	}

	var remote cache.Remote
	if redisConfig := cfg.Redis(); redisConfig != nil {
		client, err := redis.NewClient(redisConfig)
		if err != nil {
			return nil, err
		}
		app.Redis = client
		remote = client
		logger.Info("Redis: configured", logging.String("address", client.Address()))
	} else {
		logger.Info("Redis: disabled, using memory and file tiers only")
	}

	c, err := cache.New[any](cfg.Cache(), remote, cache.JSONCodec[any]{}, logger)
	if err != nil {
		app.Cleanup()
		return nil, err
	}
	app.Cache = c

	return app, nil
}

// Cleanup releases the Redis connection pool.
func (a *App) Cleanup() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("Error closing Redis client", logging.Err(err))
		}
	}
}
