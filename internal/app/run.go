// Package app is the tiercache command line.
package app

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"tiercache/internal/common/logging"
	"tiercache/internal/config"
)

// Run loads .env and the environment, then executes the command in args.
func Run(ctx context.Context, args []string) error {
	_ = godotenv.Load()

	logger, closer, err := logging.NewFromEnv()
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", err)
		return err
	}

	app, err := New(cfg, logger, os.Stdout)
	if err != nil {
		logger.Error("Failed to initialize application", err)
		return err
	}
	defer app.Cleanup()

	return app.Command().Run(ctx, args)
}
