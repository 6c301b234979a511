package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tiercache/internal/app"
	apperrors "tiercache/internal/common/errors"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
			return 1
		}
		return 2
	}
	return 0
}
