// Package main provides the CLI entrypoint for skipmark.
// It loads configuration, initializes logging and runs the mark command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"skipmark/pkg/logger"
	"skipmark/pkg/serrors"
	"syscall"

	"go.uber.org/zap"
)

// main executes the root command and turns its error into an exit status.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	err := newRootCommand().ExecuteContext(ctx)
	cancel()
	if err != nil {
		logger.Error(ctx, "skipmark failed", zap.String("kind", kindName(err)), zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "skipmark:", err) //nolint: forbidigo
		os.Exit(serrors.ExitCode(err))            //nolint: gocritic
	}
}

// kindName names the semantic kind of err for logging, "UNKNOWN" if none.
func kindName(err error) string {
	if k := serrors.KindOf(err); k != nil {
		return k.Error()
	}

	return "UNKNOWN"
}
