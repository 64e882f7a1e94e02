package logger_test

import (
	"context"
	"skipmark/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		quiet       bool
		debug       bool
	}{
		{
			name:        "Development Environment",
			environment: logger.DevelopmentEnvironment,
			debug:       true,
		},
		{
			name:        "Production Environment",
			environment: logger.ProductionEnvironment,
		},
		{
			name:        "Quiet Development",
			environment: logger.DevelopmentEnvironment,
			quiet:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				logger.Setup(tt.environment, tt.quiet)
			})

			ctx := context.Background()
			require.NotNil(t, logger.Get(ctx))
			require.Equal(t, tt.debug, logger.IsDebug(ctx))
		})
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	customLogger, _ := zap.NewDevelopment()

	ctxWithLogger := logger.WithLogger(ctx, customLogger)
	require.Equal(t, customLogger, logger.Get(ctxWithLogger), "Logger in context should match the one we added")
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("run_id", "abc"), zap.Int("lines", 3))
	logger.Info(ctx, "marked")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "marked", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["run_id"])
	require.EqualValues(t, 3, fields["lines"])
}

func TestLoggingFunctions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	require.Equal(t, 4, logs.Len())
	require.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	require.Equal(t, zapcore.ErrorLevel, logs.All()[3].Level)
}
