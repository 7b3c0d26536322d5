package logger

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"jan-server/services/qa-api/internal/config"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// New creates a zerolog.Logger configured for the QA service.
func New(cfg *config.Config) zerolog.Logger {
	level := parseLevel(cfg.LogLevel)
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	base := log.Output(output).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger().
		Level(level)
	return base
}

// WithRequest scopes a component logger to the request carried by ctx.
func WithRequest(ctx context.Context, base zerolog.Logger) *zerolog.Logger {
	requestID := platformerrors.RequestIDFromContext(ctx)
	if requestID != "" {
		base = base.With().Str("request_id", requestID).Logger()
	}
	return &base
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
