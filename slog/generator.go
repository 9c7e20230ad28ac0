package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ghostpen/ghostpen"
)

// Ensure LoggingGenerator implements ghostpen.Generator.
var _ ghostpen.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with call logging. Prompt contents are
// never logged, only sizes.
type LoggingGenerator struct {
	next   ghostpen.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next ghostpen.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) Generate(ctx context.Context, system, user string) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("model generate",
			"system_len", len(system),
			"user_len", len(user),
			"output_len", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, system, user)
}
