// Package logger wires log/slog for the game: handler selection from Config
// and an encounter ID carried through context.
package logger

import (
	"context"
	"io"
	"log/slog"
)

// ServiceName is attached to every log line.
const ServiceName = "emberwood"

type ctxKey string

const encounterIDKey ctxKey = "encounterID"

// New builds a logger writing to w according to cfg.
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler.WithAttrs(cfg.BaseAttributes()))
}

// Init builds a logger with New and installs it as the slog default.
func Init(cfg Config, w io.Writer) *slog.Logger {
	l := New(cfg, w)
	slog.SetDefault(l)
	return l
}

// WithEncounterID returns a new context containing the encounter ID.
func WithEncounterID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, encounterIDKey, id)
}

// EncounterIDFromContext extracts the encounter ID from the context, if present.
func EncounterIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(encounterIDKey).(string)
	return id, ok
}

// FromContext returns the default logger, with the encounter_id attribute
// when the context carries one.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := EncounterIDFromContext(ctx); ok {
		return slog.Default().With("encounter_id", id)
	}
	return slog.Default()
}
