package testing

import (
	"context"
	"log/slog"
	"sync"
)

// SlogRecorder is a slog.Handler that keeps every record it handles, so that
// tests can inspect what an Operator or Store has logged
type SlogRecorder struct {
	minLevel slog.Leveler
	records  []slog.Record
	mu       sync.Mutex
}

func NewSlogRecorder() *SlogRecorder {
	var minLevel slog.LevelVar
	minLevel.Set(slog.LevelDebug)
	return &SlogRecorder{
		minLevel: &minLevel,
	}
}

// Logger returns a slog.Logger that writes to this recorder
func (h *SlogRecorder) Logger() *slog.Logger {
	return slog.New(h)
}

// Messages returns the messages logged at or above the provided level
func (h *SlogRecorder) Messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var res []string
	for _, r := range h.records {
		if r.Level >= level {
			res = append(res, r.Message)
		}
	}
	return res
}

func (h *SlogRecorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel.Level()
}

func (h *SlogRecorder) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *SlogRecorder) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *SlogRecorder) WithGroup(_ string) slog.Handler {
	return h
}
