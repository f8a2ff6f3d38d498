package store

import (
	"context"
	"errors"
	"log/slog"
)

// Fallback wraps a durable backend and mirrors every write in memory.
// When the backend errors (file unwritable, quota, redis down), callers
// still see their own writes for the rest of the process lifetime —
// the system degrades to session-only persistence instead of crashing.
type Fallback struct {
	backend KV
	mirror  *Memory
	log     *slog.Logger
}

func NewFallback(backend KV, log *slog.Logger) *Fallback {
	if log == nil {
		log = slog.Default()
	}
	return &Fallback{
		backend: backend,
		mirror:  NewMemory(),
		log:     log,
	}
}

func (f *Fallback) Get(ctx context.Context, key string) (string, error) {
	value, err := f.backend.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if errors.Is(err, ErrNotFound) {
		// The backend is healthy but has no such key; a mirrored write
		// that never reached it may still hold the value.
		return f.mirror.Get(ctx, key)
	}
	f.log.Warn("store read failed, serving from memory", "key", key, "error", err)
	return f.mirror.Get(ctx, key)
}

func (f *Fallback) Set(ctx context.Context, key, value string) error {
	_ = f.mirror.Set(ctx, key, value)
	if err := f.backend.Set(ctx, key, value); err != nil {
		f.log.Warn("store write failed, kept in memory only", "key", key, "error", err)
	}
	return nil
}

func (f *Fallback) Delete(ctx context.Context, key string) error {
	_ = f.mirror.Delete(ctx, key)
	if err := f.backend.Delete(ctx, key); err != nil {
		f.log.Warn("store delete failed", "key", key, "error", err)
	}
	return nil
}

func (f *Fallback) Close() error {
	return f.backend.Close()
}
