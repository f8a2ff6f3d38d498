package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenKV fails every operation, standing in for a dead backend.
type brokenKV struct {
	mu  sync.Mutex
	err error
}

func (b *brokenKV) Get(context.Context, string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return "", b.err
	}
	// Writes never reached a broken backend, so a recovered one is empty.
	return "", ErrNotFound
}

func (b *brokenKV) Set(context.Context, string, string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *brokenKV) Delete(context.Context, string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *brokenKV) Close() error { return nil }

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "k", "v"))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFallback_HealthyBackendPassesThrough(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory()
	f := NewFallback(backend, nil)

	require.NoError(t, f.Set(ctx, "k", "v"))

	got, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestFallback_DeadBackendDegradesToMemory(t *testing.T) {
	ctx := context.Background()
	f := NewFallback(&brokenKV{err: errors.New("disk full")}, nil)

	// Writes never fail the caller.
	require.NoError(t, f.Set(ctx, "k", "v"))

	// The caller still sees its own write for the process lifetime.
	got, err := f.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, f.Delete(ctx, "k"))
	_, err = f.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFallback_BackendRecoversMidSession(t *testing.T) {
	ctx := context.Background()
	backend := &brokenKV{err: errors.New("locked")}
	f := NewFallback(backend, nil)

	require.NoError(t, f.Set(ctx, "k", "v"))

	// Backend comes back but never saw the write; the mirror covers it.
	backend.mu.Lock()
	backend.err = nil
	backend.mu.Unlock()

	got, err := f.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
