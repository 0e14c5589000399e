// Package store provides the key-value persistence backends used by the board.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Keys under which the board persists its collections.
const (
	KeyNotices     = "ag_notices"
	KeyEvents      = "ag_events"
	KeyUsers       = "ag_users"
	KeyCurrentUser = "ag_current_user"
)

// ErrNotFound is returned by Read when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Backend is a flat key-value store holding JSON documents.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Erase(ctx context.Context, key string) error
	Has(ctx context.Context, key string) bool
}

// Watcher is implemented by backends that can report out-of-band changes,
// for example another process editing the same data directory.
type Watcher interface {
	Watch(ctx context.Context, log zerolog.Logger) (<-chan Event, error)
}

// Load builds the Backend selected by cfg.
func Load(cfg Config) (Backend, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}
	switch cfg.Backend() {
	case BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		r, err := NewRedis(cfg.Redis())
		if err != nil {
			return nil, fmt.Errorf("store: connect redis: %w", err)
		}
		return r, nil
	case "", BackendDiskv:
		d, err := NewDiskv(cfg.BasePath())
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errors.New("store: unknown backend " + cfg.Backend())
	}
}
