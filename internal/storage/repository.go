// Package storage contains the storage-agnostic contracts used by the load
// stage: the Repository interface, a registry of backend factories keyed by
// storage kind, the per-kind DDL dialects, and a batched loader.
//
// Concrete backends live in subpackages and register themselves in init();
// importing internal/storage/all wires every built-in backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownKind is returned by New when no backend is registered for the
// requested storage kind.
var ErrUnknownKind = errors.New("unknown storage kind")

// Repository is the connection-scoped handle to a destination table.
type Repository interface {
	// Exec runs a single statement, typically DDL.
	Exec(ctx context.Context, sql string) error
	// CopyFrom bulk-inserts rows aligned to columns into the configured table
	// and returns the number of rows written.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	// CountRows returns the current row count of the configured table.
	CountRows(ctx context.Context) (int64, error)
	// Close releases the connection.
	Close()
}

// Config selects a backend and the destination table.
type Config struct {
	Kind  string
	DSN   string
	Table string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for kind. Backends call it
// from init().
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownKind, cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered storage kinds in sorted order.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
