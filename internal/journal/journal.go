// Package journal defines the storage interface for recorded invocations.
package journal

import (
	"context"

	"github.com/habit/habit/pkg/types"
)

// Journal persists stub invocations.
type Journal interface {
	// Initialize the storage (run migrations, etc.)
	Init(ctx context.Context) error

	// Close the storage connection
	Close() error

	// Record stores a single invocation.
	Record(ctx context.Context, inv *types.Invocation) error

	// List returns invocations newest first. limit <= 0 returns all of them.
	List(ctx context.Context, limit int) ([]*types.Invocation, error)

	// Prune keeps the newest keep invocations and deletes the rest.
	// keep <= 0 is a no-op.
	Prune(ctx context.Context, keep int) (int64, error)
}
