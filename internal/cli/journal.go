package cli

import (
	"context"
	"fmt"

	"github.com/habit/habit/internal/config"
	"github.com/habit/habit/internal/journal/sqlite"
	"github.com/habit/habit/internal/log"
	"github.com/habit/habit/pkg/types"
)

// initJournal opens the SQLite journal from config, creating it if needed.
func initJournal(ctx context.Context, cfg *config.Config) (*sqlite.SQLiteJournal, error) {
	path := cfg.JournalPath()

	if err := config.EnsureJournalDir(path); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	store, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := store.Init(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize journal: %w", err)
	}

	return store, nil
}

// recordInvocation appends inv to the journal and enforces journal.max_entries.
func recordInvocation(ctx context.Context, cfg *config.Config, inv *types.Invocation) error {
	store, err := initJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Record(ctx, inv); err != nil {
		return err
	}

	pruned, err := store.Prune(ctx, cfg.Journal.MaxEntries)
	if err != nil {
		return err
	}

	logger := log.WithComponent(ctx, "journal")
	logger.Debug().
		Str(log.FieldPath, store.Path()).
		Str(log.FieldInvocationID, inv.ID).
		Int64(log.FieldPruned, pruned).
		Msg("invocation recorded")
	return nil
}
