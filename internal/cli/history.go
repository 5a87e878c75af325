package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/habit/habit/internal/config"
	"github.com/habit/habit/internal/log"
	"github.com/habit/habit/pkg/types"
	"github.com/olekukonko/tablewriter"
)

// runHistory lists journal entries newest first.
func (o *options) runHistory(ctx context.Context, w io.Writer, cfg *config.Config) error {
	invocations, err := loadHistory(ctx, cfg)
	if err != nil {
		return err
	}

	if invocations == nil {
		invocations = []*types.Invocation{}
	}
	if ok, err := o.printFormatted(w, invocations); ok {
		return err
	}

	if len(invocations) == 0 {
		_, err := fmt.Fprintln(w, "No invocations recorded.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Command", "Flags", "Version", "Recorded"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, inv := range invocations {
		table.Append([]string{
			shortID(inv.ID),
			truncate(inv.Cmd, 30),
			formatFlags(inv.Flags),
			inv.Version,
			inv.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
	return nil
}

// loadHistory reads the journal without creating it when it does not exist yet.
func loadHistory(ctx context.Context, cfg *config.Config) ([]*types.Invocation, error) {
	path := cfg.JournalPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger := log.WithComponent(ctx, "journal")
		logger.Debug().Str(log.FieldPath, path).Msg("journal does not exist")
		return nil, nil
	}

	store, err := initJournal(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.List(ctx, cfg.Journal.HistoryLimit)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func formatFlags(flags map[string]string) string {
	if len(flags) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, "--"+k+"="+flags[k])
	}
	return strings.Join(parts, " ")
}
