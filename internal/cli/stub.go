package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/habit/habit/internal/buildinfo"
	"github.com/habit/habit/internal/config"
	"github.com/habit/habit/internal/log"
	"github.com/habit/habit/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runStub echoes the parsed arguments of a command that has no handler.
func (o *options) runStub(ctx context.Context, cmd *cobra.Command, cfg *config.Config, name string) error {
	inv := &types.Invocation{
		ID:        uuid.NewString(),
		Cmd:       name,
		Flags:     explicitFlags(cmd.Flags()),
		Version:   buildinfo.Summary(),
		Status:    types.StatusStub,
		CreatedAt: time.Now().UTC(),
	}

	logger := log.WithComponent(ctx, "stub")
	logger.Debug().
		Str(log.FieldCommand, inv.Cmd).
		Str(log.FieldInvocationID, inv.ID).
		Msg("no handler registered, echoing parsed arguments")

	if cfg.Journal.Enabled {
		if err := recordInvocation(ctx, cfg, inv); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if ok, err := o.printFormatted(w, inv); ok {
		return err
	}

	parsed, err := compactJSON(inv.Args())
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	_, err = fmt.Fprintf(w, "[stub] %s -> %s\n", inv.Cmd, parsed)
	return err
}

// explicitFlags returns the flags set on the command line, or nil if none were.
func explicitFlags(fs *pflag.FlagSet) map[string]string {
	var out map[string]string
	fs.Visit(func(f *pflag.Flag) {
		if out == nil {
			out = make(map[string]string)
		}
		out[f.Name] = f.Value.String()
	})
	return out
}
