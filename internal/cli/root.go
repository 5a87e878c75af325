// Package cli provides the command-line interface for habit.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/habit/habit/internal/buildinfo"
	"github.com/habit/habit/internal/config"
	"github.com/habit/habit/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options holds the global flags of a single command run.
type options struct {
	cfgFile    string
	verbose    bool
	outputJSON bool
	outputYAML bool
	history    bool
}

// newRootCmd builds the habit command. No subcommands are registered: every
// command token is accepted and routed to the stub dispatcher.
func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "habit <command>",
		Short: "Habit CLI (skeleton)",
		Long: `Habit CLI (skeleton).

No commands are implemented yet. Any command is accepted and echoed back
together with its parsed arguments.

Examples:
  habit --version          # Print program name and version
  habit add                # [stub] add -> {"cmd":"add"}
  habit list --json        # Print the stub invocation as JSON
  habit --history          # List recorded invocations (journal enabled)`,
		Version:       buildinfo.Summary(),
		Args:          opts.validateArgs,
		RunE:          opts.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/habit/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&opts.outputJSON, "json", false, "print output as JSON")
	flags.BoolVar(&opts.outputYAML, "yaml", false, "print output as YAML")
	flags.BoolVar(&opts.history, "history", false, "list recorded invocations instead of running a command")

	return cmd
}

// Execute runs habit with args, writing output to stdout and diagnostics to
// stderr. Errors are reported on stderr before being returned; use ExitCode
// to turn the result into a process exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if args == nil {
		// cobra falls back to os.Args when args is nil.
		args = []string{}
	}

	cmd := newRootCmd()
	cmd.SetArgs(shieldCompletionToken(cmd.Flags(), args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprint(stderr, cmd.UsageString())
		fmt.Fprintf(stderr, "%s: error: %v\n", cmd.Name(), usageErr.Err)
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}

// shieldCompletionToken keeps cobra from routing "__complete" and
// "__completeNoDesc" to its hidden completion command. When the command
// token is one of them it is moved behind a "--" terminator, so cobra sees
// it as a plain positional argument. Other arguments keep their order.
func shieldCompletionToken(fs *pflag.FlagSet, args []string) []string {
	i := commandTokenIndex(fs, args)
	if i < 0 {
		return args
	}
	if tok := args[i]; tok != cobra.ShellCompRequestCmd && tok != cobra.ShellCompNoDescRequestCmd {
		return args
	}

	rest := args[i+1:]
	flagsPart, positional := rest, []string(nil)
	for j, a := range rest {
		if a == "--" {
			flagsPart, positional = rest[:j], rest[j+1:]
			break
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[:i]...)
	out = append(out, flagsPart...)
	out = append(out, "--", args[i])
	return append(out, positional...)
}

// commandTokenIndex returns the index of the first positional argument, or -1.
func commandTokenIndex(fs *pflag.FlagSet, args []string) int {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return -1
		case strings.HasPrefix(a, "--"):
			name := a[2:]
			if strings.Contains(name, "=") {
				continue
			}
			if f := fs.Lookup(name); f != nil && f.NoOptDefVal == "" {
				i++ // value follows
			}
		case len(a) > 1 && a[0] == '-':
			if strings.Contains(a, "=") {
				continue
			}
			if f := fs.ShorthandLookup(a[len(a)-1:]); f != nil && f.NoOptDefVal == "" {
				i++
			}
		default:
			return i
		}
	}
	return -1
}

func (o *options) validateArgs(_ *cobra.Command, args []string) error {
	if o.outputJSON && o.outputYAML {
		return usageErrorf("--json and --yaml are mutually exclusive")
	}
	if o.history {
		if len(args) > 0 {
			return usageErrorf("--history takes no command, got %q", args[0])
		}
		return nil
	}
	switch {
	case len(args) == 0:
		return usageErrorf("the following arguments are required: <command>")
	case len(args) > 1:
		return usageErrorf("unrecognized arguments: %s", strings.Join(args[1:], " "))
	}
	return nil
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.New(log.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: o.verbose,
		Output:  cmd.ErrOrStderr(),
	})
	ctx := log.WithLogger(cmd.Context(), logger)

	if o.history {
		return o.runHistory(ctx, cmd.OutOrStdout(), cfg)
	}
	return o.runStub(ctx, cmd, cfg, args[0])
}

// outputFormat returns the current output format based on flags.
func (o *options) outputFormat() string {
	if o.outputJSON {
		return "json"
	}
	if o.outputYAML {
		return "yaml"
	}
	return "default"
}
