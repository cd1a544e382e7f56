// Package cli implements the projector command line. Without a subcommand
// it launches the TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"projector/internal/auth"
	"projector/internal/config"
	"projector/internal/events"
	"projector/internal/logs"
	"projector/internal/tui"
	"projector/internal/workspace"
)

// Options replaces the pieces of the CLI that touch the outside world.
type Options struct {
	// Open loads a workspace for cfg. Defaults to workspace.Open.
	Open func(cfg *config.Config) (*workspace.Workspace, error)
	// RunTUI runs the interactive UI. Defaults to tui.Run.
	RunTUI func(ctx context.Context, ws *workspace.Workspace) error
	// SkipLogs leaves the logger untouched.
	SkipLogs bool
}

type app struct {
	opts  Options
	flags config.CLIFlags
	cfg   *config.Config
}

// NewRootCmd builds the command tree with production defaults.
func NewRootCmd() *cobra.Command {
	return newRootCmd(Options{})
}

func newRootCmd(opts Options) *cobra.Command {
	if opts.Open == nil {
		opts.Open = workspace.Open
	}
	if opts.RunTUI == nil {
		opts.RunTUI = tui.Run
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "projector",
		Short: "Personal productivity dashboard for the terminal",
		Long: `projector - tasks, goals, notes, agenda and activity in one place.

Running projector without a subcommand launches the interactive TUI.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.DataDir, "data-dir", "", "Data directory")
	pf.StringVar(&a.flags.Backend, "backend", "", "Storage backend: file, sqlite or memory")
	pf.StringVar(&a.flags.DefaultView, "view", "", "Initial TUI route, e.g. /goals")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.taskCmd(),
		a.trendingCmd(),
		a.workCmd(),
		a.goalCmd(),
		a.noteCmd(),
		a.eventCmd(),
		a.activityCmd(),
		a.mentionsCmd(),
		a.statsCmd(),
		a.galleryCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	if a.opts.SkipLogs {
		return nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := logs.Initialize(cfg.DataDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize logger: %v\n", err)
	}
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigFile(); err != nil {
		logs.Logger.Warnw("could not create config file", "error", err)
	}
	ws, err := a.opts.Open(a.cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	logs.Logger.Infow("starting TUI", "view", a.cfg.DefaultView)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return a.opts.RunTUI(ctx, ws)
}

// withWorkspace opens the workspace for one command and echoes the
// notifications services raise while it runs.
func (a *app) withWorkspace(fn func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ws, err := a.opts.Open(a.cfg)
		if err != nil {
			return err
		}
		defer ws.Close()

		stop := events.On(ws.Bus, func(n events.Notification) {
			prefix := ""
			if n.Variant == events.VariantDestructive {
				prefix = "! "
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s%s: %s\n", prefix, n.Title, n.Description)
		})
		defer stop()
		return fn(cmd, args, ws)
	}
}

// authed is withWorkspace for commands that need a signed-in user.
func (a *app) authed(fn func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error) func(*cobra.Command, []string) error {
	return a.withWorkspace(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
		if _, err := ws.Session.Require(); err != nil {
			if errors.Is(err, auth.ErrNotAuthenticated) {
				return fmt.Errorf("%w: run \"projector login <email>\" first", err)
			}
			return err
		}
		return fn(cmd, args, ws)
	})
}

// resolveID finds the single item whose id equals partial or starts with it.
// Prefixes shorter than four characters must match exactly.
func resolveID[T any](items []T, idOf func(T) string, partial, noun string) (T, error) {
	var matches []T
	for _, it := range items {
		if idOf(it) == partial {
			return it, nil
		}
	}
	for _, it := range items {
		if len(partial) >= 4 && strings.HasPrefix(idOf(it), partial) {
			matches = append(matches, it)
		}
	}
	var zero T
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("no %s found with ID: %s", noun, partial)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("multiple %ss match ID '%s', please be more specific", noun, partial)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
