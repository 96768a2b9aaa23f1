package das

import (
	"fmt"

	"github.com/arthur-debert/das/internal/version"
	"github.com/arthur-debert/das/pkg/config"
	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/arthur-debert/das/pkg/logging"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/arthur-debert/das/pkg/session"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	groupSetup     = "setup"
	groupSelection = "selection"
	groupStash     = "stash"
	groupSync      = "sync"
	groupMisc      = "misc"
)

// app carries the global flags to every command.
type app struct {
	verbosity int
	dryRun    bool
	strict    bool
	anchor    string

	// color is the configured color mode, known once a command loads
	// its configuration
	color    string
	closeLog func()
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "das",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts := []logging.Option{logging.WithConsole(cmd.ErrOrStderr())}
			if p, err := paths.New(a.anchor); err == nil {
				opts = append(opts, logging.WithAnchor(p.Anchor()))
			}
			a.closeLog = logging.SetupLogger(a.verbosity, opts...)
			logging.LogCommand(cmd.Name(), args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&a.strict, "strict", false, MsgFlagStrict)
	rootCmd.PersistentFlags().StringVar(&a.anchor, "anchor", "", MsgFlagAnchor)

	rootCmd.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "SETUP:"},
		&cobra.Group{ID: groupSelection, Title: "SELECTION:"},
		&cobra.Group{ID: groupStash, Title: "STASH:"},
		&cobra.Group{ID: groupSync, Title: "SYNC:"},
		&cobra.Group{ID: groupMisc, Title: "MISC:"},
	)
	rootCmd.SetHelpCommandGroupID(groupMisc)
	rootCmd.SetCompletionCommandGroupID(groupMisc)

	rootCmd.AddCommand(setupCommands(a)...)
	rootCmd.AddCommand(selectionCommands(a)...)
	rootCmd.AddCommand(stashCommands(a)...)
	rootCmd.AddCommand(syncCommands(a)...)
	rootCmd.AddCommand(miscCommands(a)...)

	return rootCmd
}

// initPaths resolves the anchor and warns when none was found.
func (a *app) initPaths(cmd *cobra.Command) (paths.Paths, error) {
	p, err := paths.New(a.anchor)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.Anchor(), p.StateDir())
	}
	return p, nil
}

// loadConfig layers the global flags over the anchor configuration.
func (a *app) loadConfig(p paths.Paths) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if a.dryRun {
		overrides["reconcile.dry_run"] = true
	}
	if a.strict {
		overrides["reconcile.policy"] = reconcile.Strict.String()
	}
	return config.Load(p.ConfigPath(), overrides)
}

func (a *app) manager(cmd *cobra.Command) (*session.Manager, error) {
	p, err := a.initPaths(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := a.loadConfig(p)
	if err != nil {
		return nil, err
	}
	a.color = cfg.Output.Color
	return session.NewManager(filesystem.NewOS(), p, cfg)
}

// update runs fn in a locked, saved session.
func (a *app) update(cmd *cobra.Command, fn func(s *session.Session) error) error {
	m, err := a.manager(cmd)
	if err != nil {
		return err
	}
	return m.Update(fn)
}

// view runs fn in a read-only session.
func (a *app) view(cmd *cobra.Command, fn func(s *session.Session) error) error {
	m, err := a.manager(cmd)
	if err != nil {
		return err
	}
	return m.View(fn)
}
