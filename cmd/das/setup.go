package das

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/arthur-debert/das/pkg/session"
	"github.com/arthur-debert/das/pkg/status"
	"github.com/arthur-debert/das/pkg/types"
	"github.com/spf13/cobra"
)

func setupCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(a),
		newStatusCmd(a),
		newModeCmd(a, "stateful", MsgStatefulShort, true),
		newModeCmd(a, "stateless", MsgStatelessShort, false),
		newHandleCmd(a, types.BaseName, "b", MsgBaseShort),
		newHandleCmd(a, types.PartnerName, "p", MsgPartnerShort),
		newAliasCmd(a),
		newAliasClearCmd(a),
		newScopeCmd(a),
	}
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "init [dir]",
		Aliases: []string{"i"},
		Short:   MsgInitShort,
		GroupID: groupSetup,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.anchor
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = cwd
			}
			dir, err := paths.NormalizePath(dir)
			if err != nil {
				return err
			}

			fs := filesystem.NewOS()
			anchorDir := filepath.Join(dir, paths.AnchorDirName)
			isDir, err := filesystem.IsDir(fs, anchorDir)
			if err != nil {
				return err
			}
			if isDir {
				fmt.Fprintf(cmd.OutOrStdout(), MsgInitExists, dir)
				return nil
			}
			if err := fs.MkdirAll(anchorDir, 0755); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgInitDone, dir)
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: groupSetup,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session.Session) error {
				report, err := s.Status()
				if err != nil {
					return err
				}
				return status.Render(cmd.OutOrStdout(), report, a.styles(cmd))
			})
		},
	}
}

func newModeCmd(a *app, use, short string, stateful bool) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		GroupID: groupSetup,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				s.SetStateful(stateful)
				fmt.Fprintf(cmd.OutOrStdout(), MsgModeSet, use)
				return nil
			})
		},
	}
}

// newHandleCmd sets base or partner, or prints it without an argument.
func newHandleCmd(a *app, name, alias, short string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " [path|alias]",
		Aliases: []string{alias},
		Short:   short,
		GroupID: groupSetup,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				var dir types.Directory
				if len(args) == 0 {
					dir = s.Base()
					if name == types.PartnerName {
						dir = s.Partner()
					}
				} else {
					var err error
					if name == types.BaseName {
						dir, err = s.SetBase(args[0])
					} else {
						dir, err = s.SetPartner(args[0])
					}
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), MsgHandleSet, name, dir.Path)
				return nil
			})
		},
	}
}

func newAliasCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:     "alias [name [path]]",
		Aliases: []string{"a"},
		Short:   MsgAliasShort,
		GroupID: groupSetup,
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				if list || len(args) == 0 {
					names, aliases := s.Aliases()
					if len(names) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), MsgNoAliases)
					}
					for _, n := range names {
						fmt.Fprintf(cmd.OutOrStdout(), MsgAliasItem, n, aliases[n])
					}
					return nil
				}

				target := ""
				if len(args) == 2 {
					target = args[1]
				}
				path, err := s.SetAlias(args[0], target)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), MsgAliasSet, args[0], path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, MsgFlagList)
	return cmd
}

func newAliasClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "alias-clear",
		Short:   MsgAliasClearShort,
		GroupID: groupSetup,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				s.ClearAliases()
				return nil
			})
		},
	}
}

func newScopeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "scope [path]",
		Short:   MsgScopeShort,
		GroupID: groupSetup,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				scope := s.Scope()
				if len(args) == 1 {
					var err error
					if scope, err = s.SetScope(args[0]); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), MsgScopeSet, scope)
				return nil
			})
		},
	}
}
