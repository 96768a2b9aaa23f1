package das

import (
	"fmt"

	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/session"
	"github.com/spf13/cobra"
)

func stashCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newStashCmd(a),
		newStashOpCmd(a, "unstash", []string{"set-unstash"}, MsgUnstashShort, false, (*session.Session).Unstash),
		newStashOpCmd(a, "stash-union", nil, MsgStashUnionShort, true, (*session.Session).UnionStash),
		newStashOpCmd(a, "stash-intersect", nil, MsgStashIntersectShort, true, (*session.Session).IntersectStash),
		newStashOpCmd(a, "stash-except", nil, MsgStashExceptShort, true, (*session.Session).ExceptStash),
		newStashClearCmd(a),
	}
}

func newStashCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:     "stash [key]",
		Aliases: []string{"set-stash"},
		Short:   MsgStashShort,
		GroupID: groupStash,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				if list {
					return listStash(cmd, s)
				}
				key := ""
				if len(args) == 1 {
					key = args[0]
				}
				used, err := s.Stash(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), MsgStashed, used)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, MsgFlagList)
	return cmd
}

func listStash(cmd *cobra.Command, s *session.Session) error {
	report, err := s.Status()
	if err != nil {
		return err
	}
	if len(report.Stash) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), MsgStashEmpty)
	}
	for _, e := range report.Stash {
		fmt.Fprintf(cmd.OutOrStdout(), MsgStashItem, e.Key, e.Size)
	}
	return nil
}

// newStashOpCmd wires a keyed stash operation. keyRequired commands
// refuse to guess a key.
func newStashOpCmd(a *app, use string, aliases []string, short string, keyRequired bool, op func(*session.Session, string) (pathset.PathSet, error)) *cobra.Command {
	positional := cobra.MaximumNArgs(1)
	usage := use + " [key]"
	if keyRequired {
		positional = cobra.ExactArgs(1)
		usage = use + " <key>"
	}
	return &cobra.Command{
		Use:     usage,
		Aliases: aliases,
		Short:   short,
		GroupID: groupStash,
		Args:    positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				key := ""
				if len(args) == 1 {
					key = args[0]
				}
				set, err := op(s, key)
				if err != nil {
					return err
				}
				a.printSelection(cmd, set)
				return nil
			})
		},
	}
}

func newStashClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "stash-clear",
		Short:   MsgStashClearShort,
		GroupID: groupStash,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				s.ClearStash()
				fmt.Fprintln(cmd.OutOrStdout(), MsgStashCleared)
				return nil
			})
		},
	}
}
