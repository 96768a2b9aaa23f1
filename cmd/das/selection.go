package das

import (
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/session"
	"github.com/spf13/cobra"
)

func selectionCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newTokensCmd(a, "select", MsgSelectShort, (*session.Session).Select),
		newTokensCmd(a, "deselect", MsgDeselectShort, (*session.Session).Deselect),
		newSectionCmd(a, "select-base", MsgSelectBaseShort, (*session.Session).SelectBaseExclusive),
		newSectionCmd(a, "select-inter", MsgSelectInterShort, (*session.Session).SelectIntersection),
		newSectionCmd(a, "select-partner", MsgSelectPartnerShort, (*session.Session).SelectPartnerExclusive),
		newSectionCmd(a, "deselect-base", MsgDeselectBaseShort, (*session.Session).DeselectBaseExclusive),
		newSectionCmd(a, "deselect-inter", MsgDeselectInterShort, (*session.Session).DeselectIntersection),
		newSectionCmd(a, "deselect-partner", MsgDeselectPartnerShort, (*session.Session).DeselectPartnerExclusive),
		newRegexCmd(a, "select-regex", MsgSelectRegexShort, (*session.Session).KeepMatching),
		newRegexCmd(a, "deselect-regex", MsgDeselectRegexShort, (*session.Session).RemoveMatching),
		newGlobCmd(a, "select-glob", MsgSelectGlobShort, (*session.Session).KeepGlob),
		newGlobCmd(a, "deselect-glob", MsgDeselectGlobShort, (*session.Session).RemoveGlob),
		newClearCmd(a),
	}
}

// newTokensCmd prints the selection when called without paths.
func newTokensCmd(a *app, use, short string, op func(*session.Session, ...string) (pathset.PathSet, error)) *cobra.Command {
	return &cobra.Command{
		Use:     use + " [paths...]",
		Short:   short,
		Long:    MsgSelectLong,
		GroupID: groupSelection,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				set := s.Selection()
				if len(args) > 0 {
					var err error
					if set, err = op(s, args...); err != nil {
						return err
					}
				}
				a.printSelection(cmd, set)
				return nil
			})
		},
	}
}

func newSectionCmd(a *app, use, short string, op func(*session.Session) (pathset.PathSet, error)) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		GroupID: groupSelection,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				set, err := op(s)
				if err != nil {
					return err
				}
				a.printSelection(cmd, set)
				return nil
			})
		},
	}
}

func newRegexCmd(a *app, use, short string, op func(*session.Session, string, string) (pathset.PathSet, error)) *cobra.Command {
	var flags string
	cmd := &cobra.Command{
		Use:     use + " <pattern>",
		Short:   short,
		GroupID: groupSelection,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				set, err := op(s, args[0], flags)
				if err != nil {
					return err
				}
				a.printSelection(cmd, set)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&flags, "flags", "f", "", MsgFlagFlags)
	return cmd
}

func newGlobCmd(a *app, use, short string, op func(*session.Session, string) (pathset.PathSet, error)) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <glob>",
		Short:   short,
		GroupID: groupSelection,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				set, err := op(s, args[0])
				if err != nil {
					return err
				}
				a.printSelection(cmd, set)
				return nil
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Aliases: []string{"set-clear"},
		Short:   MsgClearShort,
		GroupID: groupSelection,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				a.printSelection(cmd, s.Clear())
				return nil
			})
		},
	}
}
