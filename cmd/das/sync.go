package das

import (
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/arthur-debert/das/pkg/session"
	"github.com/spf13/cobra"
)

type verb func(*session.Session, pathset.PathSet) (*reconcile.Result, error)

func syncCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newVerbCmd(a, "push", []string{"copy-to", "cpt"}, MsgPushShort, (*session.Session).CopyTo),
		newVerbCmd(a, "pull", []string{"copy-from", "cpf"}, MsgPullShort, (*session.Session).CopyFrom),
		newVerbCmd(a, "give", []string{"move-to", "mvt"}, MsgGiveShort, (*session.Session).MoveTo),
		newVerbCmd(a, "take", []string{"move-from", "mvf"}, MsgTakeShort, (*session.Session).MoveFrom),
		newVerbCmd(a, "rmb", []string{"remove", "rmf"}, MsgRemoveBaseShort, (*session.Session).RemoveAtBase),
		newVerbCmd(a, "rmp", []string{"remove-at", "rmt"}, MsgRemovePartShort, (*session.Session).RemoveAtPartner),
		newVerbCmd(a, "touch-base", nil, MsgTouchBaseShort, (*session.Session).TouchBase),
		newVerbCmd(a, "touch-partner", nil, MsgTouchPartnerShort, (*session.Session).TouchPartner),
		newBackupCmd(a, "backup", MsgBackupShort, (*session.Session).Backup),
		newBackupCmd(a, "restore", MsgRestoreShort, (*session.Session).Restore),
	}
}

func newVerbCmd(a *app, use string, aliases []string, short string, run verb) *cobra.Command {
	return &cobra.Command{
		Use:     use + " [paths...]",
		Aliases: aliases,
		Short:   short,
		Long:    MsgSyncLong,
		GroupID: groupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				set, err := s.Targets(args...)
				if err != nil {
					return err
				}
				res, err := run(s, set)
				if err != nil {
					return err
				}
				a.printResult(cmd, res)
				return nil
			})
		},
	}
}

func newBackupCmd(a *app, use, short string, run func(*session.Session, pathset.PathSet, string) (*reconcile.Result, error)) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     use + " [paths...]",
		Short:   short,
		Long:    MsgSyncLong,
		GroupID: groupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session.Session) error {
				set, err := s.Targets(args...)
				if err != nil {
					return err
				}
				res, err := run(s, set, dir)
				if err != nil {
					return err
				}
				a.printResult(cmd, res)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", MsgFlagDir)
	return cmd
}
