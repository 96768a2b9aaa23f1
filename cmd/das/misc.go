package das

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/das/internal/version"
	"github.com/arthur-debert/das/pkg/config"
	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/spf13/cobra"
)

func miscCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newGenConfigCmd(a),
		newVersionCmd(),
	}
}

func newGenConfigCmd(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		GroupID: groupMisc,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.initPaths(cmd)
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig(p)
			if err != nil {
				return err
			}

			if !write {
				content, err := config.Generate(cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			fs := filesystem.NewOS()
			exists, err := filesystem.Exists(fs, p.ConfigPath())
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf(MsgErrConfigFile, p.ConfigPath())
			}
			content, err := config.GenerateCommented(cfg)
			if err != nil {
				return err
			}
			if err := fs.MkdirAll(filepath.Dir(p.ConfigPath()), 0755); err != nil {
				return err
			}
			if err := fs.WriteFile(p.ConfigPath(), []byte(content), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, p.ConfigPath())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: groupMisc,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
