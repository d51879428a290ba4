package bongard

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/bongard/pkg/config"
	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/paths"
)

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var write, user bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
				return err
			}

			target := paths.ProjectConfigFileName
			if user {
				target = paths.New().UserConfigFile()
			}
			if err := writeDefaultConfig(target); err != nil {
				return err
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf(MsgGenConfigWritten, target))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&user, "user", false, MsgFlagUser)
	return cmd
}

// writeDefaultConfig refuses to replace an existing file.
func writeDefaultConfig(target string) error {
	if _, err := os.Stat(target); err == nil {
		return errors.Newf(errors.ErrFileWrite, "%s already exists", target).WithDetail("path", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(target))
	}
	if err := os.WriteFile(target, []byte(config.DefaultContent()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target).WithDetail("path", target)
	}
	return nil
}
