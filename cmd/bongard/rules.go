package bongard

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRulesCmd(g *globalOptions) *cobra.Command {
	var (
		grid gridFlags
		only []string
	)

	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			grid.overrides(cmd, overrides)

			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}
			set, err := ruleSet(cfg)
			if err != nil {
				return err
			}

			descriptions := set.Descriptions()
			if len(only) > 0 {
				selected, err := set.Select(only)
				if err != nil {
					return fmt.Errorf(MsgErrRuleSet, err)
				}
				descriptions = describeRules(selected)
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderRules(descriptions)
		},
	}

	grid.register(cmd)
	cmd.Flags().StringArrayVar(&only, "only", nil, MsgFlagOnly)
	return cmd
}
