package bongard

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/grid"
	"github.com/arthur-debert/bongard/pkg/match"
	"github.com/arthur-debert/bongard/pkg/pattern"
	"github.com/arthur-debert/bongard/pkg/ui"
)

func newMatchCmd(g *globalOptions) *cobra.Command {
	var gridSpec string

	cmd := &cobra.Command{
		Use:     "match --grid ROWS PATTERN",
		Short:   MsgMatchShort,
		Long:    MsgMatchLong,
		Example: MsgMatchExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gr, err := parseGrid(gridSpec)
			if err != nil {
				return err
			}
			p, err := pattern.Compile(args[0])
			if err != nil {
				return err
			}

			res := &ui.MatchResult{Pattern: p.String(), Grid: gr.String()}
			if start, ok := match.Find(gr, p); ok {
				res.Matched = true
				res.Col, res.Row = start.Col, start.Row
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderMatch(res)
		},
	}

	cmd.Flags().StringVarP(&gridSpec, "grid", "g", "", MsgFlagGrid)
	_ = cmd.MarkFlagRequired("grid")
	return cmd
}

// parseGrid reads "1,2,3;4,5,6;7,8,9". Cells become ints when every cell
// is a decimal integer, strings otherwise.
func parseGrid(spec string) (*grid.Grid, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New(errors.ErrInvalidInput, "grid is empty")
	}

	rows := strings.Split(spec, ";")
	cells := make([][]string, len(rows))
	allInts := true
	for r, row := range rows {
		for _, c := range strings.Split(row, ",") {
			c = strings.TrimSpace(c)
			if _, err := strconv.Atoi(c); err != nil {
				allInts = false
			}
			cells[r] = append(cells[r], c)
		}
	}

	values := make([][]any, len(cells))
	for r, row := range cells {
		values[r] = make([]any, len(row))
		for c, v := range row {
			if allInts {
				n, _ := strconv.Atoi(v)
				values[r][c] = n
			} else {
				values[r][c] = v
			}
		}
	}
	return grid.New(values, len(values))
}
