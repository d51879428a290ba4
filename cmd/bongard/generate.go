package bongard

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/bongard/pkg/batch"
	"github.com/arthur-debert/bongard/pkg/logging"
	"github.com/arthur-debert/bongard/pkg/metrics"
	"github.com/arthur-debert/bongard/pkg/output"
	"github.com/arthur-debert/bongard/pkg/problem"
	"github.com/arthur-debert/bongard/pkg/rules"
	"github.com/arthur-debert/bongard/pkg/ui"
)

type generateFlags struct {
	grid        gridFlags
	out         string
	format      string
	seed        uint64
	maxAttempts int
	workers     int
	timeout     time.Duration
	only        []string
	metricsFile string
	noClean     bool
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g, f)
		},
	}

	f.grid.register(cmd)
	cmd.Flags().StringVarP(&f.out, "out", "o", "", MsgFlagOut)
	cmd.Flags().StringVarP(&f.format, "format", "f", "json", MsgFlagFormat)
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, MsgFlagSeed)
	cmd.Flags().IntVar(&f.maxAttempts, "max-attempts", problem.DefaultMaxAttempts, MsgFlagMaxAttempts)
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, MsgFlagWorkers)
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, MsgFlagTimeout)
	cmd.Flags().StringArrayVar(&f.only, "only", nil, MsgFlagOnly)
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", MsgFlagMetrics)
	cmd.Flags().BoolVar(&f.noClean, "no-clean", false, MsgFlagNoClean)

	return cmd
}

func (f *generateFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	o := map[string]interface{}{}
	f.grid.overrides(cmd, o)

	changed := cmd.Flags().Changed
	if changed("out") {
		o["output.dir"] = f.out
	}
	if changed("format") {
		o["output.format"] = f.format
	}
	if changed("seed") {
		o["generation.seed"] = f.seed
	}
	if changed("max-attempts") {
		o["generation.max_attempts"] = f.maxAttempts
	}
	if changed("workers") {
		o["generation.workers"] = f.workers
	}
	if changed("timeout") {
		o["generation.timeout"] = f.timeout
	}
	if changed("only") {
		o["rules.only"] = f.only
	}
	if changed("metrics-file") {
		o["output.metrics_file"] = f.metricsFile
	}
	if changed("no-clean") {
		o["output.clean"] = !f.noClean
	}
	return o
}

func runGenerate(cmd *cobra.Command, g *globalOptions, f *generateFlags) error {
	logger := logging.GetLogger("cmd.generate")

	cfg, err := g.loadConfig(f.overrides(cmd))
	if err != nil {
		return err
	}
	set, err := ruleSet(cfg)
	if err != nil {
		return err
	}

	targets := set.All()
	if len(cfg.Rules.Only) > 0 {
		if targets, err = set.Select(cfg.Rules.Only); err != nil {
			return fmt.Errorf(MsgErrRuleSet, err)
		}
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	writer, err := output.NewWriter(output.Options{Dir: cfg.Output.Dir, Format: format, Clean: cfg.Output.Clean})
	if err != nil {
		return err
	}

	rec := metrics.New()
	runner, err := batch.NewRunner(set, batch.UniformSamplers(cfg.Grid.Size, cfg.Grid.VarietyValues()), batch.Options{
		Workers: cfg.Generation.Workers,
		Seed:    cfg.Generation.Seed,
		Timeout: cfg.Generation.Timeout,
		Problem: problem.Options{
			ExhibitSize:      problem.DefaultExhibitSize,
			IncorrectAnswers: problem.DefaultIncorrectAnswers,
			MaxAttempts:      cfg.Generation.MaxAttempts,
		},
	}, rec)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info().Int("rules", len(targets)).Str("dir", cfg.Output.Dir).Msg("Starting generation")
	res, err := runner.Run(ctx, targets)
	if err != nil {
		return fmt.Errorf(MsgErrGenerate, err)
	}

	manifest, err := writer.WriteRun(res)
	if err != nil {
		return fmt.Errorf(MsgErrWrite, err)
	}
	if cfg.Output.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return err
		}
	}

	r, err := g.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderRun(summarize(res, manifest, cfg.Output.Dir, cfg.Output.MetricsFile))
}

func summarize(res *batch.Result, m *output.Manifest, dir, metricsFile string) *ui.RunSummary {
	s := &ui.RunSummary{
		RunID:       m.RunID,
		Seed:        res.Seed,
		Dir:         dir,
		Format:      string(m.Format),
		Generated:   len(m.Problems),
		Duration:    res.Duration,
		MetricsFile: metricsFile,
	}
	for _, f := range res.Failures {
		s.Failures = append(s.Failures, ui.Failure{Rule: f.Rule, Phase: string(f.Phase), Attempts: f.Attempts})
	}
	return s
}

// describeRules lists the descriptions of rs.
func describeRules(rs []rules.Rule) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Description()
	}
	return out
}
