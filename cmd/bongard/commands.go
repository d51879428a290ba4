// Package bongard wires the bongard command line.
package bongard

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/bongard/internal/version"
	"github.com/arthur-debert/bongard/pkg/config"
	"github.com/arthur-debert/bongard/pkg/logging"
	"github.com/arthur-debert/bongard/pkg/rules"
	"github.com/arthur-debert/bongard/pkg/topics"
	"github.com/arthur-debert/bongard/pkg/ui"
)

//go:embed topics
var topicFiles embed.FS

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	configFile string
	display    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "bongard",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.display, "display", "auto", MsgFlagDisplay)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newMatchCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func installTopics(root *cobra.Command) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	tm, err := topics.New(sub, topics.Options{Renderer: topics.NewGlamourRenderer()})
	if err != nil {
		return err
	}
	tm.Install(root)
	return nil
}

// ReportError prints a failed run's error. With --display json the error is
// a JSON document on stdout, otherwise a red line on stderr.
func ReportError(root *cobra.Command, err error) {
	display, _ := root.PersistentFlags().GetString("display")
	if format, perr := ui.ParseFormat(display); perr == nil && format == ui.FormatJSON {
		if r, rerr := ui.NewRenderer(ui.FormatJSON, root.OutOrStdout()); rerr == nil && r.RenderError(err) == nil {
			return
		}
	}
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	fmt.Fprintln(root.ErrOrStderr(), errorStyle.Render(fmt.Sprintf("Error: %v", err)))
}

func (o *globalOptions) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	cfg, err := config.Load(config.Options{File: o.configFile, Overrides: overrides})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

func (o *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.display)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// ruleSet enumerates the standard rules for cfg plus its pattern rules.
func ruleSet(cfg *config.Config) (*rules.Set, error) {
	patterns, err := cfg.Rules.CompiledPatterns()
	if err != nil {
		return nil, fmt.Errorf(MsgErrRuleSet, err)
	}
	set, err := rules.Standard(cfg.Grid.Size, cfg.Grid.VarietyValues(), patterns...)
	if err != nil {
		return nil, fmt.Errorf(MsgErrRuleSet, err)
	}
	return set, nil
}

// gridFlags registers the flags that shape the rule set and records the
// ones set on the command line as config overrides.
type gridFlags struct {
	size      int
	varieties []string
	patterns  []string
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.size, "size", 3, MsgFlagSize)
	cmd.Flags().StringSliceVar(&f.varieties, "varieties", nil, MsgFlagVarieties)
	cmd.Flags().StringArrayVar(&f.patterns, "pattern", nil, MsgFlagPattern)
}

func (f *gridFlags) overrides(cmd *cobra.Command, into map[string]interface{}) {
	if cmd.Flags().Changed("size") {
		into["grid.size"] = f.size
	}
	if cmd.Flags().Changed("varieties") {
		into["grid.varieties"] = f.varieties
	}
	if cmd.Flags().Changed("pattern") {
		into["rules.patterns"] = f.patterns
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
