package bongard

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate Bongard problems from grid rules"
	MsgGenerateShort   = "Generate one problem per rule"
	MsgRulesShort      = "List the enumerated rule descriptions"
	MsgMatchShort      = "Test a pattern against a grid"
	MsgGenConfigShort  = "Print or write the default configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default ./bongard.toml, then $XDG_CONFIG_HOME/bongard/config.toml)"
	MsgFlagDisplay     = "Display format: auto, term, text or json"
	MsgFlagOut         = "Output directory (default $XDG_DATA_HOME/bongard/problems)"
	MsgFlagFormat      = "Problem file format: json, yaml or toml"
	MsgFlagSize        = "Grid size (>= 3)"
	MsgFlagVarieties   = "Cell varieties, comma separated"
	MsgFlagSeed        = "Base random seed (0 picks one)"
	MsgFlagMaxAttempts = "Grid draws allowed per phase"
	MsgFlagWorkers     = "Concurrent generators (0 uses every CPU)"
	MsgFlagTimeout     = "Time limit per rule, e.g. 30s (0 disables)"
	MsgFlagOnly        = "Generate only this rule description (repeatable)"
	MsgFlagMetrics     = "Write Prometheus metrics to this textfile"
	MsgFlagNoClean     = "Keep earlier problem files in the output directory"
	MsgFlagPattern     = "Extra pattern rule (repeatable)"
	MsgFlagGrid        = "Grid rows separated by ';', cells by ','"
	MsgFlagWrite       = "Write the defaults to ./bongard.toml instead of stdout"
	MsgFlagUser        = "With --write, write the user config file instead"

	// Status messages
	MsgGenConfigWritten = "Default configuration written to %s"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrRuleSet    = "failed to build rule set: %w"
	MsgErrGenerate   = "failed to generate problems: %w"
	MsgErrWrite      = "failed to write problems: %w"
	MsgErrNoCommand  = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/match-long.txt
	msgMatchLongRaw string
	MsgMatchLong    = strings.TrimSpace(msgMatchLongRaw)

	//go:embed msgs/match-example.txt
	msgMatchExampleRaw string
	MsgMatchExample    = strings.TrimRight(msgMatchExampleRaw, "\n")

	//go:embed msgs/gen-config-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/gen-config-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
