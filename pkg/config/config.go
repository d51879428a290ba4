package config

import (
	"strconv"
	"time"

	"github.com/arthur-debert/bongard/pkg/pattern"
)

// Config is the resolved configuration.
type Config struct {
	Grid       Grid       `koanf:"grid"`
	Generation Generation `koanf:"generation"`
	Output     Output     `koanf:"output"`
	Rules      Rules      `koanf:"rules"`
}

// Grid describes the random grids drawn.
type Grid struct {
	Size      int      `koanf:"size" validate:"gte=3"`
	Varieties []string `koanf:"varieties" validate:"min=2,unique,dive,required"`
}

// Generation bounds the search.
type Generation struct {
	MaxAttempts int           `koanf:"max_attempts" validate:"gt=0"`
	Workers     int           `koanf:"workers" validate:"gte=0"`
	Seed        uint64        `koanf:"seed"`
	Timeout     time.Duration `koanf:"timeout" validate:"gte=0"`
}

// Output controls where problems go.
type Output struct {
	Dir         string `koanf:"dir" validate:"required"`
	Format      string `koanf:"format" validate:"oneof=json yaml yml toml"`
	Clean       bool   `koanf:"clean"`
	MetricsFile string `koanf:"metrics_file"`
}

// Rules selects and extends the rule set.
type Rules struct {
	Patterns []string `koanf:"patterns" validate:"dive,pattern"`
	Only     []string `koanf:"only" validate:"dive,required"`
}

// VarietyValues returns the varieties as grid cell values. When every
// variety is a decimal integer they become ints, otherwise they stay strings.
func (g Grid) VarietyValues() []any {
	ints := make([]any, 0, len(g.Varieties))
	for _, v := range g.Varieties {
		n, err := strconv.Atoi(v)
		if err != nil {
			break
		}
		ints = append(ints, n)
	}
	if len(ints) == len(g.Varieties) {
		return ints
	}

	out := make([]any, len(g.Varieties))
	for i, v := range g.Varieties {
		out[i] = v
	}
	return out
}

// CompiledPatterns compiles Rules.Patterns. Load has already validated them.
func (r Rules) CompiledPatterns() ([]*pattern.Pattern, error) {
	out := make([]*pattern.Pattern, 0, len(r.Patterns))
	for _, src := range r.Patterns {
		p, err := pattern.Compile(src)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
