package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bongard/pkg/config"
	"github.com/arthur-debert/bongard/pkg/errors"
)

// isolate points every XDG and bongard location at a fresh temp dir and
// returns it.
func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	for _, name := range []string{
		"BONGARD_CONFIG_DIR", "BONGARD_DATA_DIR", "BONGARD_STATE_DIR",
		"BONGARD_GRID__SIZE", "BONGARD_GRID__VARIETIES",
		"BONGARD_GENERATION__MAX_ATTEMPTS", "BONGARD_GENERATION__SEED",
		"BONGARD_OUTPUT__FORMAT", "BONGARD_OUTPUT__DIR",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return base
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	base := isolate(t)

	cfg, err := config.Load(config.Options{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Grid.Size)
	assert.Equal(t, []string{"1", "2", "3"}, cfg.Grid.Varieties)
	assert.Equal(t, []any{1, 2, 3}, cfg.Grid.VarietyValues())
	assert.Equal(t, 200000, cfg.Generation.MaxAttempts)
	assert.Equal(t, 0, cfg.Generation.Workers)
	assert.Equal(t, uint64(0), cfg.Generation.Seed)
	assert.Equal(t, time.Duration(0), cfg.Generation.Timeout)
	assert.Equal(t, filepath.Join(base, "data", "bongard", "problems"), cfg.Output.Dir)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Clean)
	assert.Empty(t, cfg.Rules.Patterns)
	assert.Empty(t, cfg.Rules.Only)
}

func TestLoad_Layers(t *testing.T) {
	base := isolate(t)
	project := t.TempDir()

	write(t, filepath.Join(base, "config", "bongard", "config.toml"), `
[grid]
size = 4
varieties = ["a", "b"]

[generation]
max_attempts = 1000
`)
	write(t, filepath.Join(project, "bongard.toml"), `
[generation]
max_attempts = 2000
timeout = "30s"

[rules]
patterns = ["(?a)>(R1,?a)"]
`)
	t.Setenv("BONGARD_GENERATION__SEED", "42")
	t.Setenv("BONGARD_OUTPUT__FORMAT", "yaml")

	cfg, err := config.Load(config.Options{
		Dir:       project,
		Overrides: map[string]interface{}{"generation.workers": 3, "output.format": "toml"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Grid.Size, "user file")
	assert.Equal(t, []any{"a", "b"}, cfg.Grid.VarietyValues())
	assert.Equal(t, 2000, cfg.Generation.MaxAttempts, "project file beats user file")
	assert.Equal(t, 30*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, uint64(42), cfg.Generation.Seed, "environment")
	assert.Equal(t, 3, cfg.Generation.Workers, "override")
	assert.Equal(t, "toml", cfg.Output.Format, "override beats environment")

	pats, err := cfg.Rules.CompiledPatterns()
	require.NoError(t, err)
	require.Len(t, pats, 1)
	assert.Equal(t, "(?a)>(R1,?a)", pats[0].String())
}

func TestLoad_ExplicitYAMLFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	write(t, path, "grid:\n  size: 5\noutput:\n  dir: /tmp/bongard-out\n")

	cfg, err := config.Load(config.Options{File: path})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Grid.Size)
	assert.Equal(t, "/tmp/bongard-out", cfg.Output.Dir)
}

func TestLoad_EnvSlice(t *testing.T) {
	isolate(t)
	t.Setenv("BONGARD_GRID__VARIETIES", "x,y,z")

	cfg, err := config.Load(config.Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, cfg.Grid.Varieties)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		project string
		file    string
		code    errors.ErrorCode
	}{
		{"size below minimum", "[grid]\nsize = 2\n", "", errors.ErrConfigValid},
		{"single variety", "[grid]\nvarieties = [\"1\"]\n", "", errors.ErrConfigValid},
		{"duplicate varieties", "[grid]\nvarieties = [\"1\", \"1\"]\n", "", errors.ErrConfigValid},
		{"varieties equal as ints", "[grid]\nvarieties = [\"1\", \"01\"]\n", "", errors.ErrConfigValid},
		{"signed variety equal as int", "[grid]\nvarieties = [\"+1\", \"1\", \"2\"]\n", "", errors.ErrConfigValid},
		{"zero attempts", "[generation]\nmax_attempts = 0\n", "", errors.ErrConfigValid},
		{"negative workers", "[generation]\nworkers = -1\n", "", errors.ErrConfigValid},
		{"bad format", "[output]\nformat = \"xml\"\n", "", errors.ErrConfigValid},
		{"bad pattern", "[rules]\npatterns = [\"(R1,?1)\"]\n", "", errors.ErrConfigValid},
		{"malformed toml", "[grid\n", "", errors.ErrConfigLoad},
		{"missing explicit file", "", "does-not-exist.toml", errors.ErrConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()
			if tt.project != "" {
				write(t, filepath.Join(dir, "bongard.toml"), tt.project)
			}
			opts := config.Options{Dir: dir}
			if tt.file != "" {
				opts.File = filepath.Join(dir, tt.file)
			}

			_, err := config.Load(opts)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestValidate_ReportsFields(t *testing.T) {
	err := config.Validate(&config.Config{
		Grid:       config.Grid{Size: 1, Varieties: []string{"1", "2"}},
		Generation: config.Generation{MaxAttempts: 1},
		Output:     config.Output{Dir: "out", Format: "json"},
	})
	require.Error(t, err)
	fields, ok := errors.GetErrorDetails(err)["fields"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"Config.Grid.Size (gte)"}, fields)
}

func TestValidate_VarietiesDistinctAfterConversion(t *testing.T) {
	base := config.Config{
		Generation: config.Generation{MaxAttempts: 1},
		Output:     config.Output{Dir: "out", Format: "json"},
	}

	dup := base
	dup.Grid = config.Grid{Size: 3, Varieties: []string{"1", "01", "2"}}
	err := config.Validate(&dup)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Equal(t, []string{"Config.Grid.Varieties (unique)"}, errors.GetErrorDetails(err)["fields"])

	words := base
	words.Grid = config.Grid{Size: 3, Varieties: []string{"1", "01", "a"}}
	assert.NoError(t, config.Validate(&words), "strings stay as written when not all are ints")
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, config.DefaultContent(), "max_attempts = 200000")
}
