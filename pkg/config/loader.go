package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/logging"
	"github.com/arthur-debert/bongard/pkg/paths"
	"github.com/arthur-debert/bongard/pkg/pattern"
)

// EnvPrefix starts every configuration environment variable. Sections and
// keys are separated by a double underscore:
// BONGARD_GENERATION__MAX_ATTEMPTS=5000.
const EnvPrefix = "BONGARD_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// DefaultContent returns the embedded defaults file.
func DefaultContent() string {
	return string(defaultConfig)
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("pattern", validatePattern)
}

func validatePattern(fl validator.FieldLevel) bool {
	_, err := pattern.Compile(fl.Field().String())
	return err == nil
}

// Options tells Load where to look.
type Options struct {
	// File is an explicit config file. When empty, ./bongard.toml is used if present.
	File string
	// Dir is searched for the project file instead of the working directory.
	Dir string
	// Overrides are dotted keys set last, typically from flags.
	Overrides map[string]interface{}
}

// Load resolves the configuration layers in order and validates the result.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	p := paths.New()
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config
	if err := loadFileIfExists(k, p.UserConfigFile()); err != nil {
		return nil, err
	}

	// 3. Project or explicit config
	if opts.File != "" {
		path := paths.ExpandHome(opts.File)
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path).
				WithDetail("path", path)
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		if err := loadFileIfExists(k, filepath.Join(dir, paths.ProjectConfigFileName)); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = p.ProblemsDir()
	}
	cfg.Output.Dir = paths.ExpandHome(cfg.Output.Dir)
	cfg.Output.MetricsFile = paths.ExpandHome(cfg.Output.MetricsFile)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("size", cfg.Grid.Size).
		Strs("varieties", cfg.Grid.Varieties).
		Int("maxAttempts", cfg.Generation.MaxAttempts).
		Str("output", cfg.Output.Dir).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Validate checks cfg against its struct tags, then checks that the
// varieties stay distinct once converted to cell values ("1" and "01" do not).
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return validateVarietyValues(cfg.Grid)
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Namespace() + " (" + fe.Tag() + ")"
	}
	return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(fields, ", ")).
		WithDetail("fields", fields)
}

func validateVarietyValues(g Grid) error {
	seen := make(map[any]string, len(g.Varieties))
	for i, v := range g.VarietyValues() {
		if first, dup := seen[v]; dup {
			field := "Config.Grid.Varieties (unique)"
			return errors.Newf(errors.ErrConfigValid, "invalid configuration: varieties %q and %q are the same value", first, g.Varieties[i]).
				WithDetail("fields", []string{field})
		}
		seen[v] = g.Varieties[i]
	}
	return nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return loadFile(k, path)
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	logging.GetLogger("config").Debug().Str("path", path).Msg("Config file loaded")
	return nil
}
