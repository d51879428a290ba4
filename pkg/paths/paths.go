// Package paths resolves the directories bongard reads from and writes to,
// following the XDG Base Directory specification.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for bongard
	EnvConfigDir = "BONGARD_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for bongard
	EnvDataDir = "BONGARD_DATA_DIR"

	// EnvStateDir overrides the XDG state directory for bongard
	EnvStateDir = "BONGARD_STATE_DIR"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "bongard"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// ProjectConfigFileName is looked up in the working directory
	ProjectConfigFileName = "bongard.toml"

	// ProblemsDirName is the default output directory inside DataDir
	ProblemsDirName = "problems"

	// LogFileName is the name of the log file
	LogFileName = "bongard.log"
)

// Paths holds the resolved base directories.
type Paths struct {
	configDir string
	dataDir   string
	stateDir  string
}

// New resolves the directories from the environment. XDG values are
// re-read so that changes made after process start are honoured.
func New() *Paths {
	xdg.Reload()
	return &Paths{
		configDir: fromEnv(EnvConfigDir, filepath.Join(xdg.ConfigHome, AppDirName)),
		dataDir:   fromEnv(EnvDataDir, filepath.Join(xdg.DataHome, AppDirName)),
		stateDir:  fromEnv(EnvStateDir, filepath.Join(xdg.StateHome, AppDirName)),
	}
}

func fromEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return ExpandHome(v)
	}
	return fallback
}

// ConfigDir is where the user configuration lives.
func (p *Paths) ConfigDir() string { return p.configDir }

// DataDir is the root of generated data.
func (p *Paths) DataDir() string { return p.dataDir }

// StateDir holds logs.
func (p *Paths) StateDir() string { return p.stateDir }

// UserConfigFile is the user-level configuration file.
func (p *Paths) UserConfigFile() string { return filepath.Join(p.configDir, ConfigFileName) }

// ProblemsDir is the default output directory.
func (p *Paths) ProblemsDir() string { return filepath.Join(p.dataDir, ProblemsDirName) }

// LogFilePath is the default log file.
func (p *Paths) LogFilePath() string { return filepath.Join(p.stateDir, LogFileName) }

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
