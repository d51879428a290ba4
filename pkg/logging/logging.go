// Package logging configures the zerolog logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/bongard/pkg/paths"
)

// Options controls where and how much is logged.
type Options struct {
	// Verbosity: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int
	// Console receives human-readable output. Defaults to os.Stderr.
	Console io.Writer
	// NoColor disables ANSI colors on the console.
	NoColor bool
	// LogFile receives JSON lines in append mode. Empty uses the XDG state dir;
	// "-" disables the file.
	LogFile string
}

// SetupLogger configures the global logger based on verbosity level
// It sets up dual output to both console and a log file
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup configures the global logger from opts.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(levelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = getLogFilePath()
	}
	var fileErr error
	if logFile != "-" {
		var f *os.File
		f, fileErr = setupLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, f)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	// Add caller information for debug and trace levels
	if opts.Verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath returns the path to the log file
// It respects XDG_STATE_HOME if set, otherwise uses ~/.local/state/bongard/
func getLogFilePath() string {
	return paths.New().LogFilePath()
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
