// Package logging sets up the zerolog logger shared by every das package.
//
// Lines go to the console at the chosen verbosity and, in full, to a log
// file under the XDG state directory. Commands tag the logger with the
// session anchor, and reconciliation verbs with their operation name, so
// the log file can be read back per session and per verb.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field names shared by the das loggers.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldAnchor    = "anchor"
)

type options struct {
	console io.Writer
	logFile string
	fields  map[string]string
}

// Option adjusts SetupLogger.
type Option func(*options)

// WithConsole replaces stderr as the console output.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.console = w
	}
}

// WithLogFile sets the log file. Empty disables it.
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// WithAnchor tags every line with the session anchor.
func WithAnchor(anchor string) Option {
	return func(o *options) {
		if anchor != "" {
			o.fields[FieldAnchor] = anchor
		}
	}
}

// LevelFor maps the -v count to a level: warn, info, debug, then trace.
func LevelFor(verbosity int) zerolog.Level {
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

// SetupLogger installs the global logger for one das invocation and
// returns a function that closes the log file.
//
// The console only shows lines at the verbosity level. The log file
// always records debug and above, so a failed run can be inspected
// without rerunning it with -vv.
func SetupLogger(verbosity int, opts ...Option) func() {
	o := &options{
		console: os.Stderr,
		logFile: defaultLogFile(),
		fields:  map[string]string{},
	}
	for _, opt := range opts {
		opt(o)
	}

	level := LevelFor(verbosity)
	fileLevel := zerolog.DebugLevel
	if level < fileLevel {
		fileLevel = level
	}
	zerolog.SetGlobalLevel(fileLevel)

	console := zerolog.ConsoleWriter{
		Out:        o.console,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	writers := []io.Writer{levelWriter{Writer: console, min: level}}

	closer := func() {}
	file, fileErr := openLogFile(o.logFile)
	if file != nil {
		writers = append(writers, file)
		closer = func() { _ = file.Close() }
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	for key, value := range o.fields {
		ctx = ctx.Str(key, value)
	}
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", o.logFile).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", o.logFile).Msg("Logger initialized")
	return closer
}

// levelWriter drops lines below min before they reach the console.
type levelWriter struct {
	io.Writer
	min zerolog.Level
}

func (w levelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < w.min {
		return len(p), nil
	}
	return w.Write(p)
}

// GetLogger returns the global logger tagged with a component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str(FieldComponent, name).Logger()
}

// defaultLogFile is $XDG_STATE_HOME/das/das.log, read from the
// environment at call time.
func defaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "das.log"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "das", "das.log")
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogCommand records a command invocation.
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// Operation tags logger with an operation name and logs its start. The
// returned function logs completion with the duration; pass it the
// address of the caller's error so failures are logged with it.
func Operation(logger zerolog.Logger, name string) (zerolog.Logger, func(*error)) {
	start := time.Now()
	logger = logger.With().Str(FieldOperation, name).Logger()
	logger.Debug().Msg("Operation started")

	return logger, func(errp *error) {
		event := logger.Debug()
		if errp != nil && *errp != nil {
			event = event.Err(*errp)
		}
		event.Dur("duration", time.Since(start)).Msg("Operation completed")
	}
}
