package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is the log file location relative to the XDG state directory
const LogFileName = "jackman/jackman.log"

// SetupLogger configures the global logger based on verbosity.
// Console output always goes to stderr; when logFile is not empty the
// same records are appended to that file as JSON.
func SetupLogger(verbosity int, logFile string) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}

	writers := []io.Writer{consoleWriter}

	var fileErr error
	if logFile != "" {
		var handle *os.File
		handle, fileErr = setupLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, handle)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// DefaultLogFile returns the log file path under XDG_STATE_HOME,
// creating its parent directory.
func DefaultLogFile() (string, error) {
	return xdg.StateFile(LogFileName)
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
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

// LogRewrite writes the final command line to w, shell-quoted so it can
// be pasted back into a terminal. The line format is stable for log greps.
func LogRewrite(w io.Writer, argv []string) {
	quoted := shellescape.QuoteCommand(argv)
	fmt.Fprintf(w, ">>> [jackman] REWRITE: %s\n", quoted)
	log.Debug().Str("argv", quoted).Msg("Rewritten command")
}

// LogPerf writes the time spent since start to w
func LogPerf(w io.Writer, start time.Time) {
	elapsed := time.Since(start)
	fmt.Fprintf(w, ">>> [jackman] PERF: %.2f ms\n", float64(elapsed.Microseconds())/1000)
	log.Debug().Dur("elapsed", elapsed).Msg("Rewrite finished")
}

// LogDuration logs the duration of an operation
func LogDuration(start time.Time, operation string) {
	log.Debug().
		Str("operation", operation).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}
