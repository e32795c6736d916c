package logging

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	EnvLogLevel = "PKGENDER_LOG_LEVEL"
	EnvJSONLog  = "PKGENDER_JSON_LOG"

	DefaultLevel = "info"
)

// Options configures NewLoggerWithOptions
type Options struct {
	Name   string
	Level  string
	JSON   bool
	Output io.Writer // Defaults to os.Stderr
}

// NewLogger creates a new hclog logger with standard settings. JSON output is
// enabled by PKGENDER_JSON_LOG=1.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return NewLoggerWithOptions(Options{
		Name:   name,
		Level:  level,
		JSON:   os.Getenv(EnvJSONLog) == "1",
		Output: output,
	})
}

// NewLoggerWithOptions creates a logger from explicit options
func NewLoggerWithOptions(opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	// Text output gets a prefix (ASCII on Windows consoles)
	if !opts.JSON {
		prefix := "🎒 "
		if runtime.GOOS == "windows" {
			prefix = "[PKG] "
		}
		output = NewPrefixWriter(prefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      hclog.LevelFromString(opts.Level),
		JSONFormat: opts.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ResolveLevel picks the log level: debug flag, explicit flag value,
// PKGENDER_LOG_LEVEL, config value, then DefaultLevel.
func ResolveLevel(debug bool, flagLevel, configLevel string) string {
	if debug {
		return "debug"
	}
	for _, level := range []string{flagLevel, os.Getenv(EnvLogLevel), configLevel} {
		level = strings.TrimSpace(level)
		if level != "" && hclog.LevelFromString(level) != hclog.NoLevel {
			return strings.ToLower(level)
		}
	}
	return DefaultLevel
}
