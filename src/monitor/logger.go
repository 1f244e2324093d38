package monitor

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// baseLogger carries the global level; zerolog drops events below it.
var baseLogger = newLogger(os.Stderr, false).Level(zerolog.InfoLevel)

func newLogger(w io.Writer, noColor bool) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "2006-01-02 15:04:05.000"}
	return zerolog.New(cw).With().Timestamp().Logger()
}

// SetOutput redirects log output without terminal colors (used by tests to capture into a buffer).
// The current level is kept.
func SetOutput(w io.Writer) { baseLogger = newLogger(w, true).Level(baseLogger.GetLevel()) }

// SetLogLevel sets the global log level from debug, info, warn (or warning) and error.
// Other names are ignored.
func SetLogLevel(s string) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil || l < zerolog.DebugLevel || l > zerolog.ErrorLevel {
		return
	}
	baseLogger = baseLogger.Level(l)
}

// GetLogLevel returns current global log level.
func GetLogLevel() zerolog.Level { return baseLogger.GetLevel() }

func logf(ev *zerolog.Event, format string, args ...interface{}) {
	if !ev.Enabled() {
		return
	}
	// Plain message when there are no args, so literal % in preformatted strings survives.
	if len(args) == 0 {
		ev.Msg(format)
		return
	}
	ev.Msg(fmt.Sprintf(format, args...))
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(baseLogger.Debug(), format, a...) }
func Infof(format string, a ...interface{})  { logf(baseLogger.Info(), format, a...) }
func Warnf(format string, a ...interface{})  { logf(baseLogger.Warn(), format, a...) }
func Errorf(format string, a ...interface{}) { logf(baseLogger.Error(), format, a...) }

// Timing helper for phases.
func TimeTrack(start time.Time, label string) {
	dur := time.Since(start)
	Debugf("%s took %s", label, dur)
}
