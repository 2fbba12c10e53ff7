package meshedit

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Logger is the diagnostics sink shared by modules. The scene package only
// needs the Debugf and Warnf subset.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel uint8

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

func (lv logLevel) String() string {
	switch lv {
	case levelDebug:
		return "DEBUG"
	case levelInfo:
		return "INFO"
	case levelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// DefaultLogger writes "[prefix] LEVEL: message" lines. Debug and info go to
// the regular stream, warnings and errors to the error stream.
type DefaultLogger struct {
	debug  atomic.Bool
	tag    string
	stdout *log.Logger
	stderr *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return newDefaultLogger(prefix, debug, log.New(os.Stdout, "", flags), log.New(os.Stderr, "", flags))
}

// NewWriterLogger sends every level to w, without timestamps.
func NewWriterLogger(w io.Writer, prefix string, debug bool) *DefaultLogger {
	l := log.New(w, "", 0)
	return newDefaultLogger(prefix, debug, l, l)
}

func newDefaultLogger(prefix string, debug bool, stdout, stderr *log.Logger) *DefaultLogger {
	l := &DefaultLogger{stdout: stdout, stderr: stderr}
	if prefix != "" {
		l.tag = "[" + prefix + "] "
	}
	l.debug.Store(debug)
	return l
}

func (l *DefaultLogger) DebugEnabled() bool    { return l.debug.Load() }
func (l *DefaultLogger) SetDebug(enabled bool) { l.debug.Store(enabled) }

func (l *DefaultLogger) logf(lv logLevel, format string, args ...any) {
	if lv == levelDebug && !l.DebugEnabled() {
		return
	}
	out := l.stdout
	if lv >= levelWarn {
		out = l.stderr
	}
	out.Print(l.tag + lv.String() + ": " + fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.logf(levelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.logf(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.logf(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.logf(levelError, format, args...) }

// LoggingModule installs a DefaultLogger resource. Install it before the
// modules whose diagnostics it should collect.
type LoggingModule struct {
	Prefix string
	Debug  bool
	// Output replaces stdout and stderr when set.
	Output io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	var l *DefaultLogger
	if m.Output != nil {
		l = NewWriterLogger(m.Output, m.Prefix, m.Debug)
	} else {
		l = NewDefaultLogger(m.Prefix, m.Debug)
	}
	cmd.AddResources(l)
	l.Debugf("logging installed")
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Logger returns the installed logger, or a no-op logger. Never nil.
func (app *App) Logger() Logger {
	if l, ok := Resource[DefaultLogger](app); ok {
		return l
	}
	return NewNopLogger()
}
