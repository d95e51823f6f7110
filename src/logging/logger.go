// Package logging provides the leveled logging helpers used across the tool.
// Output goes through a zap logger writing to stderr.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var level = zap.NewAtomicLevelAt(LevelInfo)

var base atomic.Pointer[zap.Logger]

func init() {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), level)
	base.Store(zap.New(core))
}

// ParseLevel maps debug|info|warn|error to a level.
func ParseLevel(s string) (LogLevel, error) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, err := ParseLevel(s)
	if err != nil {
		return
	}
	level.SetLevel(l)
}

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel { return level.Level() }

// SetCore replaces the output core and returns a function restoring the previous logger.
// The global level still gates what reaches the core.
func SetCore(core zapcore.Core) (restore func()) {
	prev := base.Load()
	gated, err := zapcore.NewIncreaseLevelCore(core, level)
	if err != nil {
		gated = core
	}
	base.Store(zap.New(gated))
	return func() { base.Store(prev) }
}

// Sync flushes buffered output.
func Sync() { _ = base.Load().Sync() }

func logf(l LogLevel, format string, args ...interface{}) {
	if !level.Enabled(l) {
		return
	}
	// Without args the input is a finished message; formatting it again would
	// mangle literal % characters.
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	base.Load().Log(l, msg)
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
