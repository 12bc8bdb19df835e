// Package log provides the logrus-backed diagnostics sink, persisted to a daily file under where.Logs().
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// enabled mirrors logs.write; every emission is dropped while it is false.
var enabled atomic.Bool

// Setup opens today's log file and applies the configured format and level.
// When logs.write is off nothing is opened and all emissions are discarded.
func Setup() error {
	enabled.Store(viper.GetBool(key.LogsWrite))
	if !enabled.Load() {
		logrus.SetOutput(io.Discard)
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	Reload()
	return nil
}

// Reload re-applies formatter and level from the current configuration.
func Reload() {
	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// Enabled reports whether emissions currently reach the log file.
func Enabled() bool {
	return enabled.Load()
}

func Error(args ...interface{}) {
	if enabled.Load() {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...interface{}) {
	if enabled.Load() {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled.Load() {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Infof(format, args...)
	}
}
func Debug(args ...interface{}) {
	if enabled.Load() {
		logrus.Debug(args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Debugf(format, args...)
	}
}
func Tracef(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Tracef(format, args...)
	}
}

// WithField returns an entry carrying a structured field; it is inert while logging is off.
func WithField(k string, v interface{}) *logrus.Entry {
	if !enabled.Load() {
		return logrus.NewEntry(discard)
	}
	return logrus.WithField(k, v)
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
