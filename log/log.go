// log/log.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package log wraps log/slog with rotation via lumberjack and a handful of
// nil-receiver-safe convenience methods, so every subsystem can hold a
// *Logger without special-casing "no logger configured" at each call site.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

// New creates a Logger that writes JSON lines to dir (or the user's config
// directory, under "scenerymgr", if dir is empty), rotating via lumberjack
// once the file passes maxSizeMB.
func New(level, dir string, maxSizeMB int) *Logger {
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to find user config dir: %v\n", err)
			dir = "."
		}
		dir = filepath.Join(dir, "scenerymgr")
	}
	if maxSizeMB == 0 {
		maxSizeMB = 16
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "scenerymgr.slog"),
		MaxSize:    maxSizeMB,
		MaxBackups: 2,
		MaxAge:     14,
	}

	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "":
		// default to info
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level, using info\n", level)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		Start:   time.Now(),
	}
	l.Info("session start", slog.String("GOARCH", runtime.GOARCH), slog.String("GOOS", runtime.GOOS))
	return l
}

// caller returns "file:line" for the function that called the Logger
// method two frames up (the slog wrapper's caller), letting log lines point
// at the state-machine transition that emitted them without pulling in a
// full stack-capture dependency.
func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// Debug, Info, Warn, and Error all tolerate a nil receiver so a subsystem
// constructed without a logger (tests, scripted tools) can log
// unconditionally instead of checking for nil everywhere.
func (l *Logger) Debug(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(nil, slog.LevelDebug) {
		l.Logger.Debug(msg, append([]any{slog.String("at", caller())}, args...)...)
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(nil, slog.LevelInfo) {
		l.Logger.Info(msg, append([]any{slog.String("at", caller())}, args...)...)
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	args = append([]any{slog.String("at", caller())}, args...)
	if l == nil {
		slog.Warn(msg, args...)
	} else {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...any) {
	args = append([]any{slog.String("at", caller())}, args...)
	if l == nil {
		slog.Error(msg, args...)
	} else {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{Logger: l.Logger.With(args...), LogFile: l.LogFile, Start: l.Start}
}
