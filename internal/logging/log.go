// internal/logging/log.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package logging provides the run-scoped structured logger shared by every
// SkyWatch component: a *slog.Logger bolted onto a rotating file sink,
// threaded through constructors rather than kept as ambient package state.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// probeWritable confirms dir exists (creating it if missing) and that a file
// can be opened there, so a bad -log-dir fails at startup instead of on
// lumberjack's first deferred write.
func probeWritable(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	return f.Close()
}

// Logger wraps *slog.Logger with the run's log file location and start time.
type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

// New opens "<dir>/<runID>_skywatch_log.txt" as an append-only, rotating,
// human-readable sink named by run identity (§4.6/§6) and returns a Logger
// at the given level ("debug", "info",
// "warn", "error"). A failure to open the sink is fatal to startup, matching
// original_source/main.cpp's perror-then-exit handling of its own log file
// open; the caller must check err before using the scheduler.
func New(runID, dir, level string) (*Logger, error) {
	if dir == "" {
		dir = "."
	}

	filename := filepath.Join(dir, runID+"_skywatch_log.txt")
	if err := probeWritable(filename); err != nil {
		return nil, err
	}

	w := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    16, // MB
		MaxBackups: 3,
		Compress:   true,
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
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level, using info\n", level)
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		Start:   time.Now(),
	}

	l.Info("run started", slog.String("run_id", runID), slog.Time("start", l.Start))
	return l, nil
}

// Debug logs at debug level, tolerating a nil receiver.
func (l *Logger) Debug(msg string, args ...any) {
	if l != nil {
		l.Logger.Debug(msg, args...)
	}
}

func (l *Logger) Debugf(msg string, args ...any) {
	if l != nil {
		l.Logger.Debug(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil {
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l != nil {
		l.Logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		slog.Warn(msg, args...)
		return
	}
	l.Logger.Warn(msg, args...)
}

func (l *Logger) Warnf(msg string, args ...any) {
	if l == nil {
		slog.Warn(fmt.Sprintf(msg, args...))
		return
	}
	l.Logger.Warn(fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		slog.Error(msg, args...)
		return
	}
	l.Logger.Error(msg, args...)
}

func (l *Logger) Errorf(msg string, args ...any) {
	if l == nil {
		slog.Error(fmt.Sprintf(msg, args...))
		return
	}
	l.Logger.Error(fmt.Sprintf(msg, args...))
}

// With returns a Logger whose handler carries the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		Start:   l.Start,
	}
}
