// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/intake/internal/core/domain"
)

// messager is implemented by zerr errors; Message returns the text without the chain.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a Logger writing to w in the given format. A nil w means stderr.
func New(format domain.LogFormat, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := &Logger{output: w, jsonMode: format == domain.LogJSON}
	l.logger = slog.New(l.handler())
	return l
}

// SetOutput updates the output destination, keeping the current format.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.handler())
}

func (l *Logger) handler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		return slog.NewJSONHandler(l.output, opts)
	}
	return NewPrettyHandler(l.output, opts)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. In pretty mode the first message is the headline and the
// rest of the chain is listed under "Caused by".
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err, "kind", domain.Kind(err))
		return
	}

	messages := unroll(err, nil)
	var lines []string
	for i, msg := range messages {
		parts := strings.Split(msg, "\n")
		switch i {
		case 0:
			lines = append(lines, "Error: "+parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "       "+p)
			}
		default:
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "      "+p)
			}
		}
	}
	l.logger.Error(strings.Join(lines, "\n"))
}

// unroll flattens err into one message per link. Joined errors contribute
// each of their members in order.
func unroll(err error, acc []string) []string {
	for err != nil {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, member := range joined.Unwrap() {
				acc = unroll(member, acc)
			}
			return acc
		}
		m, ok := err.(messager)
		if !ok {
			return append(acc, err.Error())
		}
		acc = append(acc, m.Message())
		err = errors.Unwrap(err)
	}
	return acc
}
