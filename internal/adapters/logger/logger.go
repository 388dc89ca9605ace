// Package logger implements a logging adapter using go.uber.org/zap.
package logger

import (
	"io"
	"os"
	"sync"

	"go.trai.ch/wbuild/internal/core/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger implements ports.Logger using zap.
type Logger struct {
	logger *zap.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing human-readable lines to stderr.
func New() ports.Logger {
	return &Logger{
		logger: zap.New(newCore(os.Stderr)),
	}
}

func newCore(w io.Writer) zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), zapcore.InfoLevel)
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = zap.New(newCore(w))
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

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", zap.Error(err))
}
