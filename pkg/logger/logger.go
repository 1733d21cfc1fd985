// Package logger provides the process-wide log file used by every command.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger = zap.NewNop()
	logFile      *lumberjack.Logger
	mu           sync.Mutex
)

// Options controls the log file.
type Options struct {
	Path       string // Log file path
	Level      string // debug, info, warn, error
	MaxSizeMB  int    // Rotate after this many megabytes
	MaxBackups int    // Rotated files to keep
}

// Init initializes the global logger writing JSON lines to opts.Path.
func Init(opts Options) error {
	if opts.Path == "" {
		return fmt.Errorf("log file path is required")
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil || opts.Level == "" {
		level.SetLevel(zap.InfoLevel)
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	// Fail early on an unwritable path; lumberjack would only report it on
	// the first write.
	f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	f.Close()

	writer := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	logFile = writer
	globalLogger = New(zapcore.AddSync(writer), level)
	return nil
}

// New builds a JSON logger on an arbitrary writer. Tests use it with a buffer.
func New(w zapcore.WriteSyncer, level zapcore.LevelEnabler) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), w, level)
	return zap.New(core).Named("flowdigest")
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	_ = globalLogger.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	globalLogger = zap.NewNop()
}

// L returns the global logger for structured logging.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return globalLogger
}

// SetForTest replaces the global logger and returns a restore function.
func SetForTest(l *zap.Logger) func() {
	mu.Lock()
	prev := globalLogger
	globalLogger = l
	mu.Unlock()
	return func() {
		mu.Lock()
		globalLogger = prev
		mu.Unlock()
	}
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	L().Sugar().Infof(format, v...)
}

// Debug logs a debug message.
func Debug(format string, v ...interface{}) {
	L().Sugar().Debugf(format, v...)
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	L().Sugar().Errorf(format, v...)
}

// Warn logs a warning message.
func Warn(format string, v ...interface{}) {
	L().Sugar().Warnf(format, v...)
}
