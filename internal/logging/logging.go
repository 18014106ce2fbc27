// internal/logging/logging.go
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	logFile *os.File
	logger  = zap.NewNop()
)

// Init configures the package logger. Output always goes to stdout and is
// additionally appended to logPath when it is non-empty. debug lowers the
// level so outbound request traces are emitted.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logger.Sync()
		_ = logFile.Close()
		logFile = nil
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		sinks = append(sinks, zapcore.AddSync(logFile))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	logger = zap.New(core)
	return nil
}

// Close flushes the logger and releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
	logger = zap.NewNop()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// L returns the current logger. It is a no-op logger until Init is called.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// SetLogger replaces the package logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// LogEvent logs a formatted informational message.
func LogEvent(format string, args ...any) {
	L().Info(fmt.Sprintf(format, args...))
}

// Warn logs msg at warn level with structured fields.
func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

// Debug logs msg at debug level with structured fields.
func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}

// LogRequest records one side of an HTTP exchange at debug level. A zero
// status is omitted; extra carries per-call fields such as the body size.
func LogRequest(direction, method, url string, status int, extra ...zap.Field) {
	fields := requestFields(direction, method, url, status)
	L().Debug("http "+fields[0].String, append(fields, extra...)...)
}

func requestFields(direction, method, url string, status int) []zap.Field {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = "GET"
	}
	url = strings.TrimSpace(url)
	if url == "" {
		url = "unknown"
	}
	fields := []zap.Field{
		zap.String("direction", strings.ToLower(strings.TrimSpace(direction))),
		zap.String("method", method),
		zap.String("url", url),
	}
	if status > 0 {
		fields = append(fields, zap.Int("status", status))
	}
	return fields
}
