package utils

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	ShowRaylibInfo bool
	ShowDebugUI    bool

	logMu sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	sugar = newLogger(level).Sugar()
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}

// ParseLogLevel accepts debug, info, warn/warning and error, case-insensitively.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning", "":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", s)
}

func newLogger(lvl zap.AtomicLevel) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

	config := zap.Config{
		Level:            lvl,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// SetLevel changes the minimum level of the shared logger.
func SetLevel(l LogLevel) {
	level.SetLevel(l.zapLevel())
	DebugMode = l == LevelDebug
}

// CurrentLevel reports the minimum level of the shared logger.
func CurrentLevel() LogLevel {
	switch level.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.InfoLevel:
		return LevelInfo
	case zapcore.WarnLevel:
		return LevelWarn
	}
	return LevelError
}

// SetLogger replaces the shared logger. The previous logger is synced.
func SetLogger(logger *zap.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	_ = sugar.Sync()
	sugar = logger.Sugar()
}

// Logger returns the shared structured logger for callers that want fields.
func Logger() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return sugar.Desugar()
}

// Sync flushes buffered log entries.
func Sync() {
	logMu.RLock()
	defer logMu.RUnlock()
	_ = sugar.Sync()
}

func current() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	return sugar
}

func Info(format string, v ...interface{})  { current().Infof(format, v...) }
func Debug(format string, v ...interface{}) { current().Debugf(format, v...) }
func Warn(format string, v ...interface{})  { current().Warnf(format, v...) }
func Error(format string, v ...interface{}) { current().Errorf(format, v...) }

func RaylibLogCallback(logLevel int, text string) {
	formattedText := "[RAYLIB] " + text
	switch logLevel {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		Debug("%s", formattedText)
	case 3: // LOG_INFO
		if ShowRaylibInfo {
			Info("%s", formattedText)
		} else {
			Debug("%s", formattedText)
		}
	case 4: // LOG_WARNING
		Warn("%s", formattedText)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error("%s", formattedText)
	}
}
