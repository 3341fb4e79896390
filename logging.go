package sceneshift

import "log/slog"

// Logger is the minimal logging interface sceneshift writes to. It matches the level methods of
// log/slog, so a *slog.Logger can be plugged in directly through NewSlogLogger; any other
// structured logger can be adapted the same way. The default is NopLogger - sceneshift stays
// silent unless you give it a logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogAdapter struct {
	logger *slog.Logger
}

func (s slogAdapter) Debug(msg string, args ...any) { s.logger.Debug(msg, args...) }
func (s slogAdapter) Info(msg string, args ...any)  { s.logger.Info(msg, args...) }
func (s slogAdapter) Warn(msg string, args ...any)  { s.logger.Warn(msg, args...) }
func (s slogAdapter) Error(msg string, args ...any) { s.logger.Error(msg, args...) }

// NewSlogLogger creates a Logger from a *slog.Logger. Passing nil uses slog.Default().
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return slogAdapter{logger: logger}
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
