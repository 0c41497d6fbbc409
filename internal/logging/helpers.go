package logging

import "log/slog"

// The fetch pipeline treats loggers as optional collaborators; these
// wrappers spare every call site the nil guard.

// Info logs at info level, quietly dropping the record without a logger.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, args...)
}

// Warn logs at warn level, quietly dropping the record without a logger.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, args...)
}

// Error logs at error level, attaching err as a field when present.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, "error", err)
	}
	logger.Error(msg, args...)
}
