package jsonvalue

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

var packageLogger atomic.Pointer[slog.Logger]

// SetDefaultLogger installs the logger used by package-level functions and
// by DefaultConfig. Passing nil disables package-level logging.
func SetDefaultLogger(logger *slog.Logger) {
	packageLogger.Store(logger)
}

func defaultLogger() *slog.Logger {
	return packageLogger.Load()
}

// logFault records a rejected operation at debug level.
func logFault(ctx context.Context, logger *slog.Logger, op string, err error) {
	if logger == nil || err == nil {
		return
	}
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	category := "unknown"
	if kind := Category(err); kind != nil {
		category = kind.Error()
	}

	attrs := []slog.Attr{
		slog.String("operation", op),
		slog.String("error_type", category),
		slog.String("error", sanitizeError(err)),
	}
	var fault *Error
	if errors.As(err, &fault) && fault.Pos != nil {
		attrs = append(attrs,
			slog.Int("offset", fault.Pos.Offset),
			slog.Int("line", fault.Pos.Line),
			slog.Int("column", fault.Pos.Column),
		)
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "JSON operation failed", attrs...)
}

// logSwallowed records a failure that a never-failing operation absorbed.
func logSwallowed(logger *slog.Logger, op string, detail any) {
	if logger == nil {
		return
	}
	logger.Debug("JSON conversion degraded to nil",
		slog.String("operation", op),
		slog.Any("detail", detail),
	)
}

// sanitizeError keeps log records bounded; parse errors may echo input.
func sanitizeError(err error) string {
	msg := err.Error()
	if len(msg) > 200 {
		return msg[:197] + "..."
	}
	return msg
}
