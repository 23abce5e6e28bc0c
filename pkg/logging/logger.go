// Package logging provides structured logging for the asteroids
// application. It wraps zerolog behind a small context-aware API with
// correlation IDs, error context preservation and redaction of sensitive
// attribute values.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LevelEnvVar selects the log level when no explicit level is configured
const LevelEnvVar = "ASTEROIDS_LOG_LEVEL"

// Logger wraps zerolog.Logger to provide application-specific logging with
// correlation ID support.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a JSON logger on stdout. The level comes from the
// ASTEROIDS_LOG_LEVEL environment variable and defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout, os.Getenv(LevelEnvVar))
}

// NewLoggerWithWriter creates a JSON logger writing to w at the given level
// name (DEBUG, INFO, WARN, ERROR or DISABLED).
func NewLoggerWithWriter(w io.Writer, level string) *Logger {
	zl := zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// ParseLevel maps a level name to a zerolog level. Unknown names yield INFO.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Level returns the minimum level the logger emits
func (l *Logger) Level() zerolog.Level {
	return l.zl.GetLevel()
}

// With returns a child logger that always carries the given key/value pairs
func (l *Logger) With(args ...any) *Logger {
	return &Logger{zl: l.zl.With().Fields(toFields(args)).Logger()}
}

// Zerolog exposes the underlying logger for libraries that accept one
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// log writes msg at the given event, adding the context correlation ID
func (l *Logger) log(ctx context.Context, e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		e = e.Str("correlation_id", correlationID)
	}
	e.Fields(toFields(args)).Msg(msg)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, l.zl.Info(), msg, args)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, l.zl.Warn(), msg, args)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	e := l.zl.Error()
	if err != nil && e != nil {
		e = e.Str("error", err.Error())
	}
	l.log(ctx, e, msg, args)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, l.zl.Debug(), msg, args)
}

// correlationIDKey is the context key for correlation IDs
type correlationIDKey struct{}

// WithCorrelationID adds a correlation ID to the context.
// If no correlation ID is provided, a new one will be generated.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if correlationID == "" {
		correlationID = GenerateCorrelationID()
	}
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// GetCorrelationID extracts the correlation ID from the context.
// Returns empty string if no correlation ID is present.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID creates a new random correlation ID.
func GenerateCorrelationID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"token", "auth", "authorization",
	"secret", "apikey", "api_key", "private",
	"cookie",
}

// toFields converts key/value pairs to a field map, masking values whose
// key looks sensitive. A trailing key without a value is dropped.
func toFields(args []any) map[string]any {
	fields := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields[key] = sanitizeValue(key, args[i+1])
	}
	return fields
}

func sanitizeValue(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
