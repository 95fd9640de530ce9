package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field represents a key-value pair for observability.
type Field struct {
	Key   string
	Value interface{}
}

// MetricField represents a key-value pair for logging metrics.
type MetricField struct {
	Key   string
	Value interface{}
}

type ObservabilityContextKey string

const observabilityKey ObservabilityContextKey = "observability_fields"

// WithFields adds a set of observability fields to the context.
func WithFields(ctx context.Context, fields ...Field) context.Context {
	existing := getObservabilityFields(ctx)
	merged := make([]Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, observabilityKey, merged)
}

func getObservabilityFields(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	if fields, ok := ctx.Value(observabilityKey).([]Field); ok {
		return fields
	}
	return nil
}

// mergeFields combines context fields with metric fields; later keys win.
func mergeFields(ctx context.Context, fields []MetricField) []zapcore.Field {
	fieldMap := make(map[string]zapcore.Field)
	order := make([]string, 0)

	for _, f := range getObservabilityFields(ctx) {
		if _, seen := fieldMap[f.Key]; !seen {
			order = append(order, f.Key)
		}
		fieldMap[f.Key] = zap.Any(f.Key, f.Value)
	}
	for _, f := range fields {
		if _, seen := fieldMap[f.Key]; !seen {
			order = append(order, f.Key)
		}
		fieldMap[f.Key] = zap.Any(f.Key, f.Value)
	}

	merged := make([]zapcore.Field, 0, len(order))
	for _, key := range order {
		merged = append(merged, fieldMap[key])
	}
	return merged
}

// GetRealClientIP extracts the real client IP from CloudFront headers.
// CloudFront-Viewer-Address contains the client IP in "IP:port" format.
// Falls back to c.ClientIP() if the header is not present.
func GetRealClientIP(c *gin.Context) string {
	if viewerAddr := c.GetHeader("CloudFront-Viewer-Address"); viewerAddr != "" {
		if colonIdx := strings.LastIndex(viewerAddr, ":"); colonIdx > 0 {
			return viewerAddr[:colonIdx]
		}
		return viewerAddr
	}
	return c.ClientIP()
}

// GetRealUserAgent extracts the user agent.
func GetRealUserAgent(c *gin.Context) string {
	return c.Request.UserAgent()
}

// Middleware to add observability fields to Gin context.
func Middleware(l *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%s", uuid.New().String())
			c.Request.Header.Set("X-Request-ID", requestID)
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		ctx = WithFields(ctx,
			Field{"request_id", requestID},
			Field{"path", c.Request.URL.Path},
			Field{"method", c.Request.Method},
			Field{"client_ip", GetRealClientIP(c)},
		)

		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				l.Error(c.Request.Context(), "Recovered from panic", fmt.Errorf("reason: %+v", r))
				c.AbortWithStatus(500)
			}

			if c.Request.URL.Path == "/health" || c.Request.URL.Path == "/metrics" {
				return
			}
			latency := time.Since(start)
			l.Metrics(ctx,
				MetricField{"status", c.Writer.Status()},
				MetricField{"latency_ms", latency.Milliseconds()},
			)
		}()
		c.Next()
	}
}

// Logger represents a custom logger with Zap integration.
type Logger struct {
	zapLogger *zap.Logger
}

// NewLogger creates a new instance of custom logger.
func NewLogger() *Logger {
	zapLogger, _ := zap.NewProduction()
	zapLogger = zapLogger.WithOptions(zap.AddCallerSkip(1))
	zapLogger = zapLogger.WithOptions(zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{zapLogger: zapLogger}
}

// NewNopLogger returns a logger that discards everything. Used by tests.
func NewNopLogger() *Logger {
	return &Logger{zapLogger: zap.NewNop()}
}

func (l *Logger) loggerFromContext(ctx context.Context, extra []Field) *zap.Logger {
	fields := getObservabilityFields(ctx)
	zapFields := make([]zapcore.Field, 0, len(fields)+len(extra))
	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	for _, f := range extra {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return l.zapLogger.With(zapFields...)
}

// Info logs an informational message with context-based fields.
func (l *Logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.loggerFromContext(ctx, fields).Info(msg)
}

// InfoWithError logs an informational message with context and an error.
func (l *Logger) InfoWithError(ctx context.Context, msg string, err error) {
	l.loggerFromContext(ctx, nil).Info(msg, zap.Error(err))
}

// Error logs an error message with context-based fields.
func (l *Logger) Error(ctx context.Context, msg string, err error) {
	l.loggerFromContext(ctx, nil).Error(msg, zap.Error(err))
}

// Warn logs a warning message with context-based fields.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.loggerFromContext(ctx, fields).Warn(msg)
}

// WarnWithError logs a degraded-path warning together with its cause.
func (l *Logger) WarnWithError(ctx context.Context, msg string, err error) {
	l.loggerFromContext(ctx, nil).Warn(msg, zap.Error(err))
}

// Debug logs a debug message with context-based fields.
func (l *Logger) Debug(ctx context.Context, msg string) {
	l.loggerFromContext(ctx, nil).Debug(msg)
}

// Fatal logs a fatal message with context-based fields.
func (l *Logger) Fatal(ctx context.Context, msg string, err error) {
	l.loggerFromContext(ctx, nil).Fatal(msg, zap.Error(err))
}

// Metrics logs metrics-related information using custom MetricField type.
func (l *Logger) Metrics(ctx context.Context, fields ...MetricField) {
	l.zapLogger.Info("Metrics", mergeFields(ctx, fields)...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() {
	_ = l.zapLogger.Sync()
}
