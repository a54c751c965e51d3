package obs

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const (
	RequestIDHeader                = "X-Request-ID"
	RequestIDContextKey contextKey = "reqId"
)

// Client is a printf-style logger over zap. The zero value discards
// everything.
type Client struct {
	logger *zap.Logger
}

func New(level string) *Client {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		parseLevel(level),
	)

	return &Client{logger: zap.New(core)}
}

func NewWithLogger(logger *zap.Logger) *Client {
	return &Client{logger: logger}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (c *Client) Sync() error {
	if c == nil || c.logger == nil {
		return nil
	}
	return c.logger.Sync()
}

func (c *Client) LogNotice(ctx context.Context, msg string, args ...interface{}) {
	c.log(ctx, zapcore.InfoLevel, "notice", msg, args...)
}

func (c *Client) LogDebug(ctx context.Context, msg string, args ...interface{}) {
	c.log(ctx, zapcore.DebugLevel, "", msg, args...)
}

func (c *Client) LogInfo(ctx context.Context, msg string, args ...interface{}) {
	c.log(ctx, zapcore.InfoLevel, "", msg, args...)
}

func (c *Client) LogErr(ctx context.Context, msg string, args ...interface{}) {
	c.log(ctx, zapcore.ErrorLevel, "", msg, args...)
}

func (c *Client) LogAlert(ctx context.Context, msg string, args ...interface{}) {
	c.log(ctx, zapcore.ErrorLevel, "alert", msg, args...)
}

func (c *Client) log(ctx context.Context, level zapcore.Level, tag string, msg string, args ...interface{}) {
	if c == nil || c.logger == nil {
		return
	}
	ce := c.logger.Check(level, fmt.Sprintf(msg, args...))
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, 2)
	if tag != "" {
		fields = append(fields, zap.String("tag", tag))
	}
	if reqID := RequestID(ctx); reqID != "" {
		fields = append(fields, zap.String("req_id", reqID))
	}
	ce.Write(fields...)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if reqID, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return reqID
	}
	return ""
}
