// Package monitoring wires Sentry error tracking into the service.
package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SentryConfig holds Sentry initialization parameters.
type SentryConfig struct {
	DSN              string
	Environment      string
	Release          string
	ServiceName      string
	TracesSampleRate float64
}

// SentryMonitor owns the Sentry client lifecycle. With an empty DSN every
// method is a no-op, so local development needs no Sentry account.
type SentryMonitor struct {
	enabled bool
	logger  *zap.Logger
}

// NewSentryMonitor initializes the Sentry SDK.
func NewSentryMonitor(cfg *SentryConfig, logger *zap.Logger) (*SentryMonitor, error) {
	if cfg.DSN == "" {
		logger.Info("Sentry disabled, no DSN configured")
		return &SentryMonitor{logger: logger}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		ServerName:       cfg.ServiceName,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		// Still usable as a disabled monitor so callers need no nil checks.
		return &SentryMonitor{logger: logger}, err
	}

	return &SentryMonitor{enabled: true, logger: logger}, nil
}

// GinMiddleware returns the request-scoped Sentry hub middleware.
func (m *SentryMonitor) GinMiddleware() gin.HandlerFunc {
	if !m.enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return sentrygin.New(sentrygin.Options{Repanic: true})
}

// RecoveryMiddleware recovers panics, reports them, and returns a 500.
func (m *SentryMonitor) RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if m.enabled {
					sentry.CurrentHub().Recover(r)
				}
				m.logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(500, gin.H{"message": "internal server error"})
			}
		}()
		c.Next()
	}
}

// CaptureError reports an error outside a request context.
func (m *SentryMonitor) CaptureError(err error) {
	if m.enabled && err != nil {
		sentry.CaptureException(err)
	}
}

// Flush waits for buffered events to be sent.
func (m *SentryMonitor) Flush(timeout time.Duration) {
	if m.enabled {
		sentry.Flush(timeout)
	}
}
