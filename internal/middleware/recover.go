package middleware

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/config"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
)

const sentryHubKey = "sentryHub"

// InitSentry configures the global Sentry client. It is a no-op when no DSN
// is configured.
func InitSentry(cfg config.SentryConfig, environment, release string) error {
	if !cfg.Enabled() {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      environment,
		Release:          release,
		TracesSampleRate: cfg.TracesSampleRate,
		AttachStacktrace: true,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			if event.Request != nil {
				delete(event.Request.Headers, "Authorization")
				delete(event.Request.Headers, "Cookie")
			}
			return event
		},
	})
}

// FlushSentry waits for buffered events to be delivered
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}

// RecoverConfig configures the recover middleware
type RecoverConfig struct {
	Logger *zap.Logger
	// SentryEnabled reports panics to Sentry
	SentryEnabled bool
}

// Recover turns panics raised by later handlers into a 500 response. The
// panic is logged with its stack and, when enabled, reported to Sentry.
func Recover(config RecoverConfig) fiber.Handler {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) (err error) {
		var hub *sentry.Hub
		if config.SentryEnabled {
			hub = sentry.CurrentHub().Clone()
			setSentryRequestContext(hub, c)
			c.Locals(sentryHubKey, hub)
		}

		defer func() {
			r := recover()
			if r == nil {
				return
			}

			panicErr, ok := r.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", r)
			}

			log.Error("panic recovered",
				zap.Error(panicErr),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("request_id", GetRequestID(c)),
				zap.String("stack", string(debug.Stack())),
			)

			if hub != nil {
				hub.Scope().SetLevel(sentry.LevelFatal)
				hub.RecoverWithContext(c.UserContext(), r)
			}

			err = apperrors.Internal("an unexpected error occurred").WithError(panicErr)
		}()

		return c.Next()
	}
}

// CaptureError reports an error to Sentry with the request attached. The hub
// stored by Recover is reused when present.
func CaptureError(c *fiber.Ctx, err error) {
	hub, ok := c.Locals(sentryHubKey).(*sentry.Hub)
	if !ok || hub == nil {
		hub = sentry.CurrentHub().Clone()
		setSentryRequestContext(hub, c)
	}
	if id, ok := GetUserID(c); ok {
		username, _ := GetUsername(c)
		hub.Scope().SetUser(sentry.User{ID: strconv.FormatInt(id, 10), Username: username})
	}
	hub.CaptureException(err)
}

func setSentryRequestContext(hub *sentry.Hub, c *fiber.Ctx) {
	headers := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		k := string(key)
		if k != fiber.HeaderAuthorization && k != fiber.HeaderCookie {
			headers[k] = string(value)
		}
	})

	scope := hub.Scope()
	scope.SetTag("request_id", GetRequestID(c))
	scope.SetContext("Request", map[string]interface{}{
		"url":          c.OriginalURL(),
		"method":       c.Method(),
		"headers":      headers,
		"query_string": string(c.Request().URI().QueryString()),
		"remote_addr":  c.IP(),
	})
}
