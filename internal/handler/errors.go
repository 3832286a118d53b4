package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/middleware"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
)

// ErrorResponse is the body of every error answer
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ErrorHandler renders errors returned by handlers and middleware. Server
// errors are logged and, when enabled, reported to Sentry; their cause is
// never sent to the client.
func ErrorHandler(log *zap.Logger, sentryEnabled bool) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		resp := ErrorResponse{
			Code:    apperrors.CodeInternal,
			Message: "internal server error",
		}
		status := http.StatusInternalServerError

		var fiberErr *fiber.Error
		if appErr := apperrors.GetAppError(err); appErr != nil {
			status = appErr.StatusCode
			resp.Code = appErr.Code
			resp.Message = appErr.Message
			resp.Details = appErr.Details
		} else if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			resp.Code = ""
			resp.Message = fiberErr.Message
		}

		if status >= http.StatusInternalServerError {
			reqLog := logger.WithRequestID(log, middleware.GetRequestID(c))
			if userID, ok := middleware.GetUserID(c); ok {
				reqLog = logger.WithUserID(reqLog, userID)
			}
			reqLog.Error("request failed",
				zap.Error(err),
				zap.Int("status", status),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			if sentryEnabled {
				middleware.CaptureError(c, err)
			}
		}

		resp.Error = http.StatusText(status)
		return c.Status(status).JSON(resp)
	}
}
