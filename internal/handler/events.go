package handler

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/middleware"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/service"
)

const heartbeatInterval = 30 * time.Second

// EventsHandler streams business events over Server-Sent Events
type EventsHandler struct {
	realtime  *service.RealtimeService
	logger    *zap.Logger
	heartbeat time.Duration
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(realtime *service.RealtimeService, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		realtime:  realtime,
		logger:    logger,
		heartbeat: heartbeatInterval,
	}
}

// Stream handles GET /api/events?types=order.created,stock.low
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	types, err := parseEventTypes(c.Query("types"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// The stream outlives the handler; the subscription ends with the stream.
	ctx, cancel := context.WithCancel(context.Background())
	sub := h.realtime.Subscribe(ctx, types...)
	userID, _ := middleware.GetUserID(c)

	h.logger.Info("event stream opened",
		zap.String("subscriber_id", sub.ID),
		zap.Int64("user_id", userID),
	)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			cancel()
			h.logger.Info("event stream closed", zap.String("subscriber_id", sub.ID))
		}()

		fmt.Fprintf(w, "event: connected\ndata: {\"subscriberId\":%q}\n\n", sub.ID)
		if err := w.Flush(); err != nil {
			return
		}

		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-sub.Channel:
				if !ok {
					return
				}
				data, err := service.FormatSSE(event)
				if err != nil {
					h.logger.Error("failed to format event", zap.Error(err))
					continue
				}
				if _, err := w.Write(data); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": heartbeat\n\n"); err != nil {
					return
				}
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}

// Subscribers handles GET /api/events/subscribers
func (h *EventsHandler) Subscribers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"count": h.realtime.SubscriberCount()})
}

func parseEventTypes(raw string) ([]domain.EventType, error) {
	if raw == "" {
		return nil, nil
	}
	var types []domain.EventType
	for _, part := range strings.Split(raw, ",") {
		t := domain.EventType(strings.TrimSpace(part))
		if !t.IsValid() {
			return nil, apperrors.Validation("unknown event type").WithDetail("types", string(t))
		}
		types = append(types, t)
	}
	return types, nil
}
