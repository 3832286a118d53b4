package handler

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/service"
)

func TestParseEventTypes(t *testing.T) {
	types, err := parseEventTypes("order.created, stock.low")
	require.NoError(t, err)
	assert.Equal(t, []domain.EventType{domain.EventOrderCreated, domain.EventStockLow}, types)

	types, err = parseEventTypes("")
	require.NoError(t, err)
	assert.Nil(t, types)

	_, err = parseEventTypes("order.created,trace.created")
	assert.Error(t, err)
}

func TestEventsHandler_RejectsUnknownTypes(t *testing.T) {
	realtime := service.NewRealtimeService()
	h := NewEventsHandler(realtime, zap.NewNop())
	app := newTestApp(func(app *fiber.App) {
		app.Get("/api/events", h.Stream)
		app.Get("/api/events/subscribers", h.Subscribers)
	})

	resp := doRequest(t, app, http.MethodGet, "/api/events?types=nope", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, realtime.SubscriberCount())

	resp = doRequest(t, app, http.MethodGet, "/api/events/subscribers", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, decodeBody[map[string]any](t, resp)["count"])
}
