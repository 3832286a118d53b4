package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
)

// dateLayout is the ISO date accepted in request bodies and queries
const dateLayout = "2006-01-02"

// productsNamespace is the cache namespace of every product read
const productsNamespace = "products"

// Cache defines the read cache used by services
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, namespace string) error
}

// EventPublisher defines the sink of business events
type EventPublisher interface {
	Publish(ctx context.Context, eventType domain.EventType, data any)
}

type nopCache struct{}

func (nopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (nopCache) SetJSON(context.Context, string, any) error         { return nil }
func (nopCache) Invalidate(context.Context, string) error           { return nil }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.EventType, any) {}

func cacheOrNop(c Cache) Cache {
	if c == nil {
		return nopCache{}
	}
	return c
}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// invalidate drops a cache namespace; a failure only costs freshness
func invalidate(ctx context.Context, c Cache, namespace string) {
	if err := c.Invalidate(ctx, namespace); err != nil {
		logger.Warn("cache invalidation failed",
			zap.String("namespace", namespace),
			zap.Error(err),
		)
	}
}

// today truncates t to midnight in its own location
func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// parseDate parses an optional ISO date, falling back to def
func parseDate(value *string, def time.Time) (time.Time, error) {
	if value == nil || *value == "" {
		return def, nil
	}
	return time.ParseInLocation(dateLayout, *value, def.Location())
}
