package service

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/motopecasjacare/erp/internal/domain"
)

// subscriberBuffer is the number of events kept for a slow subscriber
const subscriberBuffer = 100

// Subscriber represents a connected client
type Subscriber struct {
	ID      string
	Types   []domain.EventType
	Channel chan *domain.Event
	Done    chan struct{}
}

func (s *Subscriber) wants(t domain.EventType) bool {
	return len(s.Types) == 0 || slices.Contains(s.Types, t)
}

// RealtimeService fans business events out to event stream subscribers
type RealtimeService struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
}

// NewRealtimeService creates a new realtime service
func NewRealtimeService() *RealtimeService {
	return &RealtimeService{
		subscribers: make(map[string]*Subscriber),
	}
}

// Subscribe registers a subscriber for the given event types (all types
// when none are given). The subscription ends when ctx is done.
func (s *RealtimeService) Subscribe(ctx context.Context, types ...domain.EventType) *Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscriber{
		ID:      uuid.New().String(),
		Types:   types,
		Channel: make(chan *domain.Event, subscriberBuffer),
		Done:    make(chan struct{}),
	}

	s.subscribers[sub.ID] = sub

	go func() {
		select {
		case <-ctx.Done():
			s.Unsubscribe(sub.ID)
		case <-sub.Done:
		}
	}()

	return sub
}

// Unsubscribe removes a subscription
func (s *RealtimeService) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub, ok := s.subscribers[id]; ok {
		close(sub.Done)
		close(sub.Channel)
		delete(s.subscribers, id)
	}
}

// Publish sends an event to every interested subscriber
func (s *RealtimeService) Publish(ctx context.Context, eventType domain.EventType, data any) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event := &domain.Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	for _, sub := range s.subscribers {
		if !sub.wants(eventType) {
			continue
		}
		select {
		case sub.Channel <- event:
		default:
			// Channel is full, skip this subscriber
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (s *RealtimeService) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// FormatSSE formats an event for SSE
func FormatSSE(event *domain.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(event.Type)+len(data)+16)
	out = append(out, "event: "...)
	out = append(out, event.Type...)
	out = append(out, "\ndata: "...)
	out = append(out, data...)
	return append(out, '\n', '\n'), nil
}
