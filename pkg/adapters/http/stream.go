package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/portgraph/pkg/domain"
)

// Event is one message delivered to SSE subscribers.
type Event struct {
	Type domain.EventType
	Data string
}

// StreamManager fans build lifecycle events out to active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamManager{
		subscribers: make(map[chan Event]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel and returns it with its cancel func.
func (sm *StreamManager) Subscribe() (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Len returns the number of active subscribers.
func (sm *StreamManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

func (sm *StreamManager) Broadcast(evt Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "type", evt.Type, "payload_size", len(evt.Data), "subscribers", len(sm.subscribers))

	for ch := range sm.subscribers {
		select {
		case ch <- evt:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "type", evt.Type)
		}
	}
}

// rollbackPayload carries the error text the event itself does not encode.
type rollbackPayload struct {
	*domain.RollbackEvent
	Error string `json:"error,omitempty"`
}

// Hooks returns lifecycle hooks that publish built and rollback events.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBuilt: func(_ context.Context, e *domain.BuildEvent) {
			sm.publish(domain.EventBuilt, e)
		},
		OnRollback: func(_ context.Context, e *domain.RollbackEvent) {
			p := rollbackPayload{RollbackEvent: e}
			if e.Err != nil {
				p.Error = e.Err.Error()
			}
			sm.publish(domain.EventRollback, p)
		},
	}
}

func (sm *StreamManager) publish(t domain.EventType, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		sm.logger.Error("StreamManager: encode failed", "type", t, "err", err)
		return
	}
	sm.Broadcast(Event{Type: t, Data: string(data)})
}
