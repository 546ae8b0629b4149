package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeCreated EventType = "node_created"
	EventConnected   EventType = "connected"
	EventBuilt       EventType = "built"
	EventRollback    EventType = "rollback"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NodeEvent is emitted when phase one materializes a node.
type NodeEvent struct {
	EventBase
	Node    string `json:"node"`
	Inputs  int    `json:"inputs"`
	Outputs int    `json:"outputs"`
}

// ConnectionEvent is emitted when phase two wires a connection entry.
type ConnectionEvent struct {
	EventBase
	Index      int        `json:"index"`
	Connection Connection `json:"connection"`
}

// BuildEvent is emitted once a graph is built and frozen.
type BuildEvent struct {
	EventBase
	Nodes       int           `json:"nodes"`
	Connections int           `json:"connections"`
	Duration    time.Duration `json:"duration"`
}

// RollbackEvent is emitted when a failed build releases what it allocated.
type RollbackEvent struct {
	EventBase
	Kind      ErrorKind     `json:"kind"`
	Released  int           `json:"released"`
	Remaining int           `json:"remaining"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for build observability.
// Any of them may be nil.
type LifecycleHooks struct {
	OnNodeCreated func(context.Context, *NodeEvent)
	OnConnected   func(context.Context, *ConnectionEvent)
	OnBuilt       func(context.Context, *BuildEvent)
	OnRollback    func(context.Context, *RollbackEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeCreated: chain(h.OnNodeCreated, other.OnNodeCreated),
		OnConnected:   chain(h.OnConnected, other.OnConnected),
		OnBuilt:       chain(h.OnBuilt, other.OnBuilt),
		OnRollback:    chain(h.OnRollback, other.OnRollback),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
