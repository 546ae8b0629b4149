package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/value"
)

// ref is a parsed "node:port" reference.
type ref struct {
	raw  string
	node string
	port string
}

// parseRef splits a reference on its first separator, so port names may contain it.
func parseRef(raw string) (ref, error) {
	node, port, ok := strings.Cut(raw, domain.RefSeparator)
	if !ok {
		return ref{}, fmt.Errorf("%w: %q has no %q separator", domain.ErrMalformedReference, raw, domain.RefSeparator)
	}
	return ref{raw: raw, node: node, port: port}, nil
}

// connect performs the second pass, wiring every "connections" entry.
func (b *Builder) connect(ctx context.Context, graph *domain.Graph, doc *value.Value) error {
	raw, ok := doc.Get("connections")
	if !ok || raw.Is(value.Null) {
		b.logger.Debug("No connections declared.")
		return nil
	}
	if !raw.Is(value.Array) {
		return &domain.BuildError{
			Kind:       domain.KindShape,
			Connection: domain.NoConnection,
			Err:        fmt.Errorf("%w: \"connections\" must be an array, got %s", domain.ErrShape, raw.Kind()),
		}
	}

	b.logger.Debug("Starting connection resolution pass.", "declared", raw.Len())
	for i, entry := range raw.Items() {
		conn, err := b.link(graph, i, entry)
		if err != nil {
			return err
		}
		b.logger.Debug("Connected ports.", "index", i, "from", conn.From.String(), "to", conn.To.String())
		if b.hooks.OnConnected != nil {
			b.hooks.OnConnected(ctx, &domain.ConnectionEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventConnected},
				Index:      i,
				Connection: conn,
			})
		}
	}
	b.logger.Debug("Finished connection resolution pass.")
	return nil
}

// link resolves and wires connection entry i.
func (b *Builder) link(graph *domain.Graph, i int, entry *value.Value) (domain.Connection, error) {
	fail := func(kind domain.ErrorKind, r string, err error) (domain.Connection, error) {
		return domain.Connection{}, &domain.BuildError{Kind: kind, Connection: i, Ref: r, Err: err}
	}

	pair, err := connectionPair(entry)
	if err != nil {
		return fail(domain.KindMalformedConnection, "", err)
	}

	// 1. Split both references.
	src, err := parseRef(pair[0])
	if err != nil {
		return fail(domain.KindMalformedReference, pair[0], err)
	}
	dst, err := parseRef(pair[1])
	if err != nil {
		return fail(domain.KindMalformedReference, pair[1], err)
	}

	// 2. Look up both nodes.
	srcIdx, ok := graph.IndexOf(src.node)
	if !ok {
		return fail(domain.KindUnknownNode, src.raw, fmt.Errorf("%w: %q", domain.ErrUnknownNode, src.node))
	}
	dstIdx, ok := graph.IndexOf(dst.node)
	if !ok {
		return fail(domain.KindUnknownNode, dst.raw, fmt.Errorf("%w: %q", domain.ErrUnknownNode, dst.node))
	}

	// 3. The source provides an output port.
	srcNode, _ := graph.Node(srcIdx)
	srcPort := srcNode.PortIndex(domain.Output, src.port)
	if srcPort < 0 {
		return fail(domain.KindUnknownPort, src.raw,
			fmt.Errorf("%w: node %q has no output %q", domain.ErrUnknownPort, src.node, src.port))
	}

	// 4. The destination provides an input port.
	dstNode, _ := graph.Node(dstIdx)
	dstPort := dstNode.PortIndex(domain.Input, dst.port)
	if dstPort < 0 {
		return fail(domain.KindUnknownPort, dst.raw,
			fmt.Errorf("%w: node %q has no input %q", domain.ErrUnknownPort, dst.node, dst.port))
	}

	// 5. Wire both directions.
	if err := graph.Connect(srcIdx, srcPort, dstIdx, dstPort); err != nil {
		if errors.Is(err, domain.ErrPortInUse) {
			return fail(domain.KindPortInUse, src.raw+" -> "+dst.raw, err)
		}
		return fail(domain.KindAllocation, "", fmt.Errorf("%w: %w", domain.ErrAllocation, err))
	}

	return domain.Connection{
		From: domain.Endpoint{Node: src.node, Port: src.port, Index: srcPort},
		To:   domain.Endpoint{Node: dst.node, Port: dst.port, Index: dstPort},
	}, nil
}

// connectionPair checks that entry is an array of exactly two strings.
func connectionPair(entry *value.Value) ([2]string, error) {
	var pair [2]string
	if !entry.Is(value.Array) {
		return pair, fmt.Errorf("%w: entry must be an array, got %s", domain.ErrMalformedConnection, entry.Kind())
	}
	if entry.Len() != 2 {
		return pair, fmt.Errorf("%w: entry must hold 2 references, got %d", domain.ErrMalformedConnection, entry.Len())
	}
	for i := range pair {
		s, ok := entry.Index(i).Str()
		if !ok {
			return pair, fmt.Errorf("%w: element %d must be a string, got %s",
				domain.ErrMalformedConnection, i, entry.Index(i).Kind())
		}
		pair[i] = s
	}
	return pair, nil
}
