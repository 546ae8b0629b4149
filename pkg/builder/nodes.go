package builder

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/value"
)

// materialize performs the first pass, creating one node per key of nodes.
func (b *Builder) materialize(ctx context.Context, graph *domain.Graph, nodes *value.Value) error {
	b.logger.Debug("Starting node materialization pass.", "declared", nodes.Len())

	for _, m := range nodes.Members() {
		if _, exists := graph.IndexOf(m.Key); exists {
			return nodeError(domain.KindDuplicateNodeName, m.Key, "", domain.ErrDuplicateNodeName)
		}
		if graph.Len() >= b.limits.MaxNodes {
			return nodeError(domain.KindAllocation, m.Key, "",
				fmt.Errorf("%w: arena holds at most %d nodes", domain.ErrAllocation, b.limits.MaxNodes))
		}

		node, err := b.newNode(ctx, m.Key, m.Value)
		if err != nil {
			return err
		}
		if _, err := graph.Add(node); err != nil {
			if errors.Is(err, domain.ErrDuplicateNodeName) {
				return nodeError(domain.KindDuplicateNodeName, m.Key, "", err)
			}
			return nodeError(domain.KindAllocation, m.Key, "", fmt.Errorf("%w: %w", domain.ErrAllocation, err))
		}

		b.logger.Debug("Created node.", "node", m.Key,
			"inputs", node.NumPorts(domain.Input),
			"outputs", node.NumPorts(domain.Output),
		)
		if b.hooks.OnNodeCreated != nil {
			b.hooks.OnNodeCreated(ctx, &domain.NodeEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeCreated},
				Node:      m.Key,
				Inputs:    node.NumPorts(domain.Input),
				Outputs:   node.NumPorts(domain.Output),
			})
		}
	}

	b.logger.Debug("Finished node materialization pass.")
	return nil
}

// newNode builds a single node from its spec object.
func (b *Builder) newNode(ctx context.Context, name string, spec *value.Value) (*domain.Node, error) {
	if n := utf8.RuneCountInString(name); n > b.limits.MaxNodeNameLen {
		return nil, nodeError(domain.KindNameTooLong, name, "",
			fmt.Errorf("%w: %d characters, limit %d", domain.ErrNameTooLong, n, b.limits.MaxNodeNameLen))
	}
	if !spec.Is(value.Object) {
		return nil, nodeError(domain.KindShape, name, "",
			fmt.Errorf("%w: node spec must be an object, got %s", domain.ErrShape, spec.Kind()))
	}

	inputs, err := b.ports(name, spec, domain.Input)
	if err != nil {
		return nil, err
	}
	outputs, err := b.ports(name, spec, domain.Output)
	if err != nil {
		return nil, err
	}

	var data any
	if b.registry != nil {
		d, _, err := b.registry.Construct(ctx, name, spec)
		if err != nil {
			return nil, nodeError(domain.KindConstructor, name, "", fmt.Errorf("%w: %w", domain.ErrConstructor, err))
		}
		data = d
	}

	return domain.NewNode(name, inputs, outputs, data), nil
}

// ports reads the "in" or "out" array of a node spec.
// An absent or null entry declares no ports.
func (b *Builder) ports(node string, spec *value.Value, dir domain.Direction) ([]domain.Port, error) {
	key := dir.String()
	raw, ok := spec.Get(key)
	if !ok || raw.Is(value.Null) {
		return nil, nil
	}
	if !raw.Is(value.Array) {
		return nil, nodeError(domain.KindShape, node, key,
			fmt.Errorf("%w: %q must be an array, got %s", domain.ErrShape, key, raw.Kind()))
	}
	if raw.Len() > b.limits.MaxPorts {
		return nil, nodeError(domain.KindTooManyPorts, node, key,
			fmt.Errorf("%w: %d %s ports, limit %d", domain.ErrTooManyPorts, raw.Len(), key, b.limits.MaxPorts))
	}

	ports := make([]domain.Port, 0, raw.Len())
	seen := make(map[string]struct{}, raw.Len())
	for i, entry := range raw.Items() {
		name, payload, err := portEntry(entry)
		if err != nil {
			return nil, nodeError(domain.KindShape, node, fmt.Sprintf("%s[%d]", key, i), err)
		}
		name = truncate(name, b.limits.MaxPortNameLen)
		if _, dup := seen[name]; dup {
			return nil, nodeError(domain.KindDuplicatePortName, node, name,
				fmt.Errorf("%w: %s port %q", domain.ErrDuplicatePortName, key, name))
		}
		seen[name] = struct{}{}
		ports = append(ports, domain.NewPort(name, payload))
	}
	return ports, nil
}

// portEntry accepts "name" or {"name": "...", "value": ...}.
func portEntry(entry *value.Value) (string, any, error) {
	switch entry.Kind() {
	case value.String:
		name, _ := entry.Str()
		return name, nil, nil
	case value.Object:
		raw, ok := entry.Get("name")
		if !ok {
			return "", nil, fmt.Errorf("%w: port object needs a \"name\"", domain.ErrShape)
		}
		name, ok := raw.Str()
		if !ok {
			return "", nil, fmt.Errorf("%w: port name must be a string, got %s", domain.ErrShape, raw.Kind())
		}
		var payload any
		if v, ok := entry.Get("value"); ok {
			payload = v
		}
		return name, payload, nil
	default:
		return "", nil, fmt.Errorf("%w: port entry must be a string or an object, got %s", domain.ErrShape, entry.Kind())
	}
}

// truncate cuts s to at most limit characters.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

func nodeError(kind domain.ErrorKind, node, ref string, err error) *domain.BuildError {
	return &domain.BuildError{Kind: kind, Node: node, Connection: domain.NoConnection, Ref: ref, Err: err}
}
