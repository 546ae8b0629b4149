package domain

// Capacity defaults. Lengths count characters (runes), not bytes.
const (
	// DefaultMaxNodeNameLen is the longest accepted node name.
	// Longer names are rejected: truncating them could collide in the registry.
	DefaultMaxNodeNameLen = 63

	// DefaultMaxPortNameLen is the longest stored port name.
	// Longer names are truncated to this length.
	DefaultMaxPortNameLen = 63

	// DefaultMaxPorts is the number of ports a node may declare per direction.
	DefaultMaxPorts = 16

	// DefaultMaxNodes bounds the node arena of a single graph.
	DefaultMaxNodes = 4096
)

// RefSeparator splits a connection reference into node and port ("node:port").
const RefSeparator = ":"

// Limits holds the capacity bounds applied while building a graph.
type Limits struct {
	MaxNodeNameLen int `json:"max_node_name_len" yaml:"max_node_name_len" mapstructure:"max_node_name_len"`
	MaxPortNameLen int `json:"max_port_name_len" yaml:"max_port_name_len" mapstructure:"max_port_name_len"`
	MaxPorts       int `json:"max_ports" yaml:"max_ports" mapstructure:"max_ports"`
	MaxNodes       int `json:"max_nodes" yaml:"max_nodes" mapstructure:"max_nodes"`
}

// DefaultLimits returns the default capacity bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxNodeNameLen: DefaultMaxNodeNameLen,
		MaxPortNameLen: DefaultMaxPortNameLen,
		MaxPorts:       DefaultMaxPorts,
		MaxNodes:       DefaultMaxNodes,
	}
}

// WithDefaults fills unset (zero or negative) fields from DefaultLimits.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	if l.MaxNodeNameLen <= 0 {
		l.MaxNodeNameLen = d.MaxNodeNameLen
	}
	if l.MaxPortNameLen <= 0 {
		l.MaxPortNameLen = d.MaxPortNameLen
	}
	if l.MaxPorts <= 0 {
		l.MaxPorts = d.MaxPorts
	}
	if l.MaxNodes <= 0 {
		l.MaxNodes = d.MaxNodes
	}
	return l
}
