package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Specific errors below wrap one of these where it applies,
// so errors.Is(err, ErrCapacity) matches both ErrNameTooLong and ErrTooManyPorts.
var (
	// ErrArgument is returned when a required input is nil or absent.
	ErrArgument = errors.New("invalid argument")

	// ErrShape is returned when a document value has the wrong kind.
	ErrShape = errors.New("malformed document")

	// ErrCapacity is returned when a declared bound is exceeded.
	ErrCapacity = errors.New("capacity exceeded")
)

var (
	// ErrNilGraph is returned by read-only operations given a nil graph.
	ErrNilGraph = fmt.Errorf("%w: nil graph", ErrArgument)

	// ErrMissingNodes is returned when "nodes" is absent or not an object.
	ErrMissingNodes = fmt.Errorf("%w: missing or malformed \"nodes\"", ErrShape)

	// ErrNameTooLong is returned for node names over the configured length.
	ErrNameTooLong = fmt.Errorf("%w: name too long", ErrCapacity)

	// ErrTooManyPorts is returned when a node declares more ports than allowed in one direction.
	ErrTooManyPorts = fmt.Errorf("%w: too many ports", ErrCapacity)

	ErrDuplicateNodeName   = errors.New("duplicate node name")
	ErrDuplicatePortName   = errors.New("duplicate port name")
	ErrMalformedReference  = errors.New("malformed reference")
	ErrMalformedConnection = errors.New("malformed connection")
	ErrUnknownNode         = errors.New("unknown node")
	ErrUnknownPort         = errors.New("unknown port")

	// ErrPortInUse is returned when a connection targets a port that is already wired.
	// A port's peer is set exactly once.
	ErrPortInUse = errors.New("port already connected")

	// ErrAllocation is returned when the node arena cannot take another node.
	ErrAllocation = errors.New("node allocation failed")

	// ErrConstructor is returned when a node-data constructor fails.
	ErrConstructor = errors.New("node data constructor failed")

	// ErrGraphFrozen is returned when mutating a graph after its build completed.
	ErrGraphFrozen = errors.New("graph is frozen and cannot be modified")
)

// ErrorKind classifies a build failure.
type ErrorKind string

const (
	KindArgument            ErrorKind = "ArgumentError"
	KindShape               ErrorKind = "ShapeError"
	KindMissingNodes        ErrorKind = "MissingOrMalformedNodes"
	KindNameTooLong         ErrorKind = "NameTooLong"
	KindTooManyPorts        ErrorKind = "TooManyPorts"
	KindDuplicateNodeName   ErrorKind = "DuplicateNodeName"
	KindDuplicatePortName   ErrorKind = "DuplicatePortName"
	KindMalformedReference  ErrorKind = "MalformedReference"
	KindMalformedConnection ErrorKind = "MalformedConnection"
	KindUnknownNode         ErrorKind = "UnknownNode"
	KindUnknownPort         ErrorKind = "UnknownPort"
	KindPortInUse           ErrorKind = "PortInUse"
	KindAllocation          ErrorKind = "AllocationError"
	KindConstructor         ErrorKind = "ConstructorError"
)

// Category returns the taxonomy group of the kind: capacity kinds report
// "CapacityError", the nodes-shape kind reports "ShapeError".
func (k ErrorKind) Category() string {
	switch k {
	case KindNameTooLong, KindTooManyPorts:
		return "CapacityError"
	case KindMissingNodes:
		return string(KindShape)
	default:
		return string(k)
	}
}

// NoConnection marks a BuildError that is not tied to a connection entry.
const NoConnection = -1

// BuildError is the structured failure of a graph build. It locates the failure
// by node key or connection index and unwraps to one of the sentinel errors.
type BuildError struct {
	Kind ErrorKind `json:"kind"`

	// Node is the node key being built, when the failure is tied to one.
	Node string `json:"node,omitempty"`

	// Connection is the index of the failing "connections" entry, or NoConnection.
	Connection int `json:"connection"`

	// Ref is the offending reference or port name, when there is one.
	Ref string `json:"ref,omitempty"`

	Err error `json:"-"`
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	var sb strings.Builder
	sb.WriteString("build graph")
	if e.Node != "" {
		fmt.Fprintf(&sb, ": node %q", e.Node)
	}
	if e.Connection != NoConnection {
		fmt.Fprintf(&sb, ": connection %d", e.Connection)
	}
	if e.Ref != "" {
		fmt.Fprintf(&sb, ": %q", e.Ref)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// KindOf extracts the ErrorKind from err, or "" if err is not a BuildError.
func KindOf(err error) ErrorKind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
