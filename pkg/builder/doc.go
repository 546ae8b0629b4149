/*
Package builder turns a parsed graph document into a fully wired *domain.Graph.

Construction is a two-phase process:

 1. Node Materialization: every key of the "nodes" object becomes a
    *domain.Node with its declared input and output ports. Nodes are appended
    to the graph arena and indexed by name. No connection is looked at yet.

 2. Connection Resolution: every entry of the optional "connections" array is
    a ["node:port", "node:port"] pair. The first element names an output port
    of the source node, the second an input port of the destination node. Both
    ports are located by name through the index and wired to each other.

The first error aborts the build. Before returning it, the builder releases
every node it allocated for that attempt, so a failed Build never hands back a
partial graph. Errors are *domain.BuildError values carrying the failure kind
and the node key or connection index where it happened.

A successful build is frozen: the returned graph is read-only and may be shared
between goroutines. A Builder holds only configuration and can be reused.
*/
package builder
