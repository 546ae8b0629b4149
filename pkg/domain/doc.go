/*
Package domain contains the data model of a port graph.

It defines nodes with ordered input and output ports, the Graph that owns them
together with a name index, the capacity Limits applied while building, and the
error taxonomy reported by the builder. This package is kept free of I/O and of
document parsing.

# Key Entities

  - Port: a named slot with an optional payload and a peer reference.
  - Node: a named entity with fixed input and output ports.
  - Graph: the owning arena of nodes plus the name-to-node index.
  - PeerRef: a (node index, port index) pair resolved through the Graph, so nodes
    never hold pointers to each other.
  - BuildError: the structured failure of a build (kind plus location).
*/
package domain
