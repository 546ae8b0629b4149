/*
Package ports defines the driven ports (interfaces) of portgraph.

These interfaces decouple building from where documents are stored and from
the transports that expose it.

# Key Interfaces

  - DocumentLoader: Loads parsed graph documents by name (file, Loam, Redis, memory).
  - DocumentStore: A DocumentLoader that also saves and deletes raw documents.
  - GraphEngine: The build surface consumed by the HTTP and MCP adapters.
*/
package ports
