/*
Package portgraph builds node graphs from JSON or YAML documents.

A document declares named nodes with input and output ports, plus connections
that wire one output to one input by "node:port" reference. Building runs in two
phases: every node is materialized first, then every connection is resolved. A
failure in either phase releases the whole partial graph and returns a
structured *domain.BuildError naming the node or connection index at fault.

# Documents

	{
	  "nodes": {
	    "texture": {"out": ["rgb", "alpha"]},
	    "output":  {"in": ["color"]}
	  },
	  "connections": [["texture:rgb", "output:color"]]
	}

Node and port order follow the document. Each port is wired at most once, and
both ends of a connection know their peer.

# Usage

The Engine pairs a document loader with the builder. By default it reads a
Loam repository (Markdown frontmatter, JSON or YAML files) at the given path.

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/portgraph"
	)

	func main() {
		eng, err := portgraph.New("./graphs")
		if err != nil {
			log.Fatal(err)
		}

		g, err := eng.Load(context.Background(), "shader")
		if err != nil {
			log.Fatal(err)
		}
		eng.Print(os.Stdout, g)
	}

For the lower-level pieces see pkg/builder (the two-phase build), pkg/value
(the document tree) and pkg/dsl (building documents in Go).
*/
package portgraph
