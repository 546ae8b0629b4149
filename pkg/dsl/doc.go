/*
Package dsl provides a Go DSL for programmatically constructing graph documents.

It lets developers declare nodes, ports and connections with a fluent builder
instead of writing JSON or YAML by hand. The result is a plain document, so it
goes through the same two-phase build and the same checks as a file would.

Example usage:

	package main

	import (
		"context"

		"github.com/aretw0/portgraph/pkg/builder"
		"github.com/aretw0/portgraph/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Add("texture").
			Out("rgb", "alpha").
			To("rgb", "mix:a")

		b.Add("mix").
			In("a", "b").
			OutValue("factor", 0.5)

		doc, err := b.Document()
		if err != nil {
			panic(err)
		}
		graph, err := builder.New().Build(context.Background(), doc)
		// ...
	}
*/
package dsl
