package portgraph_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/portgraph"
	"github.com/aretw0/portgraph/pkg/adapters/memory"
	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/dsl"
)

// ExampleNew_memory builds a document held in memory and prints it.
func ExampleNew_memory() {
	loader := memory.NewLoader(map[string]string{
		"chain": `{"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}},"connections":[["A:o","B:i"]]}`,
	})

	// Note: We leave path empty ("") because we are providing a loader.
	engine, err := portgraph.New("", portgraph.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	g, err := engine.Load(context.Background(), "chain")
	if err != nil {
		log.Fatal(err)
	}
	engine.Print(os.Stdout, g)

	// Output:
	// Node Graph:
	//  - nodes:
	//       - "A":
	//         - out:
	//            "o" : ( A:o --> B:i )
	//       - "B":
	//         - in:
	//            "i" : ( A:o --> B:i )
}

// ExampleEngine_Build_error shows where a failed build points.
func ExampleEngine_Build_error() {
	b := dsl.New()
	b.Add("A").Out("o")
	b.Add("B").In("i")
	b.Connect("A:o", "B:missing")

	doc, err := b.Document()
	if err != nil {
		log.Fatal(err)
	}

	engine, _ := portgraph.New("", portgraph.WithLoader(memory.NewStore()))
	_, err = engine.Build(context.Background(), doc)

	var be *domain.BuildError
	if errors.As(err, &be) {
		fmt.Println(be.Kind, be.Connection, be.Ref)
	}

	// Output:
	// UnknownPort 0 B:missing
}
