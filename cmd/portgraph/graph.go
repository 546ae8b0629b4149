package main

import (
	"fmt"
	"os"

	"github.com/aretw0/portgraph/internal/cli"
	"github.com/aretw0/portgraph/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file|name|->",
	Short: "Export the graph visualization",
	Long:  `Builds the document and outputs a Mermaid diagram (graph LR) with one edge per connection.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, closeFn, err := newEngine()
		if err != nil {
			return err
		}
		defer closeFn()

		g, err := cli.BuildTarget(cmd.Context(), engine, args[0], os.Stdin)
		if err != nil {
			return err
		}

		overlay := &graph.GraphOverlay{}
		overlay.Focus, _ = cmd.Flags().GetString("focus")
		if issues, _ := cmd.Flags().GetBool("issues"); issues {
			report, err := engine.Validate(g, false)
			if err != nil {
				return err
			}
			overlay.Flagged = report.Nodes()
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(g, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("focus", "", "Highlight one node")
	graphCmd.Flags().Bool("issues", false, "Flag nodes with validation findings")
}
