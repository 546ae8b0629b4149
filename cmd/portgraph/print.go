package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/portgraph/internal/cli"
	"github.com/aretw0/portgraph/internal/dto"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print <file|name|->",
	Short: "Build a graph and print its nodes and connections",
	Long: `Builds the document and prints every node with its ports and the connection
each port takes part in. The argument is a file path, a document name from the
configured loader, or "-" for stdin.`,
	Args: cobra.ExactArgs(1),
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

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.FromGraph(g))
		}
		return engine.Print(cmd.OutOrStdout(), g)
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().Bool("json", false, "Print the graph as JSON instead of text")
}
