package main

import (
	"fmt"
	"os"

	"github.com/aretw0/portgraph/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|name|->",
	Short: "Check the graph for loose ends",
	Long: `Builds the document, then reports unconnected ports, nodes without ports and
nodes no source node can reach. Build errors and, with --strict, unconnected
inputs fail the command.`,
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

		strict, _ := cmd.Flags().GetBool("strict")
		report, err := engine.Validate(g, strict)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range report.Findings {
			fmt.Fprintln(out, f.String())
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(out, "Graph is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat unconnected inputs as errors")
}
