package main

import (
	"fmt"
	"os"

	"github.com/aretw0/portgraph/internal/cli"
	"github.com/aretw0/portgraph/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file|name|->",
	Short: "Summarize a graph as Markdown",
	Long:  `Builds the document and renders a per-node table of ports and peers. Use --raw for plain Markdown.`,
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

		md := engine.Describe(g)
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		width, _ := cmd.Flags().GetInt("width")
		out, err := tui.NewRenderer(width)(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print Markdown without terminal styling")
	describeCmd.Flags().Int("width", 0, "Word-wrap width (0 keeps the default)")
}
