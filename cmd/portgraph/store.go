package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/portgraph/internal/cli"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stored graph documents",
	Long:  `Saves, reads, lists and deletes documents in the configured store (file or redis).`,
}

var storePutCmd = &cobra.Command{
	Use:   "put <name> <file|->",
	Short: "Validate and save a document under name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[1] == cli.Stdin {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[1])
		}
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		store, closeFn, err := cli.OpenStore(app.cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := store.Save(cmd.Context(), args[0], data); err != nil {
			return err
		}
		app.logger.Info("Document saved", "document", args[0], "loader", app.cfg.Loader.Kind)
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := cli.OpenStore(app.cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		doc, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored document names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := cli.OpenStore(app.cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := cli.OpenStore(app.cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeDeleteCmd)
}
