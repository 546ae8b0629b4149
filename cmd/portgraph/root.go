package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/portgraph"
	"github.com/aretw0/portgraph/internal/cli"
	"github.com/aretw0/portgraph/internal/config"
	"github.com/aretw0/portgraph/internal/logging"
	"github.com/spf13/cobra"
)

// app holds what every command shares once flags are parsed.
var app struct {
	cfg    *config.Config
	logger *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "portgraph",
	Short: "Portgraph builds node graphs from port and connection documents",
	Long: `Portgraph reads JSON or YAML documents that declare nodes with named input
and output ports plus the connections between them, builds the graph in two
phases and prints, renders or serves it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "portgraph.yaml", "Config file (YAML or JSON); missing means defaults")
	rootCmd.PersistentFlags().String("dir", "", "Directory holding the graph documents (overrides loader.dir)")
	rootCmd.PersistentFlags().String("loader", "", "Document source: file, loam or redis (overrides loader.kind)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides log.level)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides log.format)")
	rootCmd.SilenceErrors = true
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Loader.Dir = dir
	}
	if kind, _ := cmd.Flags().GetString("loader"); kind != "" {
		cfg.Loader.Kind = kind
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.logger = logging.New(level, logging.Format(cfg.Log.Format))
	return nil
}

// newEngine creates the engine for the configured loader. Callers defer the
// returned close func.
func newEngine(opts ...portgraph.Option) (*portgraph.Engine, func() error, error) {
	return cli.CreateEngine(app.cfg, app.logger, opts...)
}
