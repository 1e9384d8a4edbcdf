package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/urmzd/homai-supla/pkg/app"
	suplamcp "github.com/urmzd/homai-supla/pkg/mcp"
)

var (
	flagDB       string
	flagProfile  string
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:          "homai-supla-mcp",
	Short:        "MCP server for Supla Cloud covers and switches",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagDB, "db", "", "Path to database file (default: ~/.config/homai-supla/homai-supla.db)")
	rootCmd.Flags().StringVar(&flagProfile, "profile", "", "Profile to activate, created if missing (default: the stored active profile)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML file whose supla servers replace those of the active profile")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Logging must go to stderr, stdout is the MCP transport
	if err := app.SetupLogging(os.Stderr, flagLogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Start(ctx, app.Options{DBPath: flagDB, Profile: flagProfile, ConfigPath: flagConfig})
	if err != nil {
		return err
	}
	defer a.Close()

	mcpServer := suplamcp.NewServer(a.Controller)

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Error().Err(err).Msg("MCP server failed")
		return err
	}
	return nil
}
