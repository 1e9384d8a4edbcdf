package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/urmzd/homai-supla/pkg/api"
	"github.com/urmzd/homai-supla/pkg/app"

	_ "github.com/urmzd/homai-supla/docs"
)

// @title           Homai Supla API
// @version         1.0
// @description     REST API for Supla roller shutters, gates and switches

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

var (
	flagDB       string
	flagProfile  string
	flagConfig   string
	flagLogLevel string
	flagAddress  string
)

var rootCmd = &cobra.Command{
	Use:   "homai-supla-api",
	Short: "REST API for Supla Cloud covers and switches",
	Long: `homai-supla-api authenticates against the configured Supla Cloud servers,
loads their roller shutters, gates and switches as entities, polls them within
the servers' API call budget and serves them over HTTP.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagDB, "db", "", "Path to database file (default: ~/.config/homai-supla/homai-supla.db)")
	rootCmd.Flags().StringVar(&flagProfile, "profile", "", "Profile to activate, created if missing (default: the stored active profile)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML file whose supla servers replace those of the active profile")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flagAddress, "addr", "", "Listen address (default: the active profile's API server)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
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

	addr := a.Config.APIAddress()
	if flagAddress != "" {
		addr = flagAddress
	}

	router := api.NewRouter(a.Controller)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down API server")
		}
	}()

	log.Info().Str("address", addr).Msg("Starting API server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server failed")
		return err
	}
	return nil
}
