package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"weather-now/internal/config"
	"weather-now/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the weather lookup server",
	Long:  `Start the HTTP server that serves current weather lookups, presentation keys, and condition icons.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	log.Info("Starting weather lookup server",
		zap.String("config_path", configPath),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port))

	srv := server.NewServer(log, tele)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		if err := srv.Shutdown(); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		if tele != nil {
			if err := tele.Shutdown(context.Background()); err != nil {
				log.Warn("Error during telemetry shutdown", zap.Error(err))
			}
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
