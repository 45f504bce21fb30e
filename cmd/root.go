package cmd

import (
	"billora-backend/internal/utils"
	"billora-backend/internal/utils/logger"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "1.0.0"
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "billora",
	Short:   "Billora invoicing backend",
	Long:    `Billora serves the invoice AI analysis, tag suggestion, QR lookup and invoice email endpoints.`,
	Version: version,
	RunE:    runServe,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the layered configuration and sets up the global logger from it.
func loadConfig() (*utils.Config, error) {
	cfg, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Setup(logger.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}); err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")
}
