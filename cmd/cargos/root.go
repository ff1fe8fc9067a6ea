package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/config"
)

var (
	flagDataDir string
	flagDev     bool
)

var rootCmd = &cobra.Command{
	Use:   "cargos",
	Short: "Generate uniform cost documents from store spreadsheets",
	Long: "cargos parses uniform request spreadsheets, prices each person's " +
		"garments against the occupation catalog and renders CARGO and " +
		"AUTORIZACION documents per person and store.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagDev, "dev", false, "development mode")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadConfig loads config.toml and applies the persistent flag overrides.
func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagDataDir != "" {
		cfg.Data.DataDir = flagDataDir
	}
	if flagDev {
		cfg.Server.DevMode = true
	}
	return cfg, nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
