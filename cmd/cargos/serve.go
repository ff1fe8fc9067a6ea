package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leonardocandio/cargos/internal/config"
	"github.com/leonardocandio/cargos/internal/model"
	"github.com/leonardocandio/cargos/internal/server"
	"github.com/leonardocandio/cargos/internal/service/docgen"
	"github.com/leonardocandio/cargos/internal/store"
)

var flagPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagPort > 0 {
		cfg.Server.Port = flagPort
	}

	log, err := newLogger(cfg.Server.DevMode)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.New(config.DatabasePath(dataDir))
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer st.Close()

	generator := newGenerator(cfg, log)
	srv := server.New(cfg, st, generator, log)

	log.Info("server starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("dataDir", dataDir))
	return srv.Run()
}

func newGenerator(cfg *config.AppConfig, log *zap.Logger) *docgen.Generator {
	templates := map[model.DocumentKind]string{
		model.KindCargo:        cfg.Templates.Cargo,
		model.KindAutorizacion: cfg.Templates.Autorizacion,
	}
	gen := docgen.NewGenerator(docgen.TextRenderer{}, docgen.TextMerger{}, templates, log)
	gen.SetWorkers(cfg.Generation.Workers)
	return gen
}
