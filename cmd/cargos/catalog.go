package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leonardocandio/cargos/internal/catalog"
	"github.com/leonardocandio/cargos/internal/config"
	"github.com/leonardocandio/cargos/internal/store"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and edit the occupation catalog",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the catalog as YAML (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogExport,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the catalog from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogImport,
}

func init() {
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogImportCmd)
}

func openCatalogStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return store.New(config.DatabasePath(dataDir))
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	st, err := openCatalogStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := st.LoadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	data, err := catalog.MarshalYAML(cat)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if len(args) == 0 {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(args[0], data, 0644)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	cat, err := catalog.UnmarshalYAML(data)
	if err != nil {
		return fmt.Errorf("invalid catalog file: %w", err)
	}

	st, err := openCatalogStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveCatalog(cat); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d occupations\n", len(cat.Occupations))
	return nil
}
