package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leonardocandio/cargos/internal/config"
	"github.com/leonardocandio/cargos/internal/model"
	"github.com/leonardocandio/cargos/internal/service/workbook"
	"github.com/leonardocandio/cargos/internal/store"
)

var (
	flagWorkbook  string
	flagOutput    string
	flagLocations []string
	flagKinds     []string
	flagCombine   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Parse a spreadsheet and generate documents",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&flagWorkbook, "file", "f", "", "spreadsheet to parse (.xlsx or .xls)")
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory (overrides config)")
	generateCmd.Flags().StringSliceVar(&flagLocations, "locations", nil, "tiendas to generate for (default: all)")
	generateCmd.Flags().StringSliceVar(&flagKinds, "kinds", nil, "document kinds to render (default: all)")
	generateCmd.Flags().BoolVar(&flagCombine, "combine", false, "also write one combined file per location")
	generateCmd.MarkFlagRequired("file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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

	cat, err := st.LoadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	parser := workbook.NewParser(log)
	wb, err := parser.ParseFile(flagWorkbook)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", flagWorkbook, err)
	}

	kinds := model.AllKinds()
	if len(flagKinds) > 0 {
		kinds = kinds[:0]
		for _, name := range flagKinds {
			kind, err := model.ParseDocumentKind(name)
			if err != nil {
				return err
			}
			kinds = append(kinds, kind)
		}
	}

	dest := flagOutput
	if dest == "" {
		dest = cfg.Generation.OutputDir
	}

	generator := newGenerator(cfg, log)
	result := generator.Generate(cmd.Context(), wb, cat, model.GenerationOptions{
		SelectedLocations:  flagLocations,
		CombinePerLocation: flagCombine,
		Kinds:              kinds,
		DestinationRoot:    dest,
	})

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", e)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)

	if !result.Success {
		return fmt.Errorf("generation failed: %s", result.Message)
	}
	return nil
}
