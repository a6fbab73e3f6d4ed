package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	"storefront.GO/service/importer"
)

var (
	importFile   string
	importBatch  int
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import products from CSV into the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := importer.ImportProducts(context.Background(), db, f, importer.Options{
			BatchSize: importBatch,
			DryRun:    importDryRun,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}
		fmt.Printf(`
=== Import Report ===
CSV rows:   %d
Created:    %d
Updated:    %d
Skipped:    %d
Total time: %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
			res.TotalTime.Round(time.Millisecond))
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "products.csv", "CSV file to import")
	importCmd.Flags().IntVarP(&importBatch, "batch", "b", 100, "Rows per insert batch")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate without writing")
	rootCmd.AddCommand(importCmd)
}
