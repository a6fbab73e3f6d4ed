package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	"storefront.GO/service/catalogsync"
)

var syncCmd = &cobra.Command{
	Use:   "categories:sync",
	Short: "Pull category trees from configured marketplaces into the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		sources := catalogsync.ConfiguredSources()
		if len(sources) == 0 {
			fmt.Println("No marketplace credentials configured (EBAY_*, WALMART_*, SHEIN_*).")
			return
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		for _, res := range catalogsync.SyncAll(ctx, db) {
			fmt.Printf("%s: seen=%d created=%d (%s)\n",
				res.Marketplace, res.Seen, res.Created, res.TotalTime.Round(time.Millisecond))
			for _, w := range res.Warnings {
				fmt.Printf("  [warn] %s\n", w)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
