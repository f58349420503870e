package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plantheque",
	Short: "Plant catalog scraper and library backend",
	Long: `Planthèque turns French gardening sites into a searchable plant catalog:
full-text search and attribute extraction on the nursery catalog, care
records resolved on the gardening magazine, and a curated local library
with photos and stats.

  plantheque serve                          start the HTTP API
  plantheque search "lavande"               scrape the catalog for a query
  plantheque resolve "Lavandula angustifolia"   locate a plant's care page`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
