package cmd

import (
	"github.com/spf13/cobra"

	"aviasales-scraper/config"
	"aviasales-scraper/utils"
)

var (
	cfg     *config.Config
	logger  *utils.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "aviasales-scraper",
	Short: "Scrape Aviasales multi-city searches into Excel summaries",
	Long: `Scrapes Aviasales multi-city search pages, extracts the ticket cards,
filters them against the per-leg connection policy and writes a per-search
Excel workbook plus a merged summary across all searches.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.SetVerbose(verbose)
		cfg = config.Load()
		logger = utils.NewLogger()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
