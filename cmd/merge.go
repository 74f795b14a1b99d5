package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"aviasales-scraper/services"
	"aviasales-scraper/storage"
	"aviasales-scraper/trips"
)

var mergeDir string

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Combine existing session workbooks into one summary",
	Long: `Reads the summary sheet out of every session workbook in the output
directory and writes a single combined workbook, one labelled section per
session in filename order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := mergeDir
		if dir == "" {
			dir = cfg.OutputDir
		}

		paths, err := storage.ListSessionWorkbooks(dir)
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no session workbooks in %s", dir)
		}
		logger.Info("[merge] Found %d session workbook(s) in %s", len(paths), dir)

		it := trips.DefaultItinerary()
		sections := make([]services.SummarySection, 0, len(paths))
		for _, path := range paths {
			rows, err := storage.ReadSummarySheet(path)
			if err != nil {
				logger.Warn("[merge] Skipping %s: %v", filepath.Base(path), err)
				continue
			}
			sections = append(sections, services.SummarySection{
				Label: workbookLabel(path, it),
				Rows:  rows,
			})
			logger.Debug("[merge] %s: %d rows", filepath.Base(path), len(rows))
		}
		if len(sections) == 0 {
			return fmt.Errorf("no readable summary sheets in %s", dir)
		}

		out := storage.MergedFileName(dir, time.Now())
		if err := storage.WriteMergedWorkbook(out, services.MergeSections(sections)); err != nil {
			return fmt.Errorf("write merged workbook: %w", err)
		}
		logger.Info("[merge] Wrote %s (%d sections)", out, len(sections))
		return nil
	},
}

// workbookLabel derives a section header from the workbook's name. Names
// that do not decode keep the bare filename so the stray workbook stays
// identifiable in the combined report.
func workbookLabel(path string, it trips.Itinerary) string {
	base := filepath.Base(path)
	dec := trips.Decode(base)
	if !dec.OK {
		return base
	}
	return trips.SectionLabel(dec, it)
}

func init() {
	mergeCmd.Flags().StringVar(&mergeDir, "dir", "", "directory to scan (default: output dir)")
	rootCmd.AddCommand(mergeCmd)
}
