package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"aviasales-scraper/models"
	"aviasales-scraper/trips"
)

// filePrefix marks every session output file.
const filePrefix = "as"

// mergedMarker distinguishes combined-summary workbooks so the merge
// command can skip them when scanning the output directory.
const mergedMarker = "СВОДКИ"

// timestampLayout is MM-DD_HH-MM.
const timestampLayout = "01-02_15-04"

// BuildFileNames derives the per-session output paths from the search URL:
// as_<ddmm-ddmm-ddmm>_<route>_<MM-DD_HH-MM>.<ext>. An unrecognized URL
// yields the literal "unknown" in both slots.
func BuildFileNames(outputDir, searchURL string, now time.Time) models.FileNames {
	dec := trips.Decode(searchURL)
	base := fmt.Sprintf("%s_%s_%s_%s", filePrefix, dec.Dates, dec.Route, now.Format(timestampLayout))

	return models.FileNames{
		Excel:      filepath.Join(outputDir, base+".xlsx"),
		JSON:       filepath.Join(outputDir, base+"-all.json"),
		Screenshot: filepath.Join(outputDir, base+".png"),
		Dates:      dec.Dates,
		Route:      dec.Route,
		CreatedAt:  now,
	}
}

// MergedFileName is the combined-summary workbook path.
func MergedFileName(outputDir string, now time.Time) string {
	return filepath.Join(outputDir,
		fmt.Sprintf("%s_%s_%s.xlsx", filePrefix, mergedMarker, now.Format(timestampLayout)))
}

// IsSessionWorkbook reports whether a file name looks like a per-session
// workbook produced by this tool (and not a merged one).
func IsSessionWorkbook(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, filePrefix+"_") &&
		strings.HasSuffix(base, ".xlsx") &&
		!strings.Contains(base, mergedMarker)
}
