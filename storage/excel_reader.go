package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ReadSummarySheet reads a session workbook's summary sheet back as data
// rows, header excluded. Workbooks without the sheet yield nil rows rather
// than an error so a mixed output directory does not abort a merge.
func ReadSummarySheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excel: open %q: %w", path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(summarySheet); err != nil || idx < 0 {
		return nil, nil
	}

	rows, err := f.GetRows(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("excel: read %q summary: %w", path, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// ListSessionWorkbooks returns the per-session workbooks in dir, sorted by
// name so sessions merge in date order.
func ListSessionWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("excel: read output dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSessionWorkbook(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
