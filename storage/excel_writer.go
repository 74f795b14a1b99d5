package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"aviasales-scraper/models"
	"aviasales-scraper/services"
)

const (
	detailSheet  = "Билеты"
	summarySheet = "Сводка"
	mergedSheet  = "Все сводки"
)

var detailHeader = []string{
	"✓", "№", "Цена",
	"Р1", "Р1 Дата", "Р1 Вылет", "Р1 Дата2", "Р1 Прилёт", "Р1 Время", "Р1 Тип",
	"Р2", "Р2 Дата", "Р2 Вылет", "Р2 Дата2", "Р2 Прилёт", "Р2 Время", "Р2 Тип",
	"Р3", "Р3 Дата", "Р3 Вылет", "Р3 Дата2", "Р3 Прилёт", "Р3 Время", "Р3 Тип",
}

var summaryHeader = []string{
	"Цена", "Кол-во",
	"Р1", "Р1 Дата", "Р1 Вылет",
	"Р2", "Р2 Дата", "Р2 Вылет",
	"Р3", "Р3 Дата", "Р3 Вылет",
}

var (
	detailWidths = []float64{
		3, 4, 12,
		9, 6, 5, 6, 5, 8, 10,
		9, 6, 5, 6, 5, 8, 10,
		9, 6, 5, 6, 5, 8, 10,
	}
	summaryWidths = []float64{12, 5, 10, 8, 14, 10, 8, 14, 10, 8, 14}
	mergedWidths  = []float64{25, 5, 10, 8, 14, 10, 8, 14, 10, 8, 14}
)

// WriteSessionWorkbook writes one session's detail and summary sheets.
func WriteSessionWorkbook(path string, summary *models.SessionSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("excel: create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return fmt.Errorf("excel: rename sheet: %w", err)
	}
	if err := writeSheet(f, detailSheet, detailHeader, detailRows(summary.Tickets), detailWidths); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("excel: add summary sheet: %w", err)
	}
	if err := writeSheet(f, summarySheet, summaryHeader, summaryRows(summary.Groups), summaryWidths); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: save %q: %w", path, err)
	}
	return nil
}

// WriteMergedWorkbook writes the combined multi-session summary.
func WriteMergedWorkbook(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("excel: create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", mergedSheet); err != nil {
		return fmt.Errorf("excel: rename sheet: %w", err)
	}
	if err := writeSheet(f, mergedSheet, summaryHeader, rows, mergedWidths); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: save %q: %w", path, err)
	}
	return nil
}

func detailRows(tickets []*models.ParsedTicket) [][]string {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		match := ""
		if t.Matches {
			match = "✓"
		}
		row := []string{match, strconv.Itoa(t.Source.Index), t.Source.Price}
		for _, seg := range t.Segments {
			row = append(row,
				seg.Route(), seg.DepartDate, seg.DepartTime,
				seg.ArriveDate, seg.ArriveTime, seg.Duration,
				seg.Connection.Label())
		}
		rows = append(rows, row)
	}
	return rows
}

func summaryRows(groups []models.PriceGroup) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, services.SummaryRow(g))
	}
	return rows
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, widths []float64) error {
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return fmt.Errorf("excel: write header: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("excel: write row %d: %w", i+2, err)
		}
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("excel: set column width: %w", err)
		}
	}
	return nil
}
