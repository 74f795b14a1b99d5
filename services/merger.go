package services

import (
	"strconv"

	"aviasales-scraper/models"
	"aviasales-scraper/trips"
)

// SummarySection is one session's block of the combined report: a derived
// header label plus that session's already-rendered summary rows.
type SummarySection struct {
	Label string
	Rows  [][]string
}

// SummaryRow renders one price group as the 11 summary columns:
// price, count, then route/date/time label sets for every leg.
func SummaryRow(g models.PriceGroup) []string {
	row := make([]string, 0, 2+3*len(g.Legs))
	row = append(row, g.Price, strconv.Itoa(g.Count))
	for _, leg := range g.Legs {
		row = append(row, leg.Routes, leg.Dates, leg.Times)
	}
	return row
}

// MergeSections concatenates session blocks in input order: a section
// header carrying the label, the session's rows, then one blank separator
// row. Sessions are not re-sorted; callers supply display order.
func MergeSections(sections []SummarySection) [][]string {
	var rows [][]string
	for _, s := range sections {
		rows = append(rows, []string{"═══ " + s.Label + " ═══"})
		rows = append(rows, s.Rows...)
		rows = append(rows, []string{})
	}
	return rows
}

// MergeSessions builds the combined report for in-memory session summaries,
// deriving each section label from the session's route/date token.
func MergeSessions(sessions []models.SessionSummary, it trips.Itinerary) [][]string {
	sections := make([]SummarySection, 0, len(sessions))
	for _, s := range sessions {
		section := SummarySection{Label: trips.SectionLabel(trips.Decode(s.Token), it)}
		for _, g := range s.Groups {
			section.Rows = append(section.Rows, SummaryRow(g))
		}
		sections = append(sections, section)
	}
	return MergeSections(sections)
}
