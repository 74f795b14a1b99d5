package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aviasales-scraper/models"
	"aviasales-scraper/trips"
)

func summaryOf(token, price string) models.SessionSummary {
	return models.SessionSummary{
		Token: token,
		Groups: []models.PriceGroup{
			{
				Price:    price,
				Count:    1,
				HasMatch: true,
				Legs: []models.LegLabels{
					{Routes: "MOW→DXB", Dates: "21 фев", Times: "08:30"},
					{Routes: "DXB→MRU", Dates: "25 фев", Times: "16:00"},
					{Routes: "MRU→MOW", Dates: "5 мар", Times: "02:00"},
				},
			},
		},
	}
}

func TestSummaryRowColumns(t *testing.T) {
	row := SummaryRow(summaryOf("MOW2102DXB2502MRU0503MOW", "30 000 ₽").Groups[0])
	require.Len(t, row, 11)
	assert.Equal(t, "30 000 ₽", row[0])
	assert.Equal(t, "1", row[1])
	assert.Equal(t, "MOW→DXB", row[2])
	assert.Equal(t, "5 мар", row[9])
	assert.Equal(t, "02:00", row[10])
}

func TestMergeSessionsTwoSections(t *testing.T) {
	it := trips.DefaultItinerary()
	sessions := []models.SessionSummary{
		summaryOf("MOW2102DXB2502MRU0503MOW", "30 000 ₽"),
		summaryOf("MOW2202DXB2602MRU0603MOW", "28 000 ₽"),
	}

	rows := MergeSessions(sessions, it)
	// Per session: header + 1 data row + blank separator.
	require.Len(t, rows, 6)

	assert.Equal(t,
		[]string{"═══ 21.02 → 25.02 → 05.03  |  Дубай 4н, Маврикий 8н ═══"},
		rows[0])
	assert.Equal(t, "30 000 ₽", rows[1][0])
	assert.Empty(t, rows[2])

	assert.Equal(t,
		[]string{"═══ 22.02 → 26.02 → 06.03  |  Дубай 4н, Маврикий 8н ═══"},
		rows[3])
	assert.Equal(t, "28 000 ₽", rows[4][0])
	assert.Empty(t, rows[5])
}

func TestMergeSessionsKeepsInputOrder(t *testing.T) {
	it := trips.DefaultItinerary()
	// Later dates supplied first stay first; the merger never re-sorts.
	rows := MergeSessions([]models.SessionSummary{
		summaryOf("MOW2202DXB2602MRU0603MOW", "28 000 ₽"),
		summaryOf("MOW2102DXB2502MRU0503MOW", "30 000 ₽"),
	}, it)

	assert.Contains(t, rows[0][0], "22.02")
	assert.Contains(t, rows[3][0], "21.02")
}

func TestMergeEmptySessionEmitsHeaderAndSeparatorOnly(t *testing.T) {
	it := trips.DefaultItinerary()
	rows := MergeSessions([]models.SessionSummary{
		{Token: "MOW2102DXB2502MRU0503MOW"},
	}, it)

	require.Len(t, rows, 2)
	assert.Contains(t, rows[0][0], "21.02")
	assert.Empty(t, rows[1])
}

func TestMergeUnknownTokenUsesSentinelLabel(t *testing.T) {
	rows := MergeSessions([]models.SessionSummary{{Token: "garbage"}},
		trips.DefaultItinerary())
	assert.Equal(t, []string{"═══ unknown ═══"}, rows[0])
}

func TestMergeSectionsPreservesRows(t *testing.T) {
	rows := MergeSections([]SummarySection{
		{Label: "first", Rows: [][]string{{"a"}, {"b"}}},
		{Label: "second", Rows: [][]string{{"c"}}},
	})

	assert.Equal(t, [][]string{
		{"═══ first ═══"},
		{"a"},
		{"b"},
		{},
		{"═══ second ═══"},
		{"c"},
		{},
	}, rows)
}
