package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aviasales-scraper/models"
)

func makeTicket(price string, matches bool, depart string) *models.ParsedTicket {
	return &models.ParsedTicket{
		Segments: []models.FlightSegment{
			{DepartTime: depart, From: "MOW", To: "DXB"},
			{From: "DXB", To: "MRU"},
			{From: "MRU", To: "MOW"},
		},
		Source:  models.RawTicket{Price: price},
		Matches: matches,
	}
}

func TestNumericPrice(t *testing.T) {
	tests := []struct {
		display string
		want    int
	}{
		{"45 000 ₽", 45000},
		{"30 000 ₽", 30000},
		{"уточнить", priceSentinel},
		{"", priceSentinel},
		{"0 ₽", priceSentinel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, numericPrice(tt.display), "price %q", tt.display)
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"08:30", 510},
		{"00:00", 0},
		{"23:45", 1425},
		{"", timeSentinel},
		{"noon", timeSentinel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timeToMinutes(tt.s), "time %q", tt.s)
	}
}

func TestRankMatchesFirstRegardlessOfPrice(t *testing.T) {
	cheap := makeTicket("10 000 ₽", false, "08:00")
	pricey := makeTicket("90 000 ₽", true, "09:00")

	ranked := Rank([]*models.ParsedTicket{cheap, pricey})
	require.Len(t, ranked, 2)
	assert.Same(t, pricey, ranked[0])
	assert.Same(t, cheap, ranked[1])
}

func TestRankByPriceThenDeparture(t *testing.T) {
	a := makeTicket("40 000 ₽", true, "12:00")
	b := makeTicket("30 000 ₽", true, "18:00")
	c := makeTicket("30 000 ₽", true, "06:00")

	ranked := Rank([]*models.ParsedTicket{a, b, c})
	assert.Equal(t, []*models.ParsedTicket{c, b, a}, ranked)
}

func TestRankUnparsablePriceSortsLast(t *testing.T) {
	known := makeTicket("99 000 ₽", true, "10:00")
	unknown := makeTicket("уточнить", true, "08:00")

	ranked := Rank([]*models.ParsedTicket{unknown, known})
	assert.Same(t, known, ranked[0])
	assert.Same(t, unknown, ranked[1])
}

func TestRankMissingDepartureSortsLast(t *testing.T) {
	timed := makeTicket("30 000 ₽", true, "23:59")
	untimed := makeTicket("30 000 ₽", true, "")

	ranked := Rank([]*models.ParsedTicket{untimed, timed})
	assert.Same(t, timed, ranked[0])
	assert.Same(t, untimed, ranked[1])
}

func TestRankIsStableOnFullTies(t *testing.T) {
	first := makeTicket("30 000 ₽", true, "10:00")
	second := makeTicket("30 000 ₽", true, "10:00")
	third := makeTicket("30 000 ₽", true, "10:00")

	ranked := Rank([]*models.ParsedTicket{first, second, third})
	assert.Equal(t, []*models.ParsedTicket{first, second, third}, ranked)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	a := makeTicket("50 000 ₽", false, "10:00")
	b := makeTicket("20 000 ₽", true, "10:00")
	input := []*models.ParsedTicket{a, b}

	Rank(input)
	assert.Equal(t, []*models.ParsedTicket{a, b}, input)
}
