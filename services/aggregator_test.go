package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aviasales-scraper/models"
)

func TestAggregateRetainsGroupWithAnyMatch(t *testing.T) {
	matching := makeTicket("30 000 ₽", true, "08:00")
	nonMatching := makeTicket("30 000 ₽", false, "14:00")

	groups := Aggregate([]*models.ParsedTicket{matching, nonMatching}, 3)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "30 000 ₽", g.Price)
	assert.Equal(t, 2, g.Count)
	assert.True(t, g.HasMatch)
}

func TestAggregateDropsGroupsWithoutMatch(t *testing.T) {
	groups := Aggregate([]*models.ParsedTicket{
		makeTicket("30 000 ₽", true, "08:00"),
		makeTicket("50 000 ₽", false, "09:00"),
		makeTicket("50 000 ₽", false, "10:00"),
	}, 3)

	require.Len(t, groups, 1)
	assert.Equal(t, "30 000 ₽", groups[0].Price)
	for _, g := range groups {
		assert.True(t, g.HasMatch)
	}
}

func TestAggregateSortsGroupsByNumericPrice(t *testing.T) {
	groups := Aggregate([]*models.ParsedTicket{
		makeTicket("уточнить", true, "08:00"),
		makeTicket("45 000 ₽", true, "08:00"),
		makeTicket("30 000 ₽", true, "08:00"),
	}, 3)

	require.Len(t, groups, 3)
	assert.Equal(t, "30 000 ₽", groups[0].Price)
	assert.Equal(t, "45 000 ₽", groups[1].Price)
	// Unparsable price carries the sentinel value and sorts last.
	assert.Equal(t, "уточнить", groups[2].Price)
}

func TestAggregateCollectsSortedLabelSets(t *testing.T) {
	a := makeTicket("30 000 ₽", true, "14:00")
	a.Segments[0].DepartDate = "22 фев"
	b := makeTicket("30 000 ₽", true, "08:00")
	b.Segments[0].DepartDate = "21 фев"
	c := makeTicket("30 000 ₽", true, "08:00") // duplicate time, deduplicated
	c.Segments[0].DepartDate = "21 фев"

	groups := Aggregate([]*models.ParsedTicket{a, b, c}, 3)
	require.Len(t, groups, 1)

	leg := groups[0].Legs[0]
	assert.Equal(t, "MOW→DXB", leg.Routes)
	assert.Equal(t, "21 фев, 22 фев", leg.Dates)
	assert.Equal(t, "08:00, 14:00", leg.Times)
}

func TestAggregateLabelSetOrderIndependent(t *testing.T) {
	a := makeTicket("30 000 ₽", true, "14:00")
	b := makeTicket("30 000 ₽", true, "08:00")

	forward := Aggregate([]*models.ParsedTicket{a, b}, 3)
	reversed := Aggregate([]*models.ParsedTicket{b, a}, 3)
	assert.Equal(t, forward, reversed)
}

func TestAggregateIdempotent(t *testing.T) {
	tickets := []*models.ParsedTicket{
		makeTicket("30 000 ₽", true, "08:00"),
		makeTicket("45 000 ₽", false, "09:00"),
		makeTicket("45 000 ₽", true, "10:00"),
	}

	first := Aggregate(tickets, 3)
	second := Aggregate(tickets, 3)
	assert.Equal(t, first, second)
}

func TestAggregateAbsentPriceFallsIntoNoPriceGroup(t *testing.T) {
	groups := Aggregate([]*models.ParsedTicket{
		makeTicket("", true, "08:00"),
		makeTicket("", false, "09:00"),
	}, 3)

	require.Len(t, groups, 1)
	assert.Equal(t, NoPriceLabel, groups[0].Price)
	assert.Equal(t, 2, groups[0].Count)
}

func TestAggregateEmptyFieldsLeaveSetsEmpty(t *testing.T) {
	ticket := makeTicket("30 000 ₽", true, "")
	ticket.Segments[1].From = ""
	ticket.Segments[1].To = ""

	groups := Aggregate([]*models.ParsedTicket{ticket}, 3)
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Legs[0].Times)
	assert.Empty(t, groups[0].Legs[1].Routes)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil, 3))
}
