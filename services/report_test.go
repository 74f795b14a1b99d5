package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aviasales-scraper/models"
	"aviasales-scraper/trips"
)

func TestRunReportPicksCheapestSession(t *testing.T) {
	svc := NewReportService(trips.DefaultItinerary(), newTestLogger())

	sessions := []models.SessionSummary{
		summaryOf("MOW2102DXB2502MRU0503MOW", "30 000 ₽"),
		summaryOf("MOW2202DXB2602MRU0603MOW", "28 000 ₽"),
	}
	sessions[0].Tickets = []*models.ParsedTicket{
		makeTicket("30 000 ₽", true, "08:00"),
		makeTicket("40 000 ₽", false, "09:00"),
	}
	sessions[1].Tickets = []*models.ParsedTicket{
		makeTicket("28 000 ₽", true, "10:00"),
	}

	r := svc.Generate(sessions)
	assert.Equal(t, 2, r.Sessions)
	assert.Equal(t, 3, r.TotalTickets)
	assert.Equal(t, 2, r.MatchingTickets)
	assert.Equal(t, 2, r.PriceGroups)
	assert.Equal(t, "28 000 ₽", r.BestPrice)
	assert.Contains(t, r.BestPriceLabel, "22.02")
}

func TestRunReportEmpty(t *testing.T) {
	svc := NewReportService(trips.DefaultItinerary(), newTestLogger())
	r := svc.Generate(nil)
	assert.Zero(t, r.TotalTickets)
	assert.Empty(t, r.BestPrice)
}
