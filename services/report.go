package services

import (
	"fmt"
	"strings"

	"aviasales-scraper/models"
	"aviasales-scraper/trips"
	"aviasales-scraper/utils"
)

// RunReport holds the computed statistics over a whole scrape run.
type RunReport struct {
	Sessions        int
	TotalTickets    int
	MatchingTickets int
	PriceGroups     int
	BestPrice       string
	BestPriceLabel  string // section label of the session offering BestPrice
}

// ReportService computes and prints end-of-run statistics.
type ReportService struct {
	itinerary trips.Itinerary
	logger    *utils.Logger
}

func NewReportService(it trips.Itinerary, logger *utils.Logger) *ReportService {
	return &ReportService{itinerary: it, logger: logger}
}

// Generate aggregates statistics across the sessions of one run.
func (s *ReportService) Generate(sessions []models.SessionSummary) *RunReport {
	report := &RunReport{Sessions: len(sessions)}

	best := priceSentinel
	for _, session := range sessions {
		report.TotalTickets += len(session.Tickets)
		report.PriceGroups += len(session.Groups)
		for _, t := range session.Tickets {
			if t.Matches {
				report.MatchingTickets++
			}
		}
		// Groups are price-ascending, so the head is the session's best.
		if len(session.Groups) > 0 {
			if p := numericPrice(session.Groups[0].Price); p < best {
				best = p
				report.BestPrice = session.Groups[0].Price
				report.BestPriceLabel = trips.SectionLabel(trips.Decode(session.Token), s.itinerary)
			}
		}
	}

	return report
}

// Print writes the report to stdout.
func (s *ReportService) Print(r *RunReport) {
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n  Scrape run summary\n  %s\n", thin)
	fmt.Printf("  Sessions          : %d\n", r.Sessions)
	fmt.Printf("  Tickets extracted : %d\n", r.TotalTickets)
	fmt.Printf("  Matching tickets  : %d\n", r.MatchingTickets)
	fmt.Printf("  Price groups      : %d\n", r.PriceGroups)
	if r.BestPrice != "" {
		fmt.Printf("  Best price        : %s (%s)\n", r.BestPrice, r.BestPriceLabel)
	} else {
		fmt.Printf("  Best price        : no matching tickets found\n")
	}
	fmt.Println()
}
