package services

import (
	"errors"

	"aviasales-scraper/models"
	"aviasales-scraper/trips"
	"aviasales-scraper/utils"
)

// ErrNoInput is returned when a session's ticket collection is absent
// entirely. Per-ticket malformation never produces an error; zero scraped
// tickets yields an empty summary.
var ErrNoInput = errors.New("pipeline: ticket collection is absent")

// Pipeline wires the per-session stages together:
// parse → classify → rank → aggregate.
type Pipeline struct {
	parser *Parser
	policy Policy
	logger *utils.Logger
}

// NewPipeline creates a Pipeline for the itinerary template and policy.
func NewPipeline(it trips.Itinerary, policy Policy, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		parser: NewParser(it, logger),
		policy: policy,
		logger: logger,
	}
}

// BuildSummary runs one session's raw tickets through the whole pipeline.
// The returned summary's Tickets are in ranker order and its Groups in
// price-ascending order.
func (p *Pipeline) BuildSummary(token string, raw []*models.RawTicket) (*models.SessionSummary, error) {
	if raw == nil {
		return nil, ErrNoInput
	}

	parsed := make([]*models.ParsedTicket, 0, len(raw))
	for _, r := range raw {
		t := p.parser.Parse(*r)
		t.Matches = p.policy.Classify(t.Segments)
		parsed = append(parsed, t)
	}

	ranked := Rank(parsed)
	groups := Aggregate(ranked, p.parser.LegCount())

	matching := 0
	for _, t := range ranked {
		if t.Matches {
			matching++
		}
	}
	p.logger.Info("[pipeline] %s: %d tickets, %d matching, %d price groups",
		token, len(ranked), matching, len(groups))

	return &models.SessionSummary{
		Token:   token,
		Tickets: ranked,
		Groups:  groups,
	}, nil
}
