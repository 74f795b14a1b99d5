package services

import "aviasales-scraper/models"

// Policy is the itinerary-matching rule: one entry per leg giving the
// maximum stop count tolerated on that leg. A direct leg counts as zero
// stops; a leg with an unknown connection never matches.
type Policy []int

// DefaultPolicy encodes the preferred itinerary shape: the two outbound
// legs must be direct, the return leg may have one stop.
func DefaultPolicy() Policy { return Policy{0, 0, 1} }

// Classify reports whether the ordered segments satisfy the policy. It is
// a pure function of the segments' connection values.
func (p Policy) Classify(segments []models.FlightSegment) bool {
	if len(segments) < len(p) {
		return false
	}
	for i, maxStops := range p {
		c := segments[i].Connection
		switch c.Kind {
		case models.ConnectionDirect:
		case models.ConnectionStops:
			if c.Stops > maxStops {
				return false
			}
		default:
			return false
		}
	}
	return true
}
