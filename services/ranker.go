package services

import (
	"regexp"
	"sort"
	"strconv"

	"aviasales-scraper/models"
)

const (
	// priceSentinel sorts tickets without a parsable price last.
	priceSentinel = 999999
	// timeSentinel sorts tickets without a parsable departure time last.
	timeSentinel = 9999
)

var (
	nonDigitRegexp = regexp.MustCompile(`\D`)
	clockRegexp    = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// numericPrice strips the price display string to its digits. Absent or
// non-numeric prices (and a literal zero) yield the sentinel.
func numericPrice(display string) int {
	digits := nonDigitRegexp.ReplaceAllString(display, "")
	if digits == "" {
		return priceSentinel
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return priceSentinel
	}
	return n
}

// timeToMinutes converts an HH:MM string to minutes since midnight,
// or the sentinel when the string has no clock in it.
func timeToMinutes(s string) int {
	m := clockRegexp.FindStringSubmatch(s)
	if m == nil {
		return timeSentinel
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

// Rank returns the tickets in presentation order: matching tickets first,
// then numeric price ascending, then first-leg departure time ascending.
// The sort is stable, so full ties keep extraction order. The input slice
// is left untouched.
func Rank(tickets []*models.ParsedTicket) []*models.ParsedTicket {
	ranked := make([]*models.ParsedTicket, len(tickets))
	copy(ranked, tickets)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.Matches != b.Matches {
			return a.Matches
		}

		pa, pb := numericPrice(a.Source.Price), numericPrice(b.Source.Price)
		if pa != pb {
			return pa < pb
		}

		return timeToMinutes(firstLegDeparture(a)) < timeToMinutes(firstLegDeparture(b))
	})

	return ranked
}

func firstLegDeparture(t *models.ParsedTicket) string {
	if len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[0].DepartTime
}
