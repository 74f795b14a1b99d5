package services

import (
	"regexp"
	"strconv"
	"strings"

	"aviasales-scraper/models"
	"aviasales-scraper/trips"
	"aviasales-scraper/utils"
)

var (
	// timeRegexp captures HH:MM departure/arrival times
	timeRegexp = regexp.MustCompile(`\d{2}:\d{2}`)
	// dateRegexp captures "21 фев" style day + month-abbreviation labels
	dateRegexp = regexp.MustCompile(`(?i)\d{1,2}\s*(?:янв|фев|мар|апр|мая|июн|июл|авг|сен|окт|ноя|дек)`)
	// airportRegexp captures 3-uppercase-letter IATA codes
	airportRegexp = regexp.MustCompile(`[A-Z]{3}`)
	// flightInfoRegexp captures duration-and-connection phrases like
	// "3 ч 40 м в пути, прямой" or "16 ч в пути, 1 пересадка"
	flightInfoRegexp = regexp.MustCompile(`(?i)\d+\s*[чд]\s*\d*\s*[чм]?\s*в пути[,\s]*(?:прямой|прямым|\d+\s*пересадк[аи]?)`)
	// durationRegexp captures the leading duration part of a flight-info phrase
	durationRegexp = regexp.MustCompile(`(?i)\d+\s*[чд]\s*\d*\s*[чм]?`)
	// stopsRegexp captures the stop count of a non-direct flight-info phrase
	stopsRegexp = regexp.MustCompile(`(\d+)\s*пересадк`)
)

// invisibleChars maps the separator characters the search page embeds in
// ticket text to plain spaces before whitespace collapsing.
var invisibleChars = strings.NewReplacer(
	"⁠", " ", // word joiner
	" ", " ", // non-breaking space
	"​", " ", // zero-width space
)

// endpointRule resolves one leg endpoint from the positional airport scan.
// The page has no structural segment markup, so endpoints are taken by list
// position with the itinerary template as fallback.
type endpointRule struct {
	scan     int    // index into the scanned code list; negative = always fallback
	fromEnd  bool   // when set, scan counts backwards from the end of the list
	fallback string // template code used when the scan yields nothing
}

func (r endpointRule) resolve(codes []string) string {
	if r.scan < 0 {
		return r.fallback
	}
	idx := r.scan
	if r.fromEnd {
		idx = len(codes) - 1 - r.scan
	}
	if idx < 0 || idx >= len(codes) {
		return r.fallback
	}
	return codes[idx]
}

type legTemplate struct {
	from endpointRule
	to   endpointRule
}

// Parser turns one ticket's flattened DOM text into typed flight segments.
// Extraction is heuristic and positional; missing fields degrade to empty
// strings or an unknown connection, never to an error.
type Parser struct {
	legs   []legTemplate
	logger *utils.Logger
}

// NewParser creates a Parser for the given itinerary template. The endpoint
// rules reproduce how the rendered page lays its airport codes out: the
// middle legs share codes with their neighbours, so the second destination
// and third origin are fixed template codes and the final destination is
// the last code scanned.
func NewParser(it trips.Itinerary, logger *utils.Logger) *Parser {
	r := it.Route
	return &Parser{
		logger: logger,
		legs: []legTemplate{
			{
				from: endpointRule{scan: 0, fallback: r[0]},
				to:   endpointRule{scan: 1, fallback: r[1]},
			},
			{
				from: endpointRule{scan: 2, fallback: r[1]},
				to:   endpointRule{scan: -1, fallback: r[2]},
			},
			{
				from: endpointRule{scan: -1, fallback: r[2]},
				to:   endpointRule{scan: 0, fromEnd: true, fallback: r[3]},
			},
		},
	}
}

// LegCount returns the number of legs in the itinerary template.
func (p *Parser) LegCount() int { return len(p.legs) }

// Parse extracts one segment per template leg from the ticket's raw text.
// Every field list is scanned once over the whole text and assigned to
// segments by position: times and date labels in (depart, arrive) pairs,
// flight-info phrases one per segment.
func (p *Parser) Parse(raw models.RawTicket) *models.ParsedTicket {
	text := normalizeText(raw.RawText)

	times := timeRegexp.FindAllString(text, -1)
	dates := dateRegexp.FindAllString(text, -1)
	codes := airportRegexp.FindAllString(text, -1)
	infos := flightInfoRegexp.FindAllString(text, -1)

	segments := make([]models.FlightSegment, len(p.legs))
	for i, leg := range p.legs {
		info := at(infos, i)
		segments[i] = models.FlightSegment{
			DepartTime: at(times, 2*i),
			ArriveTime: at(times, 2*i+1),
			DepartDate: at(dates, 2*i),
			ArriveDate: at(dates, 2*i+1),
			From:       leg.from.resolve(codes),
			To:         leg.to.resolve(codes),
			Duration:   parseDuration(info),
			Connection: parseConnection(info),
		}
	}

	return &models.ParsedTicket{Segments: segments, Source: raw}
}

// normalizeText collapses all whitespace to single spaces after mapping
// invisible separator characters to spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(invisibleChars.Replace(s)), " ")
}

// at is bounds-checked positional access: out-of-range yields "".
func at(list []string, i int) string {
	if i < 0 || i >= len(list) {
		return ""
	}
	return list[i]
}

// parseConnection derives the stop structure from a flight-info phrase.
func parseConnection(info string) models.Connection {
	if info == "" {
		return models.Connection{Kind: models.ConnectionUnknown}
	}
	lower := strings.ToLower(info)
	if strings.Contains(lower, "прямой") || strings.Contains(lower, "прямым") {
		return models.Connection{Kind: models.ConnectionDirect}
	}
	if m := stopsRegexp.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return models.Connection{Kind: models.ConnectionStops, Stops: n}
		}
	}
	return models.Connection{Kind: models.ConnectionUnknown}
}

// parseDuration extracts the leading "3 ч 40 м" style duration, or "".
func parseDuration(info string) string {
	if info == "" {
		return ""
	}
	return strings.TrimSpace(durationRegexp.FindString(info))
}
