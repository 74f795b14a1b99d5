package models

import (
	"strconv"
	"time"
)

// RawTicket holds one unprocessed ticket candidate directly from the browser.
// This is dumped to JSON before any parsing or transformation.
type RawTicket struct {
	Index        int    `json:"index"`
	Price        string `json:"price"`
	PriceValue   *int   `json:"priceValue"`
	RawText      string `json:"rawText"`
	SegmentHints int    `json:"segmentHints"`
}

// ConnectionKind classifies how many stops a leg has.
type ConnectionKind int

const (
	ConnectionUnknown ConnectionKind = iota
	ConnectionDirect
	ConnectionStops
)

// Connection is the stop structure of one leg. Stops is only meaningful
// when Kind == ConnectionStops.
type Connection struct {
	Kind  ConnectionKind `json:"kind"`
	Stops int            `json:"stops"`
}

// Direct reports whether the leg has no intermediate stop.
func (c Connection) Direct() bool { return c.Kind == ConnectionDirect }

// Label renders the connection the way the ticket exports display it.
func (c Connection) Label() string {
	switch c.Kind {
	case ConnectionDirect:
		return "ПРЯМОЙ ✓"
	case ConnectionStops:
		return strconv.Itoa(c.Stops) + " пересадка"
	default:
		return "?"
	}
}

// FlightSegment is one leg of the multi-city itinerary. All fields come from
// heuristic text extraction and may be empty.
type FlightSegment struct {
	DepartTime string     `json:"depart"`
	ArriveTime string     `json:"arrive"`
	DepartDate string     `json:"dateDepart"`
	ArriveDate string     `json:"dateArrive"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Duration   string     `json:"duration"`
	Connection Connection `json:"connection"`
}

// Route renders the leg endpoints as "FROM→TO".
func (s FlightSegment) Route() string {
	if s.From == "" && s.To == "" {
		return ""
	}
	return s.From + "→" + s.To
}

// ParsedTicket is a fully extracted ticket: exactly one segment per leg of
// the itinerary template, plus the classifier verdict.
type ParsedTicket struct {
	Segments []FlightSegment `json:"segments"`
	Source   RawTicket       `json:"source"`
	Matches  bool            `json:"matches"`
}

// LegLabels are the deduplicated, sorted label sets for one leg of a
// price group, already rendered as comma-joined strings.
type LegLabels struct {
	Routes string
	Dates  string
	Times  string
}

// PriceGroup aggregates every ticket sharing one displayed price string.
type PriceGroup struct {
	Price    string
	Count    int
	HasMatch bool
	Legs     []LegLabels
}

// SessionSummary is one search session's aggregated result set.
type SessionSummary struct {
	Token   string // route/date token from the search URL
	Tickets []*ParsedTicket
	Groups  []PriceGroup
}

// FileNames are the per-session output paths derived from the search URL.
type FileNames struct {
	Excel      string
	JSON       string
	Screenshot string
	Dates      string
	Route      string
	CreatedAt  time.Time
}
