package trips

import (
	"fmt"
	"regexp"
	"strconv"
)

// Unknown is the sentinel label used when a token or filename does not
// carry a recognizable route/date shape. Downstream naming must tolerate it.
const Unknown = "unknown"

// SearchBaseURL is the flight-search endpoint the token is appended to.
const SearchBaseURL = "https://www.aviasales.ru/search/"

var (
	tokenRe = regexp.MustCompile(`([A-Z]{3})(\d{4})([A-Z]{3})(\d{4})([A-Z]{3})(\d{4})([A-Z]{3})`)
	datesRe = regexp.MustCompile(`(\d{2})(\d{2})-(\d{2})(\d{2})-(\d{2})(\d{2})`)
)

// daysInMonth is indexed by month number; February is always 28. Night
// counts across a leap day or a year boundary are therefore wrong. This is
// a known limitation kept for output compatibility, not a bug to fix.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a day-of-month / month pair without a year.
type Date struct {
	Day   int
	Month int
}

// ParseDDMM parses the compact "2102" form used inside search tokens.
// Out-of-range values (month 13, day 0) are rejected so the month table
// lookups downstream stay in bounds.
func ParseDDMM(s string) (Date, bool) {
	if len(s) != 4 {
		return Date{}, false
	}
	day, err := strconv.Atoi(s[:2])
	if err != nil {
		return Date{}, false
	}
	month, err := strconv.Atoi(s[2:])
	if err != nil {
		return Date{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return Date{}, false
	}
	return Date{Day: day, Month: month}, true
}

// DDMM renders the compact token form, e.g. "2102".
func (d Date) DDMM() string {
	return fmt.Sprintf("%02d%02d", d.Day, d.Month)
}

// Dotted renders the human form, e.g. "21.02".
func (d Date) Dotted() string {
	return fmt.Sprintf("%02d.%02d", d.Day, d.Month)
}

// DayOfYear converts the date to an ordinal day using the fixed month table.
func (d Date) DayOfYear() int {
	total := d.Day
	for m := 1; m < d.Month; m++ {
		total += daysInMonth[m]
	}
	return total
}

// AddDays moves the date forward, wrapping months (and December into
// January) but never tracking years.
func (d Date) AddDays(days int) Date {
	day, month := d.Day+days, d.Month
	for day > daysInMonth[month] {
		day -= daysInMonth[month]
		month++
		if month > 12 {
			month = 1
		}
	}
	return Date{Day: day, Month: month}
}

// NightsBetween returns the night count from a to b by day-of-year
// subtraction. Negative when b precedes a in the (single, non-leap) year.
func NightsBetween(a, b Date) int {
	return b.DayOfYear() - a.DayOfYear()
}

// Itinerary is the fixed multi-city route template: four airports visited
// in order, three dated legs, and display names for the stopover cities.
type Itinerary struct {
	Route      [4]string
	Cities     map[string]string
	Passengers int
}

// DefaultItinerary is the MOW → DXB → MRU → MOW template.
func DefaultItinerary() Itinerary {
	return Itinerary{
		Route:      [4]string{"MOW", "DXB", "MRU", "MOW"},
		Cities:     map[string]string{"DXB": "Дубай", "MRU": "Маврикий"},
		Passengers: 2,
	}
}

// DefaultLegs is the baseline dated run of the default itinerary:
// out on 21.02, onward on 25.02, home on 05.03.
func DefaultLegs() [3]Date {
	return [3]Date{{Day: 21, Month: 2}, {Day: 25, Month: 2}, {Day: 5, Month: 3}}
}

// CityName returns the display name for an airport code, falling back to
// the code itself.
func (it Itinerary) CityName(code string) string {
	if name, ok := it.Cities[code]; ok {
		return name
	}
	return code
}

// Decoded is the result of pulling a route/date token apart. When OK is
// false every label holds the Unknown sentinel.
type Decoded struct {
	Airports [4]string
	Legs     [3]Date
	Dates    string // "2102-2502-0503"
	Route    string // "MOW-DXB-MRU"
	OK       bool
}

// Encode builds the compact search token: airport codes interleaved with
// DDMM dates, e.g. MOW2102DXB2502MRU0503MOW.
func Encode(airports [4]string, legs [3]Date) string {
	return airports[0] + legs[0].DDMM() +
		airports[1] + legs[1].DDMM() +
		airports[2] + legs[2].DDMM() +
		airports[3]
}

// Decode extracts the itinerary from a token, search URL or filename.
// Malformed input yields the Unknown sentinels, never an error.
func Decode(s string) Decoded {
	unknown := Decoded{Dates: Unknown, Route: Unknown}

	if m := tokenRe.FindStringSubmatch(s); m != nil {
		dec := Decoded{
			Airports: [4]string{m[1], m[3], m[5], m[7]},
			Dates:    m[2] + "-" + m[4] + "-" + m[6],
			Route:    m[1] + "-" + m[3] + "-" + m[5],
			OK:       true,
		}
		for i, raw := range []string{m[2], m[4], m[6]} {
			d, ok := ParseDDMM(raw)
			if !ok {
				return unknown
			}
			dec.Legs[i] = d
		}
		return dec
	}

	// Filenames carry only the dashed date triple.
	if m := datesRe.FindStringSubmatch(s); m != nil {
		dec := Decoded{
			Dates: m[1] + m[2] + "-" + m[3] + m[4] + "-" + m[5] + m[6],
			Route: Unknown,
			OK:    true,
		}
		for i := 0; i < 3; i++ {
			d, ok := ParseDDMM(m[1+2*i] + m[2+2*i])
			if !ok {
				return unknown
			}
			dec.Legs[i] = d
		}
		return dec
	}

	return unknown
}

// SearchURL builds the full search URL for a dated run of the itinerary.
func (it Itinerary) SearchURL(legs [3]Date) string {
	return SearchBaseURL + Encode(it.Route, legs) + strconv.Itoa(it.Passengers)
}

// SectionLabel renders the merge-report header for one session:
// "21.02 → 25.02 → 05.03  |  Дубай 4н, Маврикий 8н". When the decode
// failed it falls back to the raw dates label.
func SectionLabel(dec Decoded, it Itinerary) string {
	if !dec.OK {
		return dec.Dates
	}
	stop1 := it.CityName(it.Route[1])
	stop2 := it.CityName(it.Route[2])
	return fmt.Sprintf("%s → %s → %s  |  %s %dн, %s %dн",
		dec.Legs[0].Dotted(), dec.Legs[1].Dotted(), dec.Legs[2].Dotted(),
		stop1, NightsBetween(dec.Legs[0], dec.Legs[1]),
		stop2, NightsBetween(dec.Legs[1], dec.Legs[2]))
}
