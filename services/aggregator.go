package services

import (
	"sort"
	"strings"

	"aviasales-scraper/models"
)

// NoPriceLabel keys tickets whose price display string is fully absent.
// The group still only survives into the summary if it has a match.
const NoPriceLabel = "Без цены"

type labelSets struct {
	routes map[string]struct{}
	dates  map[string]struct{}
	times  map[string]struct{}
}

type priceAccumulator struct {
	price    string
	count    int
	hasMatch bool
	legs     []labelSets
}

// Aggregate folds the ranked ticket list into one group per distinct price
// display string, keeping per-leg deduplicated route/date/departure-time
// label sets. Groups without any matching ticket are dropped; survivors are
// ordered by numeric price ascending and their label sets rendered as
// sorted, comma-joined strings. The fold is pure: calling it twice on the
// same input yields identical output.
func Aggregate(tickets []*models.ParsedTicket, legCount int) []models.PriceGroup {
	groups := make(map[string]*priceAccumulator)
	var order []string

	for _, t := range tickets {
		key := t.Source.Price
		if key == "" {
			key = NoPriceLabel
		}

		acc, ok := groups[key]
		if !ok {
			acc = &priceAccumulator{price: key, legs: make([]labelSets, legCount)}
			for i := range acc.legs {
				acc.legs[i] = labelSets{
					routes: make(map[string]struct{}),
					dates:  make(map[string]struct{}),
					times:  make(map[string]struct{}),
				}
			}
			groups[key] = acc
			order = append(order, key)
		}

		acc.count++
		if t.Matches {
			acc.hasMatch = true
		}

		for i := 0; i < legCount && i < len(t.Segments); i++ {
			seg := t.Segments[i]
			addLabel(acc.legs[i].routes, seg.Route())
			addLabel(acc.legs[i].dates, seg.DepartDate)
			addLabel(acc.legs[i].times, seg.DepartTime)
		}
	}

	result := make([]models.PriceGroup, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		if !acc.hasMatch {
			continue
		}

		legs := make([]models.LegLabels, legCount)
		for i, ls := range acc.legs {
			legs[i] = models.LegLabels{
				Routes: joinSorted(ls.routes),
				Dates:  joinSorted(ls.dates),
				Times:  joinSorted(ls.times),
			}
		}
		result = append(result, models.PriceGroup{
			Price:    acc.price,
			Count:    acc.count,
			HasMatch: true,
			Legs:     legs,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return numericPrice(result[i].Price) < numericPrice(result[j].Price)
	})

	return result
}

func addLabel(set map[string]struct{}, label string) {
	if label != "" {
		set[label] = struct{}{}
	}
}

func joinSorted(set map[string]struct{}) string {
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return strings.Join(labels, ", ")
}
