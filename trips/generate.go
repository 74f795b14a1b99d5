package trips

// GenerateConfig bounds the date-combination search: the overall travel
// window plus how many nights to spend at each stopover.
type GenerateConfig struct {
	Itinerary    Itinerary
	MinDeparture Date
	MaxReturn    Date
	Stop1Min     int
	Stop1Max     int
	Stop2Min     int
	Stop2Max     int
}

// DefaultGenerateConfig mirrors the itinerary template's usual window:
// depart 20.02 at the earliest, back home by 10.03, 3-4 nights at the
// first stop and 7-9 at the second.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Itinerary:    DefaultItinerary(),
		MinDeparture: Date{Day: 20, Month: 2},
		MaxReturn:    Date{Day: 10, Month: 3},
		Stop1Min:     3,
		Stop1Max:     4,
		Stop2Min:     7,
		Stop2Max:     9,
	}
}

// Combination is one candidate dated run of the itinerary.
type Combination struct {
	Legs        [3]Date
	Stop1Nights int
	Stop2Nights int
	URL         string
}

// Generate enumerates every departure day and night-count split that keeps
// the whole trip inside the configured window, in departure order.
func Generate(cfg GenerateConfig) []Combination {
	minDep := cfg.MinDeparture.DayOfYear()
	maxRet := cfg.MaxReturn.DayOfYear()

	var combos []Combination
	for dep := minDep; dep <= maxRet-cfg.Stop1Min-cfg.Stop2Min; dep++ {
		for n1 := cfg.Stop1Min; n1 <= cfg.Stop1Max; n1++ {
			for n2 := cfg.Stop2Min; n2 <= cfg.Stop2Max; n2++ {
				if dep+n1+n2 > maxRet {
					continue
				}

				leg1 := cfg.MinDeparture.AddDays(dep - minDep)
				leg2 := leg1.AddDays(n1)
				leg3 := leg2.AddDays(n2)

				legs := [3]Date{leg1, leg2, leg3}
				combos = append(combos, Combination{
					Legs:        legs,
					Stop1Nights: n1,
					Stop2Nights: n2,
					URL:         cfg.Itinerary.SearchURL(legs),
				})
			}
		}
	}
	return combos
}
