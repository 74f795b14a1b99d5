package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aviasales-scraper/trips"
)

var (
	tripsRun    bool
	tripsWindow []string
	tripsStop1  []int
	tripsStop2  []int
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "List every date combination inside the travel window",
	Long: `Enumerates every departure day and stopover night split that keeps the
whole round trip inside the travel window, and prints the search URL for
each. With --run the listed searches are scraped immediately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := buildGenerateConfig()
		if err != nil {
			return err
		}
		combos := trips.Generate(gen)
		if len(combos) == 0 {
			return fmt.Errorf("travel window admits no combinations")
		}

		logger.Info("[trips] %d combinations in window %s - %s",
			len(combos), gen.MinDeparture.Dotted(), gen.MaxReturn.Dotted())
		for i, c := range combos {
			fmt.Printf("%3d. %s → %s → %s  (%dн + %dн)\n     %s\n",
				i+1, c.Legs[0].Dotted(), c.Legs[1].Dotted(), c.Legs[2].Dotted(),
				c.Stop1Nights, c.Stop2Nights, c.URL)
		}

		if !tripsRun {
			return nil
		}
		urls := make([]string, 0, len(combos))
		for _, c := range combos {
			urls = append(urls, c.URL)
		}
		return runScrape(cmd.Context(), urls)
	},
}

func init() {
	tripsCmd.Flags().BoolVar(&tripsRun, "run", false, "scrape every listed combination")
	tripsCmd.Flags().StringSliceVar(&tripsWindow, "window", nil,
		"travel window as DD.MM,DD.MM (earliest departure, latest return)")
	tripsCmd.Flags().IntSliceVar(&tripsStop1, "stop1", nil, "first-stop nights as min,max")
	tripsCmd.Flags().IntSliceVar(&tripsStop2, "stop2", nil, "second-stop nights as min,max")
	rootCmd.AddCommand(tripsCmd)
}

func buildGenerateConfig() (trips.GenerateConfig, error) {
	gen := trips.DefaultGenerateConfig()

	if len(tripsWindow) > 0 {
		if len(tripsWindow) != 2 {
			return gen, fmt.Errorf("--window wants exactly two dates, got %d", len(tripsWindow))
		}
		min, ok := trips.ParseDDMM(strings.ReplaceAll(tripsWindow[0], ".", ""))
		if !ok {
			return gen, fmt.Errorf("bad window date %q", tripsWindow[0])
		}
		max, ok := trips.ParseDDMM(strings.ReplaceAll(tripsWindow[1], ".", ""))
		if !ok {
			return gen, fmt.Errorf("bad window date %q", tripsWindow[1])
		}
		gen.MinDeparture, gen.MaxReturn = min, max
	}
	if len(tripsStop1) > 0 {
		if len(tripsStop1) != 2 {
			return gen, fmt.Errorf("--stop1 wants min,max")
		}
		gen.Stop1Min, gen.Stop1Max = tripsStop1[0], tripsStop1[1]
	}
	if len(tripsStop2) > 0 {
		if len(tripsStop2) != 2 {
			return gen, fmt.Errorf("--stop2 wants min,max")
		}
		gen.Stop2Min, gen.Stop2Max = tripsStop2[0], tripsStop2[1]
	}
	return gen, nil
}
