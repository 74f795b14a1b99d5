package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aviasales-scraper/models"
	"aviasales-scraper/scraper/aviasales"
	"aviasales-scraper/services"
	"aviasales-scraper/storage"
	"aviasales-scraper/trips"
	"aviasales-scraper/utils"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url|token ...]",
	Short: "Scrape one or more search URLs and export workbooks",
	Long: `Opens every given search URL (or bare route/date token) in a shared
browser window, extracts the ticket cards, ranks and groups them, and writes
one Excel workbook, one JSON dump and one screenshot per search. With more
than one search a merged summary workbook is written as well.

With no arguments the itinerary's default dated search is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(ctx context.Context, args []string) error {
	it := trips.DefaultItinerary()
	urls := collectSearchURLs(args, it)
	if len(urls) == 0 {
		return fmt.Errorf("no valid search urls")
	}
	logger.Info("[scrape] %d search session(s) queued", len(urls))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var store storage.SessionStore
	if cfg.PostgresEnabled {
		pw, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pw.Close()
		store = pw
	}

	// Browser sessions run one at a time in a shared window; a captcha
	// solved on the first page carries over to the rest.
	results, err := aviasales.New(cfg, logger).Run(ctx, urls)
	if err != nil {
		return err
	}

	// Post-processing is pure CPU and file IO, so sessions fan out.
	summaries := make([]models.SessionSummary, len(results))
	errs := make([]error, len(results))
	pool := utils.NewWorkerPool(cfg.MaxConcurrency)
	for i, res := range results {
		i, res := i, res
		pool.Submit(func() {
			summary, err := processSession(res, it, store)
			if err != nil {
				errs[i] = err
				return
			}
			summaries[i] = *summary
		})
	}
	pool.Wait()

	sessions := make([]models.SessionSummary, 0, len(summaries))
	for i := range summaries {
		if errs[i] != nil {
			logger.Error("[scrape] Session %s failed: %v", results[i].URL, errs[i])
			continue
		}
		sessions = append(sessions, summaries[i])
	}
	if len(sessions) == 0 {
		return fmt.Errorf("every session failed during post-processing")
	}

	if len(sessions) > 1 {
		mergedPath := storage.MergedFileName(cfg.OutputDir, time.Now())
		rows := services.MergeSessions(sessions, it)
		if err := storage.WriteMergedWorkbook(mergedPath, rows); err != nil {
			return fmt.Errorf("write merged workbook: %w", err)
		}
		logger.Info("[scrape] Merged summary: %s", mergedPath)
	}

	report := services.NewReportService(it, logger)
	report.Print(report.Generate(sessions))
	return nil
}

// processSession turns one scraped page into its summary and output files.
func processSession(res aviasales.SessionResult, it trips.Itinerary, store storage.SessionStore) (*models.SessionSummary, error) {
	pipeline := services.NewPipeline(it, services.DefaultPolicy(), logger)
	summary, err := pipeline.BuildSummary(res.URL, res.Tickets)
	if err != nil {
		return nil, err
	}

	names := storage.BuildFileNames(cfg.OutputDir, res.URL, time.Now())
	if err := storage.WriteSessionWorkbook(names.Excel, summary); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := storage.WriteTicketsJSON(names.JSON, summary.Tickets); err != nil {
		return nil, fmt.Errorf("write json: %w", err)
	}
	if len(res.Screenshot) > 0 {
		if err := os.WriteFile(names.Screenshot, res.Screenshot, 0o644); err != nil {
			logger.Warn("[scrape] Screenshot write failed: %v", err)
		}
	}
	logger.Info("[scrape] Saved %s (%d tickets, %d groups)",
		names.Excel, len(summary.Tickets), len(summary.Groups))

	if store != nil {
		if err := store.WriteSession(summary.Token, summary.Tickets); err != nil {
			logger.Warn("[scrape] Postgres write failed: %v", err)
		}
	}
	return summary, nil
}

// collectSearchURLs normalizes the arguments into deduplicated search URLs.
// Bare tokens are expanded against the search endpoint; with no arguments
// the itinerary's default dated search is used.
func collectSearchURLs(args []string, it trips.Itinerary) []string {
	if len(args) == 0 {
		args = []string{it.SearchURL(trips.DefaultLegs())}
	}

	seen := utils.NewURLSet()
	urls := make([]string, 0, len(args))
	for _, arg := range args {
		url := arg
		if !strings.HasPrefix(url, "http") {
			if !trips.Decode(url).OK {
				logger.Warn("[scrape] Skipping unrecognized token %q", arg)
				continue
			}
			url = trips.SearchBaseURL + url
		}
		if seen.Add(url) {
			urls = append(urls, url)
		} else {
			logger.Debug("[scrape] Duplicate search skipped: %s", url)
		}
	}
	return urls
}
