package aviasales

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"aviasales-scraper/config"
	"aviasales-scraper/models"
	"aviasales-scraper/utils"
)

// SessionResult is the raw outcome of one search URL: the extracted ticket
// blobs plus a full-page screenshot. Parsing happens downstream.
type SessionResult struct {
	URL        string
	Tickets    []*models.RawTicket
	Screenshot []byte
}

// Scraper drives the search-result pages through a single shared browser
// window. The window is shared so a captcha solved on the first URL keeps
// the session valid for the rest.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Run scrapes every search URL in order and returns one result per URL.
// A URL whose page never loads is reported and skipped; the remaining
// sessions still run.
func (s *Scraper) Run(ctx context.Context, urls []string) ([]SessionResult, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("aviasales: no search urls given")
	}

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[aviasales] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("start-maximized", true),
		chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) "+
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// One tab for the whole run; chromedp log noise suppressed.
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	results := make([]SessionResult, 0, len(urls))
	for i, url := range urls {
		s.logger.Info("[aviasales] Session %d/%d: %s", i+1, len(urls), url)

		result, err := s.scrapeSession(browserCtx, url, i == 0)
		if err != nil {
			s.logger.Error("[aviasales] Session %d failed: %v", i+1, err)
			continue
		}
		results = append(results, result)

		if i < len(urls)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("aviasales: every session failed")
	}
	return results, nil
}

// scrapeSession loads one search page and extracts its ticket blobs.
func (s *Scraper) scrapeSession(browserCtx context.Context, url string, first bool) (SessionResult, error) {
	result := SessionResult{URL: url}

	err := s.retry.Do(browserCtx, "navigate", func() error {
		navCtx, cancel := context.WithTimeout(browserCtx, 60*time.Second)
		defer cancel()
		return chromedp.Run(navCtx, chromedp.Navigate(url))
	})
	if err != nil {
		return result, fmt.Errorf("aviasales: navigate %q: %w", url, err)
	}

	s.waitForResults(browserCtx, first)
	s.clickShowMore(browserCtx)
	s.scrollThrough(browserCtx)

	tickets, err := s.extractTickets(browserCtx)
	if err != nil {
		return result, fmt.Errorf("aviasales: extract tickets: %w", err)
	}
	result.Tickets = tickets
	s.logger.Info("[aviasales] Extracted %d ticket candidates", len(tickets))

	var shot []byte
	captureCtx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()
	if err := chromedp.Run(captureCtx, chromedp.FullScreenshot(&shot, 80)); err != nil {
		s.logger.Warn("[aviasales] Screenshot failed: %v", err)
	} else {
		result.Screenshot = shot
	}

	return result, nil
}

// waitForResults gives the page time to load. The first session gets the
// long captcha window; later ones reuse the solved session and only need a
// short settle time. Afterwards the page is polled until enough prices are
// visible.
func (s *Scraper) waitForResults(ctx context.Context, first bool) {
	if first {
		s.logger.Warn("[aviasales] Solve the captcha in the browser window, %d seconds",
			s.cfg.CaptchaWaitSec)
		for remaining := s.cfg.CaptchaWaitSec; remaining > 0; remaining -= 15 {
			s.logger.Info("[aviasales] ~%d seconds left...", remaining)
			sleep := 15
			if remaining < 15 {
				sleep = remaining
			}
			time.Sleep(time.Duration(sleep) * time.Second)
		}
	} else {
		s.logger.Info("[aviasales] Waiting %d seconds for results...", s.cfg.PageWaitSec)
		time.Sleep(time.Duration(s.cfg.PageWaitSec) * time.Second)
	}

	for i := 0; i < 5; i++ {
		var priceCount int
		err := chromedp.Run(ctx, chromedp.Evaluate(
			`(document.body.textContent.match(/\d{2,6}\s*₽/g) || []).length`, &priceCount))
		if err == nil && priceCount > 50 {
			s.logger.Info("[aviasales] Page ready: %d prices visible", priceCount)
			return
		}
		time.Sleep(time.Second)
	}
	s.logger.Warn("[aviasales] Few prices visible, extracting anyway")
}

// clickShowMore keeps pressing the load-more button until it disappears or
// the click cap is reached.
func (s *Scraper) clickShowMore(ctx context.Context) {
	clicks := 0
	for clicks < s.cfg.ShowMoreMax {
		var found bool
		err := chromedp.Run(ctx, chromedp.Evaluate(`
			(function() {
				var buttons = Array.from(document.querySelectorAll('button, [role="button"]'));
				var showMore = buttons.find(function(btn) {
					return btn.textContent.includes('Показать ещё') ||
						btn.textContent.includes('Загрузить ещё') ||
						btn.textContent.includes('Ещё варианты');
				});
				if (showMore) { showMore.click(); return true; }
				return false;
			})()
		`, &found))
		if err != nil || !found {
			break
		}
		clicks++
		if clicks%5 == 0 {
			s.logger.Debug("[aviasales] Show-more clicks: %d", clicks)
		}
		time.Sleep(1500 * time.Millisecond)
	}
	if clicks > 0 {
		s.logger.Info("[aviasales] Loaded all tickets (%d clicks)", clicks)
	}
}

// scrollThrough walks the page down to force lazy ticket cards to render,
// then returns to the top.
func (s *Scraper) scrollThrough(ctx context.Context) {
	previousHeight := -1
	for i := 0; i < s.cfg.ScrollPasses; i++ {
		var height int
		if err := chromedp.Run(ctx,
			chromedp.Evaluate(`document.body.scrollHeight`, &height)); err != nil {
			return
		}
		if height == previousHeight && i > 2 {
			break
		}
		previousHeight = height

		_ = chromedp.Run(ctx, chromedp.Evaluate(`window.scrollBy(0, 1500)`, nil))
		time.Sleep(800 * time.Millisecond)
	}
	_ = chromedp.Run(ctx, chromedp.Evaluate(`window.scrollTo(0, 0)`, nil))
	time.Sleep(500 * time.Millisecond)
}

// extractTickets pulls every ticket-looking card off the rendered page:
// the price element if one is recognizable, the card's flattened text, and
// a count of segment-looking child elements as an advisory hint.
func (s *Scraper) extractTickets(ctx context.Context) ([]*models.RawTicket, error) {
	type rawCard struct {
		Price        string `json:"price"`
		PriceValue   *int   `json:"priceValue"`
		RawText      string `json:"rawText"`
		SegmentHints int    `json:"segmentHints"`
	}

	var cards []rawCard
	extractCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	err := chromedp.Run(extractCtx, chromedp.Evaluate(`
		(function() {
			var results = [];

			var priceElements = Array.prototype.filter.call(
				document.querySelectorAll('*'),
				function(el) {
					var text = el.textContent;
					return text && /\d+\s*₽/.test(text) && el.children.length > 5;
				});

			var ticketCards = document.querySelectorAll(
				'[data-test-id*="ticket"], [data-test-id*="card"], [data-test-id*="proposal"]'
			);

			var potential = new Set(Array.from(ticketCards).concat(priceElements.slice(0, 50)));

			Array.from(potential).forEach(function(card) {
				try {
					var data = { price: '', priceValue: null, rawText: '', segmentHints: 0 };

					var priceSelectors = ['[data-test-id*="price"]', '[class*="price"]', '[class*="Price"]'];
					for (var i = 0; i < priceSelectors.length; i++) {
						var el = card.querySelector(priceSelectors[i]);
						if (el && el.textContent.match(/\d/)) {
							data.price = el.textContent.trim();
							var m = data.price.match(/(\d[\d\s]*)/);
							if (m) data.priceValue = parseInt(m[1].replace(/\s/g, ''), 10);
							break;
						}
					}

					data.rawText = card.textContent.replace(/\s+/g, ' ').trim();
					data.segmentHints = card.querySelectorAll(
						'[class*="segment"], [class*="Segment"], [class*="leg"]').length;

					if (data.price || data.segmentHints > 0) results.push(data);
				} catch (e) {}
			});

			return results;
		})()
	`, &cards))
	if err != nil {
		return nil, fmt.Errorf("chromedp evaluate: %w", err)
	}

	tickets := make([]*models.RawTicket, 0, len(cards))
	for i, c := range cards {
		tickets = append(tickets, &models.RawTicket{
			Index:        i + 1,
			Price:        c.Price,
			PriceValue:   c.PriceValue,
			RawText:      c.RawText,
			SegmentHints: c.SegmentHints,
		})
	}
	return tickets, nil
}

// findChromeBinary locates the Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
