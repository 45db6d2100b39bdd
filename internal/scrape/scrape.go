// Package scrape walks a paginated review listing and accumulates records.
// The navigator is a fixed loop over one page session: load, clear
// obstacles, extract containers, paginate. Only the initial navigation is
// fatal; everything after degrades per element, per obstacle, or per page.
package scrape

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prepforge/interviewharvest/internal/browser"
	"github.com/prepforge/interviewharvest/internal/review"
)

// Selectors locates the page structure. The source's markup is an external
// dependency; these defaults track its current layout and are expected to
// need updating when it changes.
type Selectors struct {
	ConsentButton     string `yaml:"consentButton" json:"consentButton"`
	LoginClose        string `yaml:"loginClose" json:"loginClose"`
	ReviewContainer   string `yaml:"reviewContainer" json:"reviewContainer"`
	ContainerFallback string `yaml:"containerFallback" json:"containerFallback"`
	BodyText          string `yaml:"bodyText" json:"bodyText"`
	Position          string `yaml:"position" json:"position"`
	Experience        string `yaml:"experience" json:"experience"`
	Difficulty        string `yaml:"difficulty" json:"difficulty"`
	Outcome           string `yaml:"outcome" json:"outcome"`
	PageButton        string `yaml:"pageButton" json:"pageButton"`
	NextButton        string `yaml:"nextButton" json:"nextButton"`
}

// DefaultSelectors returns the selector table for the current source layout.
func DefaultSelectors() Selectors {
	return Selectors{
		ConsentButton:     "button[data-test='gdpr-consent-accept']",
		LoginClose:        "button[data-test='close-x']",
		ReviewContainer:   "div[data-test='InterviewReview']",
		ContainerFallback: ".interview-item",
		BodyText:          "p.truncated-text_truncate__021Uu.interview-details_textStyle__gmhSJ",
		Position:          "span[data-test='position']",
		Experience:        "span[data-test='experience']",
		Difficulty:        "span[data-test='difficulty']",
		Outcome:           "span[data-test='outcome']",
		PageButton:        "a.pagination_ListItemButton__se7rv",
		NextButton:        "button[aria-label='Next']",
	}
}

// Config carries the externally supplied scraper settings.
type Config struct {
	MaxPages          int
	DelayBetweenPages time.Duration
	// SettleDelay is the wait after loads, clicks, and dismissals.
	SettleDelay time.Duration
	Selectors   Selectors
}

// DefaultConfig returns the documented scraper defaults.
func DefaultConfig() Config {
	return Config{
		MaxPages:          10,
		DelayBetweenPages: 3 * time.Second,
		SettleDelay:       2 * time.Second,
		Selectors:         DefaultSelectors(),
	}
}

// Navigator drives one session through the pagination loop.
type Navigator struct {
	Session browser.Session
	Config  Config
}

// Scrape walks up to maxPages result pages starting at url and returns the
// accumulated records with run metadata. maxPages <= 0 falls back to the
// configured maximum. A failed initial navigation is fatal and propagates
// after being counted; later failures degrade per unit and never discard a
// record that was already extracted.
func (n *Navigator) Scrape(ctx context.Context, url string, maxPages int) (review.ScrapeResult, error) {
	if maxPages <= 0 {
		maxPages = n.Config.MaxPages
	}
	start := time.Now()
	meta := review.RunMetadata{CompanyURL: url, ScrapingDate: start}

	log.Info().Str("url", url).Int("max_pages", maxPages).Msg("starting scrape")
	if err := n.Session.Navigate(ctx, url); err != nil {
		meta.Errors++
		return review.ScrapeResult{Metadata: meta}, fmt.Errorf("initial navigation: %w", err)
	}
	n.Session.Sleep(n.Config.SettleDelay)

	n.dismissObstacles(ctx)

	var records []review.Record
	page := 1
	for page <= maxPages {
		pageRecords := n.extractPage(ctx, page)
		records = append(records, pageRecords...)
		meta.PagesProcessed = page
		meta.TotalInterviews = len(records)
		log.Info().Int("page", page).Int("found", len(pageRecords)).Int("total", len(records)).Msg("page processed")

		if page == maxPages || !n.nextPage(ctx, page) {
			break
		}
		page++
		n.Session.Sleep(n.Config.DelayBetweenPages)
	}

	meta.DurationSeconds = time.Since(start).Seconds()
	log.Info().Int("interviews", len(records)).Float64("seconds", meta.DurationSeconds).Msg("scrape complete")
	return review.ScrapeResult{Metadata: meta, Interviews: records}, nil
}

// dismissObstacles clears the consent banner and the login wall, each
// independently and best-effort. Absence is the normal case, not a fault.
func (n *Navigator) dismissObstacles(ctx context.Context) {
	if n.tryDismiss(ctx, n.Config.Selectors.ConsentButton) {
		log.Info().Msg("accepted cookie consent")
	}
	if n.tryDismiss(ctx, n.Config.Selectors.LoginClose) {
		log.Info().Msg("dismissed login popup")
	}
}

// tryDismiss clicks the first element matching selector when present.
// It reports whether something was dismissed; lookup or click failures are
// logged and treated as already-absent.
func (n *Navigator) tryDismiss(ctx context.Context, selector string) bool {
	els, err := n.Session.SelectAll(selector)
	if err != nil {
		log.Warn().Err(err).Str("selector", selector).Msg("obstacle lookup failed")
		return false
	}
	if len(els) == 0 {
		return false
	}
	if err := els[0].Click(ctx); err != nil {
		log.Warn().Err(err).Str("selector", selector).Msg("obstacle dismissal failed")
		return false
	}
	n.Session.Sleep(n.Config.SettleDelay)
	return true
}

// extractPage collects records from the current page. The fallback selector
// is consulted only when the primary yields nothing; per-element extraction
// failures are skipped without aborting the page.
func (n *Navigator) extractPage(ctx context.Context, pageNum int) []review.Record {
	n.Session.Sleep(n.Config.SettleDelay)

	els, err := n.Session.SelectAll(n.Config.Selectors.ReviewContainer)
	if err != nil {
		log.Error().Err(err).Int("page", pageNum).Msg("page extraction failed")
		return nil
	}
	if len(els) == 0 {
		if els, err = n.Session.SelectAll(n.Config.Selectors.ContainerFallback); err != nil {
			log.Error().Err(err).Int("page", pageNum).Msg("page extraction failed")
			return nil
		}
	}
	log.Info().Int("page", pageNum).Int("elements", len(els)).Msg("found review elements")

	records := make([]review.Record, 0, len(els))
	for idx, el := range els {
		rec, err := extractRecord(el, n.Config.Selectors, pageNum, idx+1)
		if err != nil {
			log.Warn().Err(err).Int("page", pageNum).Int("element", idx+1).Msg("skipping review element")
			continue
		}
		records = append(records, rec)
	}
	return records
}

// nextPage locates and activates the control for pageNum+1: first the
// numbered page button, then the generic next arrow. It reports whether
// navigation happened; false means the listing is exhausted.
func (n *Navigator) nextPage(ctx context.Context, pageNum int) bool {
	els, err := n.Session.SelectAll(n.Config.Selectors.PageButton)
	if err != nil {
		log.Warn().Err(err).Msg("pagination lookup failed")
		return false
	}
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		num, err := strconv.Atoi(text)
		if err != nil || num != pageNum+1 {
			continue
		}
		log.Info().Int("page", pageNum+1).Msg("navigating to next page")
		if err := el.Click(ctx); err != nil {
			log.Warn().Err(err).Int("page", pageNum+1).Msg("pagination click failed")
			return false
		}
		n.Session.Sleep(n.Config.SettleDelay)
		return true
	}

	arrows, err := n.Session.SelectAll(n.Config.Selectors.NextButton)
	if err != nil || len(arrows) == 0 {
		return false
	}
	if err := arrows[0].Click(ctx); err != nil {
		log.Warn().Err(err).Msg("next arrow click failed")
		return false
	}
	n.Session.Sleep(n.Config.SettleDelay)
	return true
}
