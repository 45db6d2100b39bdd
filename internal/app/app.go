// Package app wires the pipeline together: acquire interview records by
// scraping or from a saved run, extract and categorize questions, aggregate,
// and write reports.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prepforge/interviewharvest/internal/aggregate"
	"github.com/prepforge/interviewharvest/internal/basic"
	"github.com/prepforge/interviewharvest/internal/browser"
	"github.com/prepforge/interviewharvest/internal/fetch"
	"github.com/prepforge/interviewharvest/internal/infer"
	"github.com/prepforge/interviewharvest/internal/llm"
	"github.com/prepforge/interviewharvest/internal/questions"
	"github.com/prepforge/interviewharvest/internal/report"
	"github.com/prepforge/interviewharvest/internal/review"
	"github.com/prepforge/interviewharvest/internal/scrape"
)

// ErrNoQuestions is returned when extraction yields zero questions across
// every category. Reports are still written first so the empty run remains
// inspectable; per the exit code policy this maps to a non-zero exit.
var ErrNoQuestions = errors.New("no questions extracted")

type App struct {
	cfg     Config
	started time.Time

	// newSession is swappable in tests to avoid launching a browser.
	newSession func(cfg Config) (browser.Session, error)
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &App{cfg: cfg, started: time.Now(), newSession: buildSession}, nil
}

func buildSession(cfg Config) (browser.Session, error) {
	if cfg.Static {
		return browser.NewStaticSession(&fetch.Client{
			UserAgent:   "interviewharvest/1.0 (+https://github.com/prepforge/interviewharvest)",
			MaxAttempts: 3,
		}), nil
	}
	return browser.NewPlaywrightSession(cfg.Headless)
}

func (a *App) Run(ctx context.Context) error {
	result, err := a.acquire(ctx)
	if err != nil {
		return err
	}
	if len(result.Interviews) == 0 {
		return review.ErrNoInterviews
	}

	categorized, opts, err := a.extract(ctx, result.Interviews)
	if err != nil {
		return err
	}

	res := aggregate.Build(result.Interviews, categorized, opts)

	jsonPath := a.outPath(a.cfg.OutputJSON, "analysis", "json")
	if err := report.WriteJSON(res, jsonPath); err != nil {
		return err
	}
	log.Info().Str("path", jsonPath).Msg("wrote analysis JSON")

	textPath := a.outPath(a.cfg.OutputText, "analysis", "txt")
	if err := report.WriteText(res, textPath); err != nil {
		return err
	}
	log.Info().Str("path", textPath).Msg("wrote readable report")

	if a.cfg.EnablePDF {
		pdfPath := a.outPath(a.cfg.OutputPDF, "study_sheet", "pdf")
		if err := report.WritePDF(res, pdfPath); err != nil {
			return err
		}
		log.Info().Str("path", pdfPath).Msg("wrote study sheet PDF")
	}

	if res.Metadata.TotalQuestionsExtracted == 0 {
		return ErrNoQuestions
	}
	return nil
}

// acquire returns the interview records: a saved run when input is set,
// otherwise a live scrape persisted for later re-analysis.
func (a *App) acquire(ctx context.Context) (review.ScrapeResult, error) {
	if a.cfg.InputPath != "" {
		log.Info().Str("path", a.cfg.InputPath).Msg("loading saved scrape result")
		return LoadScrapeResult(a.cfg.InputPath)
	}

	session, err := a.newSession(a.cfg)
	if err != nil {
		return review.ScrapeResult{}, fmt.Errorf("start session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("session close failed")
		}
	}()

	nav := &scrape.Navigator{Session: session, Config: a.scrapeConfig()}
	result, err := nav.Scrape(ctx, a.cfg.URL, a.cfg.MaxPages)
	if err != nil {
		return result, err
	}

	scrapePath := a.outPath(a.cfg.ScrapeOut, "interviews", "json")
	if err := SaveScrapeResult(result, scrapePath); err != nil {
		return result, err
	}
	log.Info().Str("path", scrapePath).Msg("saved scrape result")
	return result, nil
}

func (a *App) scrapeConfig() scrape.Config {
	sc := scrape.DefaultConfig()
	if a.cfg.MaxPages > 0 {
		sc.MaxPages = a.cfg.MaxPages
	}
	if a.cfg.DelayBetweenPages > 0 {
		sc.DelayBetweenPages = a.cfg.DelayBetweenPages
	}
	if a.cfg.SettleDelay > 0 {
		sc.SettleDelay = a.cfg.SettleDelay
	}
	if a.cfg.Selectors != nil {
		sc.Selectors = mergeSelectors(*a.cfg.Selectors)
	}
	return sc
}

// mergeSelectors fills empty override fields from the default table so a
// config file only needs to name the selectors that changed.
func mergeSelectors(over scrape.Selectors) scrape.Selectors {
	def := scrape.DefaultSelectors()
	pick := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}
	return scrape.Selectors{
		ConsentButton:     pick(over.ConsentButton, def.ConsentButton),
		LoginClose:        pick(over.LoginClose, def.LoginClose),
		ReviewContainer:   pick(over.ReviewContainer, def.ReviewContainer),
		ContainerFallback: pick(over.ContainerFallback, def.ContainerFallback),
		BodyText:          pick(over.BodyText, def.BodyText),
		Position:          pick(over.Position, def.Position),
		Experience:        pick(over.Experience, def.Experience),
		Difficulty:        pick(over.Difficulty, def.Difficulty),
		Outcome:           pick(over.Outcome, def.Outcome),
		PageButton:        pick(over.PageButton, def.PageButton),
		NextButton:        pick(over.NextButton, def.NextButton),
	}
}

// extract runs the configured extraction path and returns the categorized
// questions together with the aggregate options describing the run.
func (a *App) extract(ctx context.Context, records []review.Record) (map[questions.Category][]string, aggregate.Options, error) {
	switch a.cfg.Mode {
	case ModeAI:
		client := llm.NewProvider(a.cfg.LLMBaseURL, a.cfg.LLMAPIKey)
		ex := &infer.Extractor{
			Client:    client,
			Model:     a.cfg.LLMModel,
			ChunkSize: a.cfg.ChunkSize,
			MaxChunks: a.cfg.MaxChunks,
			Delay:     a.cfg.ChunkDelay,
		}
		res, err := ex.ExtractQuestions(ctx, records)
		if err != nil {
			return nil, aggregate.Options{}, err
		}
		return res.Questions, aggregate.Options{
			ExtractorType:   "llm_based",
			ChunksProcessed: res.ChunksProcessed,
			ChunksFailed:    res.ChunksFailed,
		}, nil
	default:
		an := basic.New(basic.Config{CaseSensitive: a.cfg.CaseSensitive})
		categorized, err := an.Analyze(records)
		if err != nil {
			return nil, aggregate.Options{}, err
		}
		return categorized, aggregate.Options{ExtractorType: "regex_based"}, nil
	}
}
