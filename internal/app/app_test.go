package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prepforge/interviewharvest/internal/aggregate"
	"github.com/prepforge/interviewharvest/internal/browser"
	"github.com/prepforge/interviewharvest/internal/review"
	"github.com/prepforge/interviewharvest/internal/scrape"
)

type fakeElement struct {
	text     string
	children map[string][]browser.Element
}

func (e *fakeElement) Text() (string, error) { return e.text, nil }

func (e *fakeElement) SelectAll(selector string) ([]browser.Element, error) {
	return e.children[selector], nil
}

func (e *fakeElement) Click(context.Context) error { return nil }

type fakeSession struct {
	content map[string][]browser.Element
	closed  bool
}

func (s *fakeSession) Navigate(context.Context, string) error { return nil }

func (s *fakeSession) SelectAll(selector string) ([]browser.Element, error) {
	return s.content[selector], nil
}

func (s *fakeSession) Sleep(time.Duration) {}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func singlePageSession(reviewText string) *fakeSession {
	sel := scrape.DefaultSelectors()
	return &fakeSession{content: map[string][]browser.Element{
		sel.ReviewContainer: {&fakeElement{children: map[string][]browser.Element{
			sel.BodyText: {&fakeElement{text: reviewText}},
		}}},
	}}
}

func testApp(t *testing.T, cfg Config, session *fakeSession) *App {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	a.newSession = func(Config) (browser.Session, error) { return session, nil }
	return a
}

func baseConfig(dir string) Config {
	return Config{
		URL:       "http://example.test/reviews",
		Mode:      ModeRegex,
		MaxPages:  1,
		Headless:  true,
		OutputDir: dir,
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig(dir)
	session := singlePageSession("The interviewer asked me about binary search trees and recursion during the onsite round.")
	a := testApp(t, cfg, session)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !session.closed {
		t.Fatalf("session not closed")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	var haveScrape, haveJSON, haveText bool
	for _, e := range entries {
		name := e.Name()
		switch {
		case filepath.Ext(name) == ".json" && len(name) > 10 && name[:10] == "interviews":
			haveScrape = true
		case filepath.Ext(name) == ".json" && len(name) > 8 && name[:8] == "analysis":
			haveJSON = true
		case filepath.Ext(name) == ".txt":
			haveText = true
		}
	}
	if !haveScrape || !haveJSON || !haveText {
		t.Fatalf("missing outputs, got %v", entries)
	}
}

func TestRunWritesAnalysisContent(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig(dir)
	cfg.OutputJSON = filepath.Join(dir, "analysis.json")
	session := singlePageSession("They asked me about implementing a palindrome checker and sql joins in the second round.")
	a := testApp(t, cfg, session)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	b, err := os.ReadFile(cfg.OutputJSON)
	if err != nil {
		t.Fatalf("read analysis: %v", err)
	}
	var res aggregate.Result
	if err := json.Unmarshal(b, &res); err != nil {
		t.Fatalf("parse analysis: %v", err)
	}
	if res.Metadata.ExtractorType != "regex_based" {
		t.Fatalf("unexpected extractor type: %q", res.Metadata.ExtractorType)
	}
	if res.Metadata.TotalInterviews != 1 || res.Metadata.TotalQuestionsExtracted == 0 {
		t.Fatalf("unexpected metadata: %+v", res.Metadata)
	}
}

func TestRunNoInterviews(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig(dir)
	session := &fakeSession{content: map[string][]browser.Element{}}
	a := testApp(t, cfg, session)

	if err := a.Run(context.Background()); !errors.Is(err, review.ErrNoInterviews) {
		t.Fatalf("expected ErrNoInterviews, got %v", err)
	}
}

func TestRunNoQuestions(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig(dir)
	// Long enough to survive scraping but matching no extraction pattern.
	session := singlePageSession("A pleasant conversation with the hiring manager that covered nothing specific whatsoever today.")
	a := testApp(t, cfg, session)

	err := a.Run(context.Background())
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	// Reports are still written for the empty run.
	entries, rerr := os.ReadDir(dir)
	if rerr != nil {
		t.Fatalf("read output dir: %v", rerr)
	}
	if len(entries) < 3 {
		t.Fatalf("expected artifacts despite empty result, got %v", entries)
	}
}

func TestRunFromSavedInput(t *testing.T) {
	dir := t.TempDir()
	rec, err := review.NewRecord(1, 1, "The interviewer asked me about graph traversal and the tradeoffs of adjacency lists.")
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	saved := filepath.Join(dir, "saved.json")
	res := review.ScrapeResult{
		Metadata:   review.RunMetadata{CompanyURL: "http://example.test/reviews", TotalInterviews: 1},
		Interviews: []review.Record{rec},
	}
	if err := SaveScrapeResult(res, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg := Config{Mode: ModeRegex, InputPath: saved, OutputDir: dir, Headless: true}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	a.newSession = func(Config) (browser.Session, error) {
		t.Fatalf("saved input must not open a session")
		return nil, nil
	}
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run from saved input: %v", err)
	}
}

func TestSaveLoadScrapeResultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rec, err := review.NewRecord(2, 3, "Round two involved whiteboarding a rate limiter and discussing database sharding.")
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	path := filepath.Join(dir, "nested", "scrape.json")
	in := review.ScrapeResult{
		Metadata:   review.RunMetadata{CompanyURL: "http://example.test", PagesProcessed: 2, TotalInterviews: 1},
		Interviews: []review.Record{rec},
	}
	if err := SaveScrapeResult(in, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := LoadScrapeResult(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Interviews) != 1 || out.Interviews[0].ID != "page_2_interview_3" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if out.Metadata.PagesProcessed != 2 {
		t.Fatalf("metadata lost: %+v", out.Metadata)
	}
}
