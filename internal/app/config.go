package app

import (
	"errors"
	"strings"
	"time"

	"github.com/prepforge/interviewharvest/internal/scrape"
)

// Extraction modes.
const (
	ModeRegex = "regex"
	ModeAI    = "ai"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Source: either a listing URL to scrape or a previously saved scrape
	// result to re-analyze. Exactly one is required.
	URL       string
	InputPath string

	// Scraping
	MaxPages          int
	DelayBetweenPages time.Duration
	SettleDelay       time.Duration
	// Static switches from a real browser to plain HTTP fetching. Useful
	// against mirrors and in tests; the live site needs the browser.
	Static   bool
	Headless bool

	// Extraction
	Mode          string
	CaseSensitive bool

	// LLM (ai mode only)
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	ChunkSize  int
	MaxChunks  int
	ChunkDelay time.Duration

	// Outputs. Empty paths get timestamped defaults under OutputDir.
	OutputDir  string
	ScrapeOut  string
	OutputJSON string
	OutputText string
	OutputPDF  string
	EnablePDF  bool

	Selectors *scrape.Selectors

	Verbose bool
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.URL) == "" && strings.TrimSpace(cfg.InputPath) == "" {
		return errors.New("config: url or input path is required")
	}
	if strings.TrimSpace(cfg.URL) != "" && strings.TrimSpace(cfg.InputPath) != "" {
		return errors.New("config: url and input are mutually exclusive")
	}
	switch cfg.Mode {
	case ModeRegex, ModeAI:
	default:
		return errors.New("config: mode must be 'regex' or 'ai'")
	}
	if cfg.Mode == ModeAI && strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required in ai mode (or set LLM_MODEL)")
	}
	if cfg.MaxPages < 0 || cfg.ChunkSize < 0 || cfg.MaxChunks < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}
