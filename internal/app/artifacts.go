package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prepforge/interviewharvest/internal/review"
)

// SaveScrapeResult persists a scrape result as indented JSON so a later run
// can re-analyze it without touching the network.
func SaveScrapeResult(res review.ScrapeResult, path string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scrape result: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadScrapeResult reads a previously saved scrape result.
func LoadScrapeResult(path string) (review.ScrapeResult, error) {
	var res review.ScrapeResult
	b, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return res, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

// outPath resolves an output path: explicit paths win, otherwise a
// timestamped name under the output directory.
func (a *App) outPath(explicit, prefix, ext string) string {
	if explicit != "" {
		return explicit
	}
	name := fmt.Sprintf("%s_%s.%s", prefix, a.started.Format("20060102_150405"), ext)
	if a.cfg.OutputDir != "" {
		return filepath.Join(a.cfg.OutputDir, name)
	}
	return name
}
