package scrape

import (
	"fmt"
	"strings"

	"github.com/prepforge/interviewharvest/internal/browser"
	"github.com/prepforge/interviewharvest/internal/review"
)

// extractRecord builds one record from a review container element. The body
// text is the space-joined text of every body-text sub-element; under the
// minimum length the element is rejected and no record exists. Metadata
// fields are looked up independently and keep their defaults on any
// failure.
func extractRecord(el browser.Element, sel Selectors, pageNum, ordinal int) (review.Record, error) {
	parts, err := el.SelectAll(sel.BodyText)
	if err != nil {
		return review.Record{}, fmt.Errorf("body text lookup: %w", err)
	}
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		t, err := p.Text()
		if err != nil {
			continue
		}
		if t = strings.TrimSpace(t); t != "" {
			texts = append(texts, t)
		}
	}
	rec, err := review.NewRecord(pageNum, ordinal, strings.Join(texts, " "))
	if err != nil {
		return review.Record{}, err
	}

	if v, ok := fieldText(el, sel.Position); ok {
		rec.Position = v
	}
	if v, ok := fieldText(el, sel.Experience); ok {
		rec.Experience = v
	}
	if v, ok := fieldText(el, sel.Difficulty); ok {
		rec.Difficulty = v
	}
	if v, ok := fieldText(el, sel.Outcome); ok {
		rec.Outcome = v
	}
	return rec, nil
}

// fieldText returns the trimmed text of the first element matching
// selector. Absence and lookup errors both report false so callers keep the
// documented default.
func fieldText(el browser.Element, selector string) (string, bool) {
	if selector == "" {
		return "", false
	}
	matches, err := el.SelectAll(selector)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	t, err := matches[0].Text()
	if err != nil {
		return "", false
	}
	t = strings.TrimSpace(t)
	return t, t != ""
}
