// Package review holds the data model shared by the scraping and analysis
// stages: one captured interview review and the metadata of a scraping run.
package review

import (
	"errors"
	"fmt"
	"time"
)

// MinRawTextLen is the minimum accepted length for a review body. Shorter
// elements carry no extractable questions and are dropped at extraction time.
const MinRawTextLen = 50

// NotSpecified is the default for metadata fields absent from the page.
const NotSpecified = "Not specified"

// ErrTextTooShort rejects review bodies under MinRawTextLen.
var ErrTextTooShort = errors.New("review text too short")

// ErrNoInterviews is returned when the question-extraction stage is handed
// an empty record set; an empty input is a caller mistake, not an empty
// result.
var ErrNoInterviews = errors.New("no interviews found in data")

// Record is one captured interview review. Records are immutable once
// constructed; the constructor is the only place the invariants are checked.
type Record struct {
	ID          string    `json:"id"`
	PageNumber  int       `json:"page_number"`
	Position    string    `json:"position"`
	Experience  string    `json:"experience"`
	Difficulty  string    `json:"difficulty"`
	Outcome     string    `json:"outcome"`
	RawText     string    `json:"raw_text"`
	TextLength  int       `json:"text_length"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// NewRecord constructs a Record for the ordinal-th element of a page. It
// fails with ErrTextTooShort when rawText is empty or under MinRawTextLen,
// so a too-short record is never constructed.
func NewRecord(pageNumber, ordinal int, rawText string) (Record, error) {
	if len(rawText) < MinRawTextLen {
		return Record{}, fmt.Errorf("%w: %d chars", ErrTextTooShort, len(rawText))
	}
	return Record{
		ID:          fmt.Sprintf("page_%d_interview_%d", pageNumber, ordinal),
		PageNumber:  pageNumber,
		Position:    "Software Developer",
		Experience:  NotSpecified,
		Difficulty:  NotSpecified,
		Outcome:     NotSpecified,
		RawText:     rawText,
		TextLength:  len(rawText),
		ExtractedAt: time.Now(),
	}, nil
}

// RunMetadata describes one completed scraping run.
type RunMetadata struct {
	CompanyURL      string    `json:"company_url"`
	ScrapingDate    time.Time `json:"scraping_date"`
	DurationSeconds float64   `json:"duration_seconds"`
	PagesProcessed  int       `json:"pages_processed"`
	TotalInterviews int       `json:"total_interviews"`
	Errors          int       `json:"errors"`
}

// ScrapeResult bundles the accumulated records with run metadata. It is the
// unit persisted to disk between the scraping and analysis stages.
type ScrapeResult struct {
	Metadata   RunMetadata `json:"metadata"`
	Interviews []Record    `json:"interviews"`
}
