// Package basic is the pattern-matching question extractor. It needs no
// external service: a fixed ordered list of regular expressions pulls
// candidate spans out of raw review text, and the shared pipeline cleans,
// filters, and categorizes them.
package basic

import (
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/prepforge/interviewharvest/internal/questions"
	"github.com/prepforge/interviewharvest/internal/review"
)

// rawPatterns is the fixed extraction order. Each pattern captures a bounded
// run of non-terminator characters ending at a sentence boundary; order
// matters only for candidate collection order, not for dedup.
var rawPatterns = []string{
	`asked\s+(?:me\s+)?(?:about\s+)?([^.!?]+[?.])`,
	`question\s+(?:was\s+)?(?:about\s+)?([^.!?]+[?.])`,
	`they\s+asked\s+([^.!?]+[?.])`,
	`interviewer\s+asked\s+([^.!?]+[?.])`,
	`was\s+asked\s+([^.!?]+[?.])`,
	`questions?\s*:\s*([^.!?]+)`,
	`problem\s*:\s*([^.!?]+)`,
	`(?:coding|technical|behavioral)\s+questions?\s*:\s*([^.!?]+)`,
}

// Config carries the externally supplied analyzer settings.
type Config struct {
	MinQuestionLen int
	MaxQuestionLen int
	// CaseSensitive disables case folding during the pattern scan.
	CaseSensitive bool
}

// Extractor runs the pattern path end to end.
type Extractor struct {
	patterns    []*regexp.Regexp
	normalizer  questions.Normalizer
	categorizer questions.Categorizer
}

// maxSpecialRatio is the cap on non-alphanumeric characters per candidate;
// spans above it are regex debris, not questions.
const maxSpecialRatio = 0.3

// New compiles the pattern list under the given config.
func New(cfg Config) *Extractor {
	n := questions.NewNormalizer()
	if cfg.MinQuestionLen > 0 {
		n.MinLen = cfg.MinQuestionLen
	}
	if cfg.MaxQuestionLen > 0 {
		n.MaxLen = cfg.MaxQuestionLen
	}
	n.MaxSpecialRatio = maxSpecialRatio

	compiled := make([]*regexp.Regexp, 0, len(rawPatterns))
	for _, p := range rawPatterns {
		if !cfg.CaseSensitive {
			p = "(?i)" + p
		}
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return &Extractor{
		patterns:    compiled,
		normalizer:  n,
		categorizer: questions.NewCategorizer(),
	}
}

// Extract applies every pattern to every record and collects candidate
// spans. Exact duplicate strings collapse immediately at the set level;
// first-seen order is preserved so later stages are deterministic.
func (e *Extractor) Extract(records []review.Record) []string {
	seen := map[string]struct{}{}
	candidates := make([]string, 0, len(records))
	for _, rec := range records {
		for _, p := range e.patterns {
			for _, m := range p.FindAllStringSubmatch(rec.RawText, -1) {
				if len(m) < 2 {
					continue
				}
				if _, ok := seen[m[1]]; ok {
					continue
				}
				seen[m[1]] = struct{}{}
				candidates = append(candidates, m[1])
			}
		}
	}
	return candidates
}

// Analyze extracts, normalizes, and categorizes questions from the given
// records. An empty record set is rejected rather than returning an empty
// result.
func (e *Extractor) Analyze(records []review.Record) (map[questions.Category][]string, error) {
	if len(records) == 0 {
		return nil, review.ErrNoInterviews
	}
	log.Info().Int("interviews", len(records)).Msg("analyzing interviews with pattern extractor")

	candidates := e.Extract(records)
	cleaned := e.normalizer.Normalize(candidates)
	log.Info().Int("candidates", len(candidates)).Int("unique", len(cleaned)).Msg("extracted questions")

	return e.categorizer.Categorize(cleaned), nil
}

// Categorizer exposes the extractor's keyword tables for the statistics
// pass over raw texts.
func (e *Extractor) Categorizer() questions.Categorizer {
	return e.categorizer
}
