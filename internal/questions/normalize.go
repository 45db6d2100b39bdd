package questions

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Default bounds for the quality gate. Candidates outside these lengths are
// dropped as noise, not reported as errors.
const (
	DefaultMinLen = 15
	DefaultMaxLen = 300
)

// DefaultSkipWords marks placeholder or sample text that models sometimes
// echo back; any candidate containing one is dropped.
var DefaultSkipWords = []string{"lorem", "ipsum", "example", "sample"}

// wrapPunct is the set of punctuation stripped from both ends of a candidate.
const wrapPunct = ".,!?"

// Normalizer cleans candidate questions, applies the quality gate, and
// deduplicates case-insensitively keeping the first occurrence. Both
// extraction paths run their candidates through the same Normalizer, so the
// output invariants (length bounds, no wrapping punctuation, capitalized
// first rune, no case-insensitive duplicates) hold regardless of path.
type Normalizer struct {
	MinLen int
	MaxLen int
	// MaxSpecialRatio caps the share of non-alphanumeric, non-space runes.
	// Zero disables the check.
	MaxSpecialRatio float64
	SkipWords       []string
}

// NewNormalizer returns a Normalizer with the documented defaults.
func NewNormalizer() Normalizer {
	return Normalizer{
		MinLen:    DefaultMinLen,
		MaxLen:    DefaultMaxLen,
		SkipWords: DefaultSkipWords,
	}
}

// Normalize cleans every candidate, drops the ones failing the quality gate,
// and deduplicates. Running Normalize on its own output returns the same
// slice unchanged.
func (n Normalizer) Normalize(candidates []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		q := Clean(c)
		if !n.valid(q) {
			continue
		}
		key := strings.ToLower(q)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}

// Clean collapses internal whitespace runs to a single space, strips
// wrapping punctuation and surrounding space, and capitalizes the first
// rune. Input is NFC-normalized first so length checks see composed forms.
func Clean(s string) string {
	s = norm.NFC.String(s)
	s = collapseSpaces(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.Trim(s, wrapPunct))
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// valid is the quality gate: length bounds, skip words, and optionally the
// special-character ratio. A failing candidate is an expected filtering
// outcome, never an error.
func (n Normalizer) valid(q string) bool {
	if q == "" {
		return false
	}
	length := len([]rune(q))
	if length < n.MinLen || length > n.MaxLen {
		return false
	}
	lower := strings.ToLower(q)
	for _, w := range n.SkipWords {
		if w != "" && strings.Contains(lower, w) {
			return false
		}
	}
	if n.MaxSpecialRatio > 0 {
		special := 0
		for _, r := range q {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
				special++
			}
		}
		if float64(special)/float64(length) > n.MaxSpecialRatio {
			return false
		}
	}
	return true
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
