package review

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRecordRejectsShortText(t *testing.T) {
	_, err := NewRecord(1, 1, strings.Repeat("a", MinRawTextLen-1))
	if !errors.Is(err, ErrTextTooShort) {
		t.Fatalf("expected ErrTextTooShort, got %v", err)
	}
	if _, err := NewRecord(1, 1, ""); !errors.Is(err, ErrTextTooShort) {
		t.Fatalf("expected ErrTextTooShort for empty text, got %v", err)
	}
}

func TestNewRecordAcceptsMinimumLength(t *testing.T) {
	text := strings.Repeat("a", MinRawTextLen)
	rec, err := NewRecord(3, 7, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "page_3_interview_7" {
		t.Fatalf("unexpected id: %q", rec.ID)
	}
	if rec.PageNumber != 3 {
		t.Fatalf("unexpected page number: %d", rec.PageNumber)
	}
	if rec.TextLength != MinRawTextLen {
		t.Fatalf("unexpected text length: %d", rec.TextLength)
	}
	if rec.ExtractedAt.IsZero() {
		t.Fatalf("expected extraction timestamp to be set")
	}
}

func TestNewRecordDefaults(t *testing.T) {
	rec, err := NewRecord(1, 1, strings.Repeat("x", 80))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Position != "Software Developer" {
		t.Fatalf("unexpected position default: %q", rec.Position)
	}
	for name, got := range map[string]string{
		"experience": rec.Experience,
		"difficulty": rec.Difficulty,
		"outcome":    rec.Outcome,
	} {
		if got != NotSpecified {
			t.Fatalf("unexpected %s default: %q", name, got)
		}
	}
}
