package questions

import (
	"reflect"
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "what  is\t a\nclosure", "What is a closure"},
		{"strips wrapping punctuation", "..explain event loops?!", "Explain event loops"},
		{"capitalizes first rune", "implement a queue with two stacks", "Implement a queue with two stacks"},
		{"empty stays empty", "  .,!?  ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeQualityGate(t *testing.T) {
	n := NewNormalizer()
	in := []string{
		"short",
		strings.Repeat("a", DefaultMaxLen+1),
		"this lorem placeholder sentence is long enough",
		"explain database index choices in detail",
	}
	got := n.Normalize(in)
	want := []string{"Explain database index choices in detail"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
}

func TestNormalizeDedupeKeepsFirstOccurrence(t *testing.T) {
	n := NewNormalizer()
	got := n.Normalize([]string{
		"Explain how garbage collection works.",
		"explain HOW garbage collection works",
		"Describe the virtual DOM diffing process",
	})
	want := []string{
		"Explain how garbage collection works",
		"Describe the virtual DOM diffing process",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer()
	once := n.Normalize([]string{
		"  what is   dependency injection?",
		"Compare optimistic and pessimistic locking.",
	})
	twice := n.Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second pass changed output: %v vs %v", once, twice)
	}
}

func TestSpecialRatioGate(t *testing.T) {
	n := NewNormalizer()
	n.MaxSpecialRatio = 0.3
	noisy := "a)(*&^%$#@!~{}[]<>b)(*&^%$#@"
	if got := n.Normalize([]string{noisy}); len(got) != 0 {
		t.Fatalf("expected noisy candidate dropped, got %v", got)
	}
	clean := "Walk through the TCP handshake steps"
	if got := n.Normalize([]string{clean}); len(got) != 1 {
		t.Fatalf("expected clean candidate kept, got %v", got)
	}
}
