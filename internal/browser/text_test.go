package browser

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestFlattenNodeSkipsScripts(t *testing.T) {
	doc := parseFragment(t, `<div>visible<script>var hidden = 1;</script> text</div>`)
	got := flattenNode(doc)
	if strings.Contains(got, "hidden") {
		t.Fatalf("script content leaked: %q", got)
	}
	if !strings.Contains(got, "visible") || !strings.Contains(got, "text") {
		t.Fatalf("visible text lost: %q", got)
	}
}

func TestFlattenNodeCollapsesWhitespace(t *testing.T) {
	doc := parseFragment(t, "<div>first\n\n   second\tthird</div>")
	got := flattenNode(doc)
	if got != "first second third" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestFlattenNodeSeparatesBlocks(t *testing.T) {
	doc := parseFragment(t, `<div><p>alpha</p><p>beta</p></div>`)
	got := flattenNode(doc)
	if !strings.Contains(got, "alpha beta") {
		t.Fatalf("block elements merged: %q", got)
	}
}
