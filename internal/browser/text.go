package browser

import (
	"strings"

	"golang.org/x/net/html"
)

// flattenNode collects the visible text under a node, skipping script and
// style subtrees, and returns it with whitespace runs collapsed.
func flattenNode(n *html.Node) string {
	var b strings.Builder
	collectText(&b, n)
	return strings.TrimSpace(collapseSpaces(b.String()))
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "iframe":
			return
		case "br", "p", "li", "div":
			b.WriteString(" ")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
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
