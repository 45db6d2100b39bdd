package browser

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/prepforge/interviewharvest/internal/fetch"
)

// StaticSession drives a JS-free page source over plain HTTP. Clicking a
// pagination control follows its link target; settle waits are no-ops
// because a fetched document is already complete.
type StaticSession struct {
	client *fetch.Client
	doc    *goquery.Document
	base   *url.URL
}

// NewStaticSession returns a session backed by the given HTTP client.
func NewStaticSession(client *fetch.Client) *StaticSession {
	return &StaticSession{client: client}
}

func (s *StaticSession) Navigate(ctx context.Context, target string) error {
	body, _, err := s.client.Get(ctx, target)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", target, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse %s: %w", target, err)
	}
	base, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("parse url %s: %w", target, err)
	}
	s.doc = doc
	s.base = base
	return nil
}

func (s *StaticSession) SelectAll(selector string) ([]Element, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	return s.wrap(s.doc.Find(selector)), nil
}

func (s *StaticSession) Sleep(time.Duration) {}

func (s *StaticSession) Close() error { return nil }

func (s *StaticSession) wrap(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(i int, one *goquery.Selection) {
		out = append(out, &staticElement{session: s, sel: sel.Eq(i)})
	})
	return out
}

type staticElement struct {
	session *StaticSession
	sel     *goquery.Selection
}

func (e *staticElement) Text() (string, error) {
	var parts []string
	for _, node := range e.sel.Nodes {
		if t := flattenNode(node); t != "" {
			parts = append(parts, t)
		}
	}
	var b bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String(), nil
}

func (e *staticElement) SelectAll(selector string) ([]Element, error) {
	return e.session.wrap(e.sel.Find(selector)), nil
}

// Click follows the element's link target: its own href, a descendant
// anchor's, or the nearest enclosing anchor's, in that order.
func (e *staticElement) Click(ctx context.Context) error {
	href, ok := e.sel.Attr("href")
	if !ok {
		href, ok = e.sel.Find("a[href]").Attr("href")
	}
	if !ok {
		href, ok = e.sel.Closest("a[href]").Attr("href")
	}
	if !ok {
		return ErrNotClickable
	}
	ref, err := url.Parse(href)
	if err != nil {
		return fmt.Errorf("parse href %q: %w", href, err)
	}
	return e.session.Navigate(ctx, e.session.base.ResolveReference(ref).String())
}
