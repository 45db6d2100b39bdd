// Package browser abstracts the page session the navigator drives. Two
// implementations exist: a real browser via playwright for script-heavy
// sources, and a plain HTTP+parser session for static mirrors and tests.
// The navigator only sees these interfaces, so obstacle dismissal and
// pagination behave identically across both.
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrNotClickable is returned by elements that cannot be activated, e.g. a
// static-session node with no link target.
var ErrNotClickable = errors.New("element not clickable")

// Element is one node of the current page.
type Element interface {
	// Text returns the element's flattened text content with whitespace
	// runs collapsed and ends trimmed.
	Text() (string, error)
	// SelectAll returns matching descendant elements; no match is an empty
	// slice, not an error.
	SelectAll(selector string) ([]Element, error)
	// Click activates the element. For static sessions this follows the
	// element's link target.
	Click(ctx context.Context) error
}

// Session is a navigable page session.
type Session interface {
	// Navigate loads the given URL, replacing the current page.
	Navigate(ctx context.Context, url string) error
	// SelectAll returns matching elements on the current page; no match is
	// an empty slice, not an error.
	SelectAll(selector string) ([]Element, error)
	// Sleep waits for the page to settle. Static sessions return
	// immediately.
	Sleep(d time.Duration)
	// Close releases the session's resources.
	Close() error
}
