package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightSession drives a real Chromium instance. Review sites render
// their listings client-side and gate them behind consent dialogs, so the
// production path needs actual clicks and settle waits.
type PlaywrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page

	// NavigationTimeout bounds each page load. Zero means 30s.
	NavigationTimeout time.Duration
}

// launchArgs mirror the flags the harvester has always needed to keep
// listing pages interactable.
var launchArgs = []string{
	"--disable-geolocation",
	"--disable-notifications",
	"--disable-popup-blocking",
}

// NewPlaywrightSession launches a browser and opens one page.
func NewPlaywrightSession(headless bool) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     launchArgs,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	page, err := b.NewPage()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	return &PlaywrightSession{pw: pw, browser: b, page: page}, nil
}

func (s *PlaywrightSession) Navigate(ctx context.Context, url string) error {
	timeout := s.NavigationTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (s *PlaywrightSession) SelectAll(selector string) ([]Element, error) {
	return locatorElements(s.page.Locator(selector))
}

func (s *PlaywrightSession) Sleep(d time.Duration) {
	s.page.WaitForTimeout(float64(d.Milliseconds()))
}

func (s *PlaywrightSession) Close() error {
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.pw != nil {
		return s.pw.Stop()
	}
	return nil
}

func locatorElements(loc playwright.Locator) ([]Element, error) {
	count, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("count elements: %w", err)
	}
	out := make([]Element, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, &playwrightElement{loc: loc.Nth(i)})
	}
	return out, nil
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Text() (string, error) {
	t, err := e.loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("element text: %w", err)
	}
	return strings.TrimSpace(collapseSpaces(t)), nil
}

func (e *playwrightElement) SelectAll(selector string) ([]Element, error) {
	return locatorElements(e.loc.Locator(selector))
}

func (e *playwrightElement) Click(context.Context) error {
	if err := e.loc.Click(); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}
