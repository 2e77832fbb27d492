// Package session owns one live browser page and every interaction with it.
// Both phases (collection and enrichment) drive the target sites through an
// explicit *Session rather than a shared global handle.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"leadgrab/internal/browser"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/time/rate"
)

// Session wraps a single page plus the pacing policy applied before each
// navigation. The delays are politeness/rate-limiting only; they carry no
// correctness weight.
type Session struct {
	browser *browser.Browser
	page    *rod.Page
	timeout time.Duration

	limiter  *rate.Limiter
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand
}

// Options configures a session.
type Options struct {
	Timeout  time.Duration
	MinDelay time.Duration
	MaxDelay time.Duration
}

// New opens a fresh page on b.
func New(b *browser.Browser, opts Options) (*Session, error) {
	page, err := b.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	minDelay := opts.MinDelay
	maxDelay := opts.MaxDelay
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	var limiter *rate.Limiter
	if minDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(minDelay), 1)
	}

	return &Session{
		browser:  b,
		page:     page,
		timeout:  timeout,
		limiter:  limiter,
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Close closes the page. The browser itself belongs to the caller.
func (s *Session) Close() {
	if s.page != nil {
		s.page.Close()
	}
}

// Pace blocks until the rate limiter allows the next action, then sleeps a
// random extra amount up to maxDelay-minDelay.
func (s *Session) Pace(ctx context.Context) {
	if s.limiter != nil {
		_ = s.limiter.Wait(ctx)
	}
	if extra := s.maxDelay - s.minDelay; extra > 0 {
		select {
		case <-time.After(time.Duration(s.rng.Int63n(int64(extra)))):
		case <-ctx.Done():
		}
	}
}

// Navigate paces, then drives the page to url and waits for load plus
// network idle so JS-rendered content is populated before extraction.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.Pace(ctx)

	if err := s.page.Timeout(s.timeout).Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	if err := s.page.Timeout(s.timeout).WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}

	wait := s.page.Timeout(s.timeout).WaitRequestIdle(
		500*time.Millisecond, nil, nil,
		[]proto.NetworkResourceType{proto.NetworkResourceTypeImage, proto.NetworkResourceTypeMedia},
	)
	wait()
	return nil
}

// CurrentURL returns the page URL, or "" when it cannot be read.
func (s *Session) CurrentURL() string {
	return s.evalString(`() => window.location.href`)
}

// Title returns the page title, or "" when it cannot be read.
func (s *Session) Title() string {
	return s.evalString(`() => document.title`)
}

// HTML returns the full document markup.
func (s *Session) HTML() (string, error) {
	result, err := s.page.Timeout(10 * time.Second).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}
	return s.page.MustObjectToJSON(result).String(), nil
}

// Snapshot parses the current page markup into a goquery document so
// selector chains can run against a stable copy of the DOM.
func (s *Session) Snapshot() (*goquery.Document, error) {
	html, err := s.HTML()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}
	return doc, nil
}

// Exists reports whether selector matches at least one element.
func (s *Session) Exists(selector string) bool {
	result, err := s.page.Timeout(5*time.Second).Eval(`sel => !!document.querySelector(sel)`, selector)
	if err != nil {
		return false
	}
	return s.page.MustObjectToJSON(result).Bool()
}

// Type focuses the first element matching selector, clears it and types text.
func (s *Session) Type(selector, text string) error {
	el, err := s.page.Timeout(5 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %w", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to focus element: %w", err)
	}
	_ = el.SelectAllText()
	if err := el.Input(text); err != nil {
		return fmt.Errorf("failed to type into element: %w", err)
	}
	return nil
}

// PressEnter sends Enter to the first element matching selector.
func (s *Session) PressEnter(selector string) error {
	el, err := s.page.Timeout(5 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %w", err)
	}
	if err := el.Type(input.Enter); err != nil {
		return fmt.Errorf("failed to press enter: %w", err)
	}
	return nil
}

// Click clicks the first element matching selector via JS, which avoids
// overlay/visibility interception on busy pages.
func (s *Session) Click(selector string) error {
	result, err := s.page.Timeout(5*time.Second).Eval(`sel => {
		const el = document.querySelector(sel);
		if (!el) return false;
		el.scrollIntoView({block: 'center'});
		el.click();
		return true;
	}`, selector)
	if err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	if !s.page.MustObjectToJSON(result).Bool() {
		return fmt.Errorf("no element matches %q", selector)
	}
	return nil
}

// ClickFirstEnabled clicks the first element matching selector whose class
// attribute does not indicate a disabled state. Returns false when every
// match is disabled or nothing matches.
func (s *Session) ClickFirstEnabled(selector string) (bool, error) {
	result, err := s.page.Timeout(5*time.Second).Eval(`sel => {
		const els = document.querySelectorAll(sel);
		for (const el of els) {
			const cls = (el.getAttribute('class') || '').toLowerCase();
			if (cls.includes('disabled')) continue;
			el.scrollIntoView({block: 'center'});
			el.click();
			return true;
		}
		return false;
	}`, selector)
	if err != nil {
		return false, fmt.Errorf("failed to click: %w", err)
	}
	return s.page.MustObjectToJSON(result).Bool(), nil
}

// WaitForAny polls until one of the selectors matches, returning the selector
// that fired, or an error once the deadline passes.
func (s *Session) WaitForAny(selectors []string, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, sel := range selectors {
			if s.Exists(sel) {
				return sel, nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return "", fmt.Errorf("none of %d selectors appeared within %s", len(selectors), timeout)
}

// WaitURLChange polls until the page URL differs from oldURL.
func (s *Session) WaitURLChange(oldURL string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		time.Sleep(500 * time.Millisecond)
		if u := s.CurrentURL(); u != "" && u != oldURL {
			return true
		}
	}
	return false
}

func (s *Session) evalString(js string) string {
	result, err := s.page.Timeout(5 * time.Second).Eval(js)
	if err != nil {
		return ""
	}
	return s.page.MustObjectToJSON(result).String()
}

// Screenshot writes a PNG of the current viewport to path.
func (s *Session) Screenshot(path string) error {
	data, err := s.page.Screenshot(false, nil)
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return nil
}
