// Package collector drives the listing-collection phase: submit a search on
// the directory site, then walk the result pages extracting one record per
// listing.
package collector

import (
	"context"
	"fmt"
	"os"
	"time"

	"leadgrab/internal/session"

	"github.com/PuerkitoBio/goquery"
)

const homeURL = "https://www.yellowpages.com/"

// Options bounds one collection run.
type Options struct {
	Query    string
	Location string

	// MaxPages and MaxResults cap the walk when > 0.
	MaxPages   int
	MaxResults int

	// Timeout bounds the search-form and results waits.
	Timeout time.Duration
}

// Collector runs one collection session.
type Collector struct {
	sess *session.Session
}

// New creates a collector on an open session.
func New(sess *session.Session) *Collector {
	return &Collector{sess: sess}
}

// Search navigates to the directory home page, fills the search form and
// waits for the first results page. A timeout here is a session-level
// failure: diagnostics are captured and the error propagates.
func (c *Collector) Search(ctx context.Context, opts Options) error {
	if err := c.search(ctx, opts); err != nil {
		c.sess.CaptureFailure("search_error")
		return err
	}
	return nil
}

func (c *Collector) search(ctx context.Context, opts Options) error {
	fmt.Fprintf(os.Stderr, "[collector] navigating to %s\n", homeURL)
	if err := c.sess.Navigate(ctx, homeURL); err != nil {
		return fmt.Errorf("failed to open directory site: %w", err)
	}

	whatSel, err := c.sess.WaitForAny(whatFieldChain, opts.Timeout)
	if err != nil {
		return fmt.Errorf("search field not found: %w", err)
	}
	if err := c.sess.Type(whatSel, opts.Query); err != nil {
		return fmt.Errorf("failed to enter query: %w", err)
	}
	fmt.Fprintf(os.Stderr, "[collector] entered query via %q\n", whatSel)

	whereSel, err := c.sess.WaitForAny(whereFieldChain, opts.Timeout)
	if err != nil {
		return fmt.Errorf("location field not found: %w", err)
	}
	if err := c.sess.Type(whereSel, opts.Location); err != nil {
		return fmt.Errorf("failed to enter location: %w", err)
	}
	fmt.Fprintf(os.Stderr, "[collector] entered location via %q\n", whereSel)

	// Click the submit control; fall back to pressing Enter in the
	// location field when no button candidate matches.
	submitted := false
	for _, sel := range submitChain {
		if err := c.sess.Click(sel); err == nil {
			fmt.Fprintf(os.Stderr, "[collector] submitted via %q\n", sel)
			submitted = true
			break
		}
	}
	if !submitted {
		if err := c.sess.PressEnter(whereSel); err != nil {
			return fmt.Errorf("failed to submit search: %w", err)
		}
		fmt.Fprintf(os.Stderr, "[collector] submitted via enter key\n")
	}

	if _, err := c.sess.WaitForAny(resultsReadyChain, opts.Timeout); err != nil {
		return fmt.Errorf("results did not appear: %w", err)
	}
	fmt.Fprintf(os.Stderr, "[collector] results loaded at %s\n", c.sess.CurrentURL())
	return nil
}

// Driver returns the live-session PageDriver for the pagination walk.
func (c *Collector) Driver() PageDriver {
	return &sessionDriver{sess: c.sess}
}

// sessionDriver adapts a live session to the PageDriver interface.
type sessionDriver struct {
	sess *session.Session
}

func (d *sessionDriver) Snapshot() (*goquery.Document, error) {
	return d.sess.Snapshot()
}

func (d *sessionDriver) Advance(ctx context.Context) (bool, string) {
	d.sess.Pace(ctx)
	oldURL := d.sess.CurrentURL()

	for _, sel := range nextControlChain {
		clicked, err := d.sess.ClickFirstEnabled(sel)
		if err != nil || !clicked {
			continue
		}
		if d.sess.WaitURLChange(oldURL, 15*time.Second) {
			return true, ""
		}
		return false, fmt.Sprintf("url unchanged after clicking next control %q", sel)
	}
	return false, "no qualifying next control found"
}
