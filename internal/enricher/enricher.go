// Package enricher adds a contact email to previously collected records by
// finding each business's facebook page via a web search and scanning the
// page for an address. Every step is best-effort: failures degrade to the
// "unknown" sentinel instead of propagating.
package enricher

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"leadgrab/internal/extract"
	"leadgrab/internal/records"
	"leadgrab/internal/session"

	"github.com/PuerkitoBio/goquery"
)

const searchBase = "https://www.google.com/search?q="

// Lookup performs the search-and-scan for one business at a time over a
// live session.
type Lookup struct {
	sess *session.Session
}

// NewLookup creates a lookup on an open session.
func NewLookup(sess *session.Session) *Lookup {
	return &Lookup{sess: sess}
}

// Enrich returns the best-effort email for a business, or the sentinel.
func (l *Lookup) Enrich(ctx context.Context, businessName string) string {
	profileURL, ok := l.FindProfile(ctx, businessName)
	if !ok {
		fmt.Fprintf(os.Stderr, "[enricher] %s: no profile found\n", businessName)
		return records.EmailUnknown
	}
	fmt.Fprintf(os.Stderr, "[enricher] %s: profile %s\n", businessName, truncate(profileURL, 60))

	email, ok := l.ScanEmail(ctx, profileURL)
	if !ok {
		fmt.Fprintf(os.Stderr, "[enricher] %s: no email on profile\n", businessName)
		return records.EmailUnknown
	}
	fmt.Fprintf(os.Stderr, "[enricher] %s: email %s\n", businessName, email)
	return email
}

// FindProfile searches the web for the business plus the "facebook"
// qualifier and picks the most likely profile link from the results.
func (l *Lookup) FindProfile(ctx context.Context, businessName string) (string, bool) {
	query := fmt.Sprintf("%q facebook", businessName)
	searchURL := searchBase + url.QueryEscape(query)

	if err := l.sess.Navigate(ctx, searchURL); err != nil {
		fmt.Fprintf(os.Stderr, "[enricher] search failed for %s: %v\n", businessName, err)
		return "", false
	}
	doc, err := l.sess.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[enricher] search snapshot failed for %s: %v\n", businessName, err)
		return "", false
	}

	var hrefs []string
	doc.Find("a[href*='facebook.com']").Each(func(_ int, el *goquery.Selection) {
		if href, ok := el.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})

	return extract.PickProfileLink(hrefs)
}

// ScanEmail visits the profile page and applies the layered email
// extraction (structured tiers first, raw-markup regex last).
func (l *Lookup) ScanEmail(ctx context.Context, profileURL string) (string, bool) {
	if !strings.HasPrefix(profileURL, "http") {
		profileURL = "https://" + profileURL
	}

	if err := l.sess.Navigate(ctx, profileURL); err != nil {
		fmt.Fprintf(os.Stderr, "[enricher] profile visit failed: %v\n", err)
		return "", false
	}
	doc, err := l.sess.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[enricher] profile snapshot failed: %v\n", err)
		return "", false
	}

	return extract.Email(doc)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
