package collector

import (
	"context"
	"fmt"
	"os"

	"leadgrab/internal/extract"
	"leadgrab/internal/records"

	"github.com/PuerkitoBio/goquery"
)

// PageDriver abstracts the browser from the pagination walk: a snapshot of
// the current results page plus an attempt to advance to the next one.
type PageDriver interface {
	// Snapshot returns the current page parsed for extraction.
	Snapshot() (*goquery.Document, error)

	// Advance tries to move to the next results page. ok=false means the
	// walk is over; reason says which terminal branch fired (last page and
	// broken selector are indistinguishable, so the reason is logged rather
	// than interpreted).
	Advance(ctx context.Context) (ok bool, reason string)
}

// Walker drives the sequential traversal of a multi-page result listing.
type Walker struct {
	Driver PageDriver

	// MaxPages and MaxResults force early termination when > 0.
	MaxPages   int
	MaxResults int

	// OnRecord is invoked after each record is appended, for progress
	// reporting and cadence saving. May be nil.
	OnRecord func(rec records.Record, total int)
}

// Walk extracts listings page by page into rs until a terminal condition or
// a caller-supplied bound is reached. All terminations other than a
// cancelled context are normal completion.
func (w *Walker) Walk(ctx context.Context, rs *records.ResultSet) error {
	for pageNum := 1; ; pageNum++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := w.Driver.Snapshot()
		if err != nil {
			fmt.Fprintf(os.Stderr, "[collector] snapshot failed on page %d: %v\n", pageNum, err)
			return nil
		}

		listings, winner, ok := listingChain.FirstMatch(doc.Selection)
		if !ok {
			fmt.Fprintf(os.Stderr, "[collector] stop: no listing container matched on page %d\n", pageNum)
			return nil
		}
		fmt.Fprintf(os.Stderr, "[collector] page %d: %d listings via %q\n", pageNum, listings.Length(), winner)

		full := false
		listings.EachWithBreak(func(_ int, listing *goquery.Selection) bool {
			if w.MaxResults > 0 && rs.Len() >= w.MaxResults {
				full = true
				return false
			}
			if rec, ok := extractListing(listing); ok {
				rs.Append(rec)
				if w.OnRecord != nil {
					w.OnRecord(rec, rs.Len())
				}
			}
			return true
		})
		if full || (w.MaxResults > 0 && rs.Len() >= w.MaxResults) {
			fmt.Fprintf(os.Stderr, "[collector] stop: reached max results (%d)\n", w.MaxResults)
			return nil
		}

		if w.MaxPages > 0 && pageNum >= w.MaxPages {
			fmt.Fprintf(os.Stderr, "[collector] stop: reached max pages (%d)\n", w.MaxPages)
			return nil
		}

		ok, reason := w.Driver.Advance(ctx)
		if !ok {
			fmt.Fprintf(os.Stderr, "[collector] stop: %s\n", reason)
			return nil
		}
	}
}

// extractListing pulls one record out of a listing scope. A listing with no
// discoverable business name is dropped; a missing phone gets the sentinel.
func extractListing(listing *goquery.Selection) (records.Record, bool) {
	name, ok := nameChain.FirstText(listing)
	if !ok {
		return records.Record{}, false
	}

	phone, ok := extract.Phone(listing, phoneChain)
	if !ok {
		phone = records.PhoneNotAvailable
	}

	return records.Record{BusinessName: name, PhoneNumber: phone}, true
}
