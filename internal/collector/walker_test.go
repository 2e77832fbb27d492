package collector

import (
	"context"
	"strings"
	"testing"

	"leadgrab/internal/records"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver serves a fixed sequence of page markups.
type fakeDriver struct {
	pages    []string
	current  int
	advances int
}

func (d *fakeDriver) Snapshot() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(d.pages[d.current]))
}

func (d *fakeDriver) Advance(_ context.Context) (bool, string) {
	d.advances++
	if d.current+1 >= len(d.pages) {
		return false, "no qualifying next control found"
	}
	d.current++
	return true, ""
}

func listingPage(listings ...string) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for _, l := range listings {
		sb.WriteString(`<div class="srp-listing">` + l + `</div>`)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

const (
	acme = `<a class="business-name">Acme Plumbing</a><div class="phones phone primary">(310) 555-0100</div>`
	best = `<a class="business-name">Best Dental</a>`
	anon = `<div class="phones phone primary">(415) 555-0123</div>`
)

func TestWalkExtractsAllPagesInOrder(t *testing.T) {
	d := &fakeDriver{pages: []string{
		listingPage(acme, best),
		listingPage(acme),
	}}
	rs := &records.ResultSet{}

	w := &Walker{Driver: d}
	require.NoError(t, w.Walk(context.Background(), rs))

	require.Equal(t, 3, rs.Len())
	assert.Equal(t, "Acme Plumbing", rs.Records[0].BusinessName)
	assert.Equal(t, "(310) 555-0100", rs.Records[0].PhoneNumber)
	assert.Equal(t, "Best Dental", rs.Records[1].BusinessName)
	assert.Equal(t, records.PhoneNotAvailable, rs.Records[1].PhoneNumber)
	// Same business on a second page yields a second record.
	assert.Equal(t, rs.Records[0], rs.Records[2])
}

func TestWalkDropsNamelessListings(t *testing.T) {
	d := &fakeDriver{pages: []string{listingPage(anon, acme)}}
	rs := &records.ResultSet{}

	w := &Walker{Driver: d}
	require.NoError(t, w.Walk(context.Background(), rs))

	require.Equal(t, 1, rs.Len())
	for _, r := range rs.Records {
		assert.NotEmpty(t, r.BusinessName)
	}
}

func TestWalkStopsWhenNoContainerMatches(t *testing.T) {
	d := &fakeDriver{pages: []string{
		listingPage(acme),
		"<html><body><p>no listings here</p></body></html>",
		listingPage(best),
	}}
	rs := &records.ResultSet{}

	w := &Walker{Driver: d}
	require.NoError(t, w.Walk(context.Background(), rs))

	// The walk halts at the empty page; the third page is never reached.
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, 1, d.advances)
}

func TestWalkHonorsMaxPages(t *testing.T) {
	d := &fakeDriver{pages: []string{
		listingPage(acme),
		listingPage(best),
		listingPage(acme),
	}}
	rs := &records.ResultSet{}

	w := &Walker{Driver: d, MaxPages: 2}
	require.NoError(t, w.Walk(context.Background(), rs))

	assert.Equal(t, 2, rs.Len())
	// The bound is checked before committing to another navigation.
	assert.Equal(t, 1, d.advances)
}

func TestWalkHonorsMaxResults(t *testing.T) {
	d := &fakeDriver{pages: []string{
		listingPage(acme, best, acme),
		listingPage(best),
	}}
	rs := &records.ResultSet{}

	w := &Walker{Driver: d, MaxResults: 2}
	require.NoError(t, w.Walk(context.Background(), rs))

	assert.Equal(t, 2, rs.Len())
	assert.Zero(t, d.advances)
}

func TestWalkOnRecordCallback(t *testing.T) {
	d := &fakeDriver{pages: []string{listingPage(acme, best)}}
	rs := &records.ResultSet{}

	var seen []string
	w := &Walker{Driver: d, OnRecord: func(rec records.Record, total int) {
		seen = append(seen, rec.BusinessName)
		assert.Equal(t, len(seen), total)
	}}
	require.NoError(t, w.Walk(context.Background(), rs))

	assert.Equal(t, []string{"Acme Plumbing", "Best Dental"}, seen)
}

func TestWalkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &fakeDriver{pages: []string{listingPage(acme)}}
	rs := &records.ResultSet{}

	w := &Walker{Driver: d}
	err := w.Walk(ctx, rs)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rs.Len())
}
