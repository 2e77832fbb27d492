// Package extract implements ordered-fallback field extraction over parsed
// HTML. A Chain is a list of alternative CSS selectors for one logical
// field; candidates are tried strictly in order and the first one that
// yields a usable value wins. Later candidates are never consulted after a
// hit, and no candidate is retried.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Chain is an ordered list of alternative CSS selectors for one field.
type Chain []string

// FirstText returns the trimmed text of the first candidate that matches an
// element with non-empty text. A match whose text trims to "" is a miss and
// the chain continues.
func (c Chain) FirstText(scope *goquery.Selection) (string, bool) {
	for _, sel := range c {
		found := scope.Find(sel).First()
		if found.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(found.Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}

// FirstMatch returns the selection of the first candidate matching at least
// one element, along with the candidate that fired.
func (c Chain) FirstMatch(scope *goquery.Selection) (*goquery.Selection, string, bool) {
	for _, sel := range c {
		found := scope.Find(sel)
		if found.Length() > 0 {
			return found, sel, true
		}
	}
	return nil, "", false
}

// collapseSpace trims and collapses all runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
