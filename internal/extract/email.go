package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// emailPattern is an RFC-5322-ish address matcher.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// blockedEmailTerms filters platform and transactional addresses out of the
// regex fallback tier.
var blockedEmailTerms = []string{
	"facebook.com",
	"support@",
	"noreply",
	"no-reply",
	"notification",
}

// emailCandidates are the structured-lookup tiers, tried in order before
// the full-page regex scan.
var emailCandidates = []func(doc *goquery.Document) (string, bool){
	scanAtText,
	scanEmailSelector("span[data-field='email']"),
	scanEmailSelector("[data-field='email']"),
	scanEmailSelector("div[role='main'] a[href^='mailto:']"),
	scanEmailSelector("a[href^='mailto:']"),
}

// Email extracts a contact address from a profile page. Structured lookups
// (elements containing "@", tagged email fields, mailto links) run first;
// a regex scan of the raw markup with the blocklist applied is the explicit
// last-resort tier.
func Email(doc *goquery.Document) (string, bool) {
	for _, candidate := range emailCandidates {
		if email, ok := candidate(doc); ok {
			return email, true
		}
	}
	return emailFromMarkup(doc)
}

// nonRenderedTags hold text that is never visible on the page; the at-text
// tier reads visible text only, so their content must not win over a real
// contact element further down.
var nonRenderedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// scanAtText looks for any element whose own visible text nodes contain "@".
func scanAtText(doc *goquery.Document) (string, bool) {
	var email string
	doc.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if nonRenderedTags[goquery.NodeName(el)] {
			return true
		}
		if !strings.Contains(ownText(el), "@") {
			return true
		}
		if m := emailPattern.FindString(ownText(el)); m != "" {
			email = m
			return false
		}
		return true
	})
	return email, email != ""
}

// scanEmailSelector builds a tier that reads either the element text or a
// mailto target of the first usable match for sel.
func scanEmailSelector(sel string) func(doc *goquery.Document) (string, bool) {
	return func(doc *goquery.Document) (string, bool) {
		var email string
		doc.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if strings.Contains(text, "@") {
				if m := emailPattern.FindString(text); m != "" {
					email = m
					return false
				}
			}
			if href, ok := el.Attr("href"); ok && strings.HasPrefix(href, "mailto:") {
				addr := strings.TrimPrefix(href, "mailto:")
				if i := strings.IndexByte(addr, '?'); i >= 0 {
					addr = addr[:i]
				}
				addr = strings.TrimSpace(addr)
				if strings.Contains(addr, "@") {
					email = addr
					return false
				}
			}
			return true
		})
		return email, email != ""
	}
}

// emailFromMarkup scans the raw page markup for addresses, dropping known
// non-contact ones, and returns the first survivor.
func emailFromMarkup(doc *goquery.Document) (string, bool) {
	markup, err := doc.Html()
	if err != nil {
		return "", false
	}
	for _, m := range emailPattern.FindAllString(markup, -1) {
		if isBlockedEmail(m) {
			continue
		}
		return m, true
	}
	return "", false
}

func isBlockedEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, term := range blockedEmailTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// ownText returns the text held directly by el, excluding descendants, so a
// container wrapping half the page does not shadow the element that actually
// carries the address.
func ownText(el *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range el.Nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				sb.WriteString(child.Data)
			}
		}
	}
	return sb.String()
}
