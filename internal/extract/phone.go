package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// phonePattern matches North-American phone numbers like (310) 555-0100,
// 310-555-0100 or 310.555.0100.
var phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

// Phone extracts a phone number from a listing scope using three escalating
// strategies: a selector chain over visible text, tel: links, and finally a
// regex scan of the raw markup. Escalation stops at the first success.
func Phone(scope *goquery.Selection, candidates Chain) (string, bool) {
	// Strategy 1: visible text of chain candidates. Accept text that looks
	// like a number (starts with a digit or an opening parenthesis).
	for _, sel := range candidates {
		var phone string
		scope.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := collapseSpace(el.Text())
			if text != "" && (isDigit(text[0]) || text[0] == '(') {
				phone = text
				return false
			}
			return true
		})
		if phone != "" {
			return phone, true
		}
	}

	// Strategy 2: tel: links. Prefer the visible text, fall back to the
	// href with the scheme and country prefix stripped.
	var phone string
	scope.Find(`a[href^='tel:']`).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		if text == "" {
			href, _ := el.Attr("href")
			text = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(href, "tel:"), "+1", ""))
		}
		if len(text) >= 10 {
			phone = text
			return false
		}
		return true
	})
	if phone != "" {
		return phone, true
	}

	// Strategy 3: last resort, regex over the raw listing markup.
	if html, err := scope.Html(); err == nil {
		if m := phonePattern.FindString(html); m != "" {
			return m, true
		}
	}

	return "", false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
