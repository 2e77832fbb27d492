package extract

import "strings"

// blockedPathTerms disqualify interaction/share/media links that point into
// a profile rather than at it.
var blockedPathTerms = []string{"share", "comment", "like", "watch", "video"}

// PickProfileLink chooses the most likely business-profile URL from the
// facebook.com links found on a search-results page. Dedicated page
// resources (/pages, /pg) win, then any sufficiently deep path; when nothing
// qualifies the first facebook link seen is the fallback.
func PickProfileLink(hrefs []string) (string, bool) {
	var fallback string

	for _, href := range hrefs {
		if !strings.Contains(href, "facebook.com") {
			continue
		}
		if fallback == "" {
			fallback = stripTracking(href)
		}
		if hasBlockedPathTerm(href) {
			continue
		}

		u := stripTracking(href)
		switch {
		case strings.Contains(u, "facebook.com/pages"), strings.Contains(u, "facebook.com/pg"):
			return u, true
		case strings.Count(u, "/") >= 3:
			return u, true
		}
	}

	if fallback != "" {
		return fallback, true
	}
	return "", false
}

// stripTracking removes query parameters and tracking suffixes.
func stripTracking(href string) string {
	if i := strings.IndexByte(href, '&'); i >= 0 {
		href = href[:i]
	}
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	return href
}

func hasBlockedPathTerm(href string) bool {
	for _, term := range blockedPathTerms {
		if strings.Contains(href, term) {
			return true
		}
	}
	return false
}
