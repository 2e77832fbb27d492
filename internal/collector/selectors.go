package collector

import "leadgrab/internal/extract"

// Selector chains for yellowpages.com. The markup is third-party and
// unversioned, so every field carries ordered alternatives; the first
// candidate that yields a usable value wins.

// Search form.
var (
	whatFieldChain = extract.Chain{
		"#query",
		"input[name='search_terms']",
		"input.search-input",
		"#search-form input[type='text']",
	}
	whereFieldChain = extract.Chain{
		"#location",
		"input[placeholder*='Where']",
		"input#geo_location_terms",
		"input[name='geo_location_terms']",
	}
	submitChain = extract.Chain{
		"button[value='Find']",
		"button[type='submit']",
		".search-submit",
	}
	resultsReadyChain = extract.Chain{
		".result",
		".search-results",
		".organic",
		"[class*='result']",
	}
)

// Result pages.
var (
	listingChain = extract.Chain{
		".srp-listing",
		".result",
		".search-results .result",
		".organic",
		"[class*='srp-listing']",
		"[class*='result-item']",
	}
	nameChain = extract.Chain{
		"a.business-name",
		".business-name",
		"h2.n a",
		".info-section h2 a",
		"[class*='business-name']",
		".info h2 a",
	}
	phoneChain = extract.Chain{
		".phones.phone.primary",
		".phone.primary",
		".phones",
		"div.phone",
		"[class*='phone primary']",
		".info-secondary .phone",
	}
	nextControlChain = extract.Chain{
		"a.next",
		"a[rel='next']",
		".pagination a.next",
		"a[aria-label='Next']",
		".next a",
	}
)
