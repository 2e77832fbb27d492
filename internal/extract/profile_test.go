package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickProfileLinkPrefersPageResources(t *testing.T) {
	url, ok := PickProfileLink([]string{
		"https://www.facebook.com/sharer/sharer.php?u=x",
		"https://www.facebook.com/pages/Acme-Plumbing/123456?ref=search",
	})
	require.True(t, ok)
	require.Equal(t, "https://www.facebook.com/pages/Acme-Plumbing/123456", url)
}

func TestPickProfileLinkAcceptsDeepPath(t *testing.T) {
	url, ok := PickProfileLink([]string{
		"https://www.facebook.com/acmeplumbing?fref=ts",
	})
	require.True(t, ok)
	require.Equal(t, "https://www.facebook.com/acmeplumbing", url)
}

func TestPickProfileLinkSkipsInteractionLinks(t *testing.T) {
	url, ok := PickProfileLink([]string{
		"https://www.facebook.com/watch/somevideo",
		"https://www.facebook.com/acme/video/99",
		"https://www.facebook.com/pg/acmeplumbing/about",
	})
	require.True(t, ok)
	require.Equal(t, "https://www.facebook.com/pg/acmeplumbing/about", url)
}

func TestPickProfileLinkFallsBackToFirstLink(t *testing.T) {
	// Every link is disqualified, so the first facebook link (cleaned)
	// is the fallback.
	url, ok := PickProfileLink([]string{
		"https://example.com/not-facebook",
		"https://www.facebook.com/watch/thing?x=1",
	})
	require.True(t, ok)
	require.Equal(t, "https://www.facebook.com/watch/thing", url)
}

func TestPickProfileLinkNoneFound(t *testing.T) {
	_, ok := PickProfileLink([]string{"https://example.com/", "https://twitter.com/acme"})
	require.False(t, ok)
}

func TestPickProfileLinkStripsTracking(t *testing.T) {
	url, ok := PickProfileLink([]string{
		"https://www.facebook.com/acmeplumbing?ref=br_rs&utm=serp",
	})
	require.True(t, ok)
	require.Equal(t, "https://www.facebook.com/acmeplumbing", url)
}
