package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testPhoneChain = Chain{".phones.phone.primary", ".phone.primary", ".phones", "div.phone"}

func TestPhoneVisibleText(t *testing.T) {
	doc := parseHTML(t, `<div class="listing">
		<div class="phones phone primary">(310) 555-0100</div>
	</div>`)

	phone, ok := Phone(doc.Find(".listing"), testPhoneChain)
	require.True(t, ok)
	require.Equal(t, "(310) 555-0100", phone)
}

func TestPhoneCollapsesWhitespace(t *testing.T) {
	doc := parseHTML(t, `<div class="listing">
		<div class="phones">310
			555-0100</div>
	</div>`)

	phone, ok := Phone(doc.Find(".listing"), testPhoneChain)
	require.True(t, ok)
	require.Equal(t, "310 555-0100", phone)
}

func TestPhoneRejectsNonNumericText(t *testing.T) {
	// The chain candidate matches but the text does not look like a
	// number, so the tel: link tier takes over.
	doc := parseHTML(t, `<div class="listing">
		<div class="phones">Call us!</div>
		<a href="tel:+13105550100"></a>
	</div>`)

	phone, ok := Phone(doc.Find(".listing"), testPhoneChain)
	require.True(t, ok)
	require.Equal(t, "3105550100", phone)
}

func TestPhoneTelLinkPrefersVisibleText(t *testing.T) {
	doc := parseHTML(t, `<div class="listing">
		<a href="tel:+13105550100">(310) 555-0100</a>
	</div>`)

	phone, ok := Phone(doc.Find(".listing"), testPhoneChain)
	require.True(t, ok)
	require.Equal(t, "(310) 555-0100", phone)
}

func TestPhoneRegexLastResort(t *testing.T) {
	doc := parseHTML(t, `<div class="listing">
		<p>Reach our office at 310.555.0100 during business hours.</p>
	</div>`)

	phone, ok := Phone(doc.Find(".listing"), testPhoneChain)
	require.True(t, ok)
	require.Equal(t, "310.555.0100", phone)
}

func TestPhoneNotFound(t *testing.T) {
	doc := parseHTML(t, `<div class="listing"><p>No contact info.</p></div>`)

	_, ok := Phone(doc.Find(".listing"), testPhoneChain)
	require.False(t, ok)
}

func TestPhoneStrategyOrder(t *testing.T) {
	// A chain hit wins even when a tel: link and raw digits are present.
	doc := parseHTML(t, `<div class="listing">
		<div class="phone primary">(212) 555-0199</div>
		<a href="tel:+13105550100">(310) 555-0100</a>
		<p>also 415-555-0123</p>
	</div>`)

	phone, ok := Phone(doc.Find(".listing"), testPhoneChain)
	require.True(t, ok)
	require.Equal(t, "(212) 555-0199", phone)
}
