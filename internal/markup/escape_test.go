package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "", EscapeHTML(""))
	assert.Equal(t, "ingen spesialtegn", EscapeHTML("ingen spesialtegn"))
	assert.Equal(t, "&amp;&lt;&gt;&quot;&#39;", EscapeHTML(`&<>"'`))
	assert.Equal(t, "a &lt;b&gt; c &amp; d", EscapeHTML("a <b> c & d"))

	// Already-escaped input is escaped again; single application is the
	// caller's contract.
	assert.Equal(t, "&amp;amp;", EscapeHTML("&amp;"))
}

func TestEscapeHTMLLeavesOtherRunesAlone(t *testing.T) {
	in := "æøå ÆØÅ «sitat» — π"
	assert.Equal(t, in, EscapeHTML(in))
}
