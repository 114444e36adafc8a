package markup

import "strings"

// htmlEscaper substitutes the five reserved markup characters. The replacer
// walks the input once, so entities introduced for later characters are never
// re-escaped; the ampersand mapping must stay first regardless.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML returns text with &, <, >, " and ' replaced by named entities.
// It is not idempotent: escaping twice double-encodes ampersands, so callers
// must apply it exactly once, at the final text-to-markup boundary.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
