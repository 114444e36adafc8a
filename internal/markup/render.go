// Package markup renders heuristically structured HTML from plain model
// output. The pipeline has two independently invocable stages: SanitizeModelText
// strips transport artifacts from a streamed payload, and PlainTextToHTML
// segments prose into paragraphs and list blocks and emits escaped markup.
// All functions are total: empty input yields empty output and heuristic
// misses degrade to plain paragraphs, never errors.
package markup

import "strings"

// PlainTextToHTML converts plain text to an HTML fragment. Each segmented
// paragraph is rendered as a list block when list structure is detected,
// otherwise as an escaped <p> with internal newlines kept as <br>. Note that
// input is rendered as-is; callers wanting artifact removal run
// SanitizeModelText first.
func PlainTextToHTML(text string) string {
	var b strings.Builder
	for _, p := range SegmentParagraphs(text) {
		if frag := RenderList(p); frag != "" {
			b.WriteString(frag)
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(EscapeHTML(p), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
