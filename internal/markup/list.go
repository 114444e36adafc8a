package markup

import (
	"regexp"
	"strings"
)

var (
	// bulletPrefix covers the common bullet glyphs plus hyphen, asterisk and
	// plus, each followed by whitespace.
	bulletPrefix = regexp.MustCompile(`^[-*+•‣◦▪–—]\s+`)

	// ordinalPrefix covers "1.", "2)", "a)", "b." and "3 -" style markers.
	ordinalPrefix = regexp.MustCompile(`^(?:\d+|[A-Za-z])(?:[.)]| -)\s+`)

	// leadJunk is the residual non-word run left on an item after its marker
	// is stripped.
	leadJunk = regexp.MustCompile(`^[^\p{L}\p{N}]+`)

	semicolonSep = regexp.MustCompile(`;\s+`)
)

// listClassifiers is the priority-ordered detection chain. The no-colon line
// list is tried first; a paragraph containing a colon is only ever handled by
// the colon path, whose semicolon-inline form outranks its line-list
// fallback. Reordering these changes which heuristic wins on ambiguous input.
var listClassifiers = []func(string) (string, bool){
	classifyLineList,
	classifyColonList,
}

// RenderList renders a paragraph as heading+list markup when it has
// recognizable list structure. It returns "" when the paragraph is not
// list-shaped; the caller falls back to a plain block.
func RenderList(paragraph string) string {
	for _, classify := range listClassifiers {
		if frag, ok := classify(paragraph); ok {
			return frag
		}
	}
	return ""
}

// classifyLineList handles paragraphs without any colon: two or more lines
// that all carry a bullet marker or all carry an ordinal marker.
func classifyLineList(p string) (string, bool) {
	if strings.Contains(p, ":") {
		return "", false
	}
	lines := nonEmptyLines(p)
	if len(lines) < 2 {
		return "", false
	}
	return renderMarkedLines("", lines)
}

// classifyColonList splits at the first colon into a heading candidate and a
// remainder. Two or more semicolon-separated items render as an inline
// unordered list (the heading keeps its colon); otherwise the remainder's
// lines are classified like the no-colon path, with the colon stripped from
// the heading.
func classifyColonList(p string) (string, bool) {
	idx := strings.Index(p, ":")
	if idx < 0 {
		return "", false
	}
	lead := strings.TrimSpace(p[:idx])
	remainder := strings.TrimSpace(p[idx+1:])

	var items []string
	for _, it := range semicolonSep.Split(remainder, -1) {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	if len(items) >= 2 {
		return assembleList(lead+":", items, false)
	}

	lines := nonEmptyLines(remainder)
	if len(lines) < 2 {
		return "", false
	}
	return renderMarkedLines(strings.TrimSuffix(lead, ":"), lines)
}

// renderMarkedLines classifies candidate lines as a bulleted or ordinal list.
// Every line must match the same marker pattern or the candidate is rejected.
func renderMarkedLines(heading string, lines []string) (string, bool) {
	switch {
	case allMatch(lines, bulletPrefix):
		return assembleList(heading, stripMarkers(lines, bulletPrefix), false)
	case allMatch(lines, ordinalPrefix):
		return assembleList(heading, stripMarkers(lines, ordinalPrefix), true)
	default:
		return "", false
	}
}

// assembleList builds the heading+items markup. Each item loses any leading
// non-word run and is dropped if that leaves it empty; with no items left the
// paragraph is not rendered as a list at all.
func assembleList(heading string, items []string, ordered bool) (string, bool) {
	clean := items[:0]
	for _, it := range items {
		if it = strings.TrimSpace(leadJunk.ReplaceAllString(it, "")); it != "" {
			clean = append(clean, it)
		}
	}
	if len(clean) == 0 {
		return "", false
	}

	tag := "ul"
	if ordered {
		tag = "ol"
	}
	var b strings.Builder
	if heading != "" {
		b.WriteString("<p><strong>")
		b.WriteString(EscapeHTML(heading))
		b.WriteString("</strong></p>")
	}
	b.WriteString("<" + tag + ">")
	for _, it := range clean {
		b.WriteString("<li>")
		b.WriteString(EscapeHTML(it))
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String(), true
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func allMatch(lines []string, re *regexp.Regexp) bool {
	for _, line := range lines {
		if !re.MatchString(line) {
			return false
		}
	}
	return true
}

func stripMarkers(lines []string, re *regexp.Regexp) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(re.ReplaceAllString(line, ""))
	}
	return out
}
