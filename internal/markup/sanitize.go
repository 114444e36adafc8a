package markup

import (
	"regexp"
	"strings"
)

var (
	lineTerminator = regexp.MustCompile(`\r\n|\r|\n`)

	// controlLine matches protocol markers that leak into streamed model
	// output: bracketed uppercase tags for source attribution, session id,
	// status, context lists, chunking and stream completion. Matching is
	// case-insensitive and tolerates a payload inside the brackets.
	controlLine = regexp.MustCompile(`(?i)^\[(?:SOURCES?|KILDER?|SESSION|STATUS|CONTEXTS?|CHUNK|DONE|COMPLETE|COMPLETION)\b[^\]]*\]`)
)

// SanitizeModelText strips transport artifacts from raw model output: control
// marker lines and stray structured-data fragments are dropped, runs of blank
// lines collapse to one, and every kept line is trimmed. The result never has
// leading or trailing blanks.
func SanitizeModelText(text string) string {
	if text == "" {
		return ""
	}
	lines := lineTerminator.Split(text, -1)
	out := make([]string, 0, len(lines))
	prevBlank := true
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			// Collapse blank runs; never start with a blank.
			if !prevBlank && len(out) > 0 {
				out = append(out, "")
				prevBlank = true
			}
		case controlLine.MatchString(trimmed):
			// Dropped lines do not affect blank-run tracking.
		case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
			// Stray JSON fragment from the stream.
		default:
			out = append(out, trimmed)
			prevBlank = false
		}
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
