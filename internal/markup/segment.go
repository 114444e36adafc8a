package markup

import (
	"regexp"
	"strings"
)

// sentenceLeads enumerates the characters that may open a sentence after a
// terminator: Latin capitals with the Norwegian and common accented letters,
// digits, the opening guillemet and the opening parenthesis. Kept as one
// constant so the alphabet is explicit and extensible.
const sentenceLeads = `A-ZÆØÅÉÈÊÀÂÔÄÖÜ0-9«(`

var (
	paragraphBreak = regexp.MustCompile(`\n{2,}`)

	// A sentence ends at . ! or ? preceded by a letter or closing
	// punctuation (so ordinals like "2." and other digit-dotted prefixes do
	// not split), followed by whitespace and a sentence-lead character.
	sentenceBoundary = regexp.MustCompile(`[\p{L}»")\]]([.!?])\s+([` + sentenceLeads + `])`)

	newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Flush thresholds for sentence clustering.
const (
	clusterMaxChars     = 220
	clusterMaxSentences = 2
)

// SegmentParagraphs splits cleaned prose into ordered paragraph strings.
// Blank-line boundaries win when present; otherwise a single block is
// clustered along sentence boundaries. Empty or whitespace-only input yields
// no paragraphs, and every returned paragraph is a trimmed, non-empty slice
// of the input in original order.
func SegmentParagraphs(text string) []string {
	text = strings.TrimSpace(newlineNormalizer.Replace(text))
	if text == "" {
		return nil
	}

	parts := paragraphBreak.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) > 1 {
		return paragraphs
	}

	spans := sentenceSpans(text)
	if len(spans) <= 1 {
		return []string{text}
	}
	return clusterSentences(text, spans)
}

type span struct{ start, end int }

// sentenceSpans locates sentence slices of text using the boundary rule.
func sentenceSpans(text string) []span {
	locs := sentenceBoundary.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []span{{0, len(text)}}
	}
	spans := make([]span, 0, len(locs)+1)
	start := 0
	for _, m := range locs {
		// m[3] is just past the terminator, m[4] is the lead character of
		// the following sentence.
		spans = append(spans, span{start, m[3]})
		start = m[4]
	}
	spans = append(spans, span{start, len(text)})
	return spans
}

// clusterSentences greedily accumulates sentences and flushes a paragraph
// when the accumulated text reaches clusterMaxChars, the just-added sentence
// ends with a colon, or clusterMaxSentences are buffered. Paragraphs are cut
// as slices of the original text, so internal line breaks survive.
func clusterSentences(text string, spans []span) []string {
	var paragraphs []string
	bufStart := -1
	bufCount := 0

	flush := func(end int) {
		if bufStart < 0 {
			return
		}
		if p := strings.TrimSpace(text[bufStart:end]); p != "" {
			paragraphs = append(paragraphs, p)
		}
		bufStart = -1
		bufCount = 0
	}

	for _, s := range spans {
		if bufStart < 0 {
			bufStart = s.start
		}
		bufCount++
		sentence := strings.TrimSpace(text[s.start:s.end])
		if s.end-bufStart >= clusterMaxChars ||
			strings.HasSuffix(sentence, ":") ||
			bufCount >= clusterMaxSentences {
			flush(s.end)
		}
	}
	flush(len(text))
	return paragraphs
}
