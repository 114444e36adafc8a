package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentParagraphsEmpty(t *testing.T) {
	assert.Empty(t, SegmentParagraphs(""))
	assert.Empty(t, SegmentParagraphs("   \n\n \t "))
}

func TestSegmentParagraphsExplicitBlankLines(t *testing.T) {
	got := SegmentParagraphs("Første avsnitt.\n\nAndre avsnitt.\n\n\n\nTredje.")
	assert.Equal(t, []string{"Første avsnitt.", "Andre avsnitt.", "Tredje."}, got)
}

func TestSegmentParagraphsExplicitModeKeepsPiecesVerbatim(t *testing.T) {
	// Explicit mode returns the blank-line separated pieces as-is, even when
	// a piece holds many sentences.
	in := "En. To. Tre. Fire. Fem.\n\nSeks."
	got := SegmentParagraphs(in)
	require.Len(t, got, 2)
	assert.Equal(t, "En. To. Tre. Fire. Fem.", got[0])
	assert.Equal(t, "Seks.", got[1])
}

func TestSegmentParagraphsSingleSentence(t *testing.T) {
	assert.Equal(t, []string{"Hello world."}, SegmentParagraphs("Hello world."))
}

func TestSegmentParagraphsSentenceClustering(t *testing.T) {
	in := "Dette er setning en. Dette er setning to. Dette er setning tre."
	got := SegmentParagraphs(in)
	assert.Equal(t, []string{
		"Dette er setning en. Dette er setning to.",
		"Dette er setning tre.",
	}, got)
}

func TestSegmentParagraphsLongSentenceFlushesAlone(t *testing.T) {
	long := "Denne setningen er med vilje gjort svært lang slik at den alene " +
		"overstiger terskelen for hvor mye tekst som samles i ett avsnitt, " +
		"og den fortsetter derfor med enda flere ord enn det som strengt " +
		"tatt er nødvendig for å få frem poenget i testen her. Kort hale."
	require.GreaterOrEqual(t, len(strings.Split(long, ". ")[0]), clusterMaxChars)

	got := SegmentParagraphs(long)
	require.Len(t, got, 2)
	assert.Equal(t, "Kort hale.", got[1])
}

func TestSegmentParagraphsAccentedAndGuillemetLeads(t *testing.T) {
	in := "Ørnen fløy. Åsen var bratt. «Sitatet står her.» Økten var over."
	got := SegmentParagraphs(in)
	require.Len(t, got, 2)
	assert.Equal(t, "Ørnen fløy. Åsen var bratt.", got[0])
}

func TestSegmentParagraphsDigitDottedLinesDoNotSplit(t *testing.T) {
	// Ordinal markers like "1." are not sentence terminators; the block
	// survives as one paragraph so list detection can see all its lines.
	in := "1. Første punkt\n2. Andre punkt"
	assert.Equal(t, []string{in}, SegmentParagraphs(in))
}

func TestSegmentParagraphsNormalizesTerminators(t *testing.T) {
	got := SegmentParagraphs("A.\r\n\r\nB.")
	assert.Equal(t, []string{"A.", "B."}, got)
}
