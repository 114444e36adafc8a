package present

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvernberg/lovchat/pkg/api"
)

func sampleAnswer() api.Answer {
	return api.Answer{
		Question: "Har jeg rett til ferie?",
		Text:     "Ja, arbeidstaker har rett til ferie.",
		HTML:     "<p>Ja, arbeidstaker har rett til ferie.</p>",
		Contexts: []api.RetrievalResult{
			{Score: 0.812, Chunk: api.Chunk{RefID: "lov-ferie", Title: "Ferieloven"}},
		},
		Model:    "gpt-4o-mini",
		Duration: 120 * time.Millisecond,
	}
}

func TestParseMode(t *testing.T) {
	for s, want := range map[string]Mode{"plain": ModePlain, "pretty": ModePretty, "json": ModeJSON} {
		got, ok := ParseMode(s)
		assert.True(t, ok, s)
		assert.Equal(t, want, got, s)
	}
	_, ok := ParseMode("bogus")
	assert.False(t, ok)
}

func TestRenderAnswerPlain(t *testing.T) {
	var buf bytes.Buffer
	err := RenderAnswer(&buf, sampleAnswer(), Options{Mode: ModePlain, ShowContexts: true})
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Ja, arbeidstaker har rett til ferie.\n"))
	assert.Contains(t, out, "Kilder:")
	assert.Contains(t, out, "Ferieloven")
	assert.Contains(t, out, "0.812")
	assert.Contains(t, out, "Svartid: 120ms")
}

func TestRenderAnswerPlainWithoutContexts(t *testing.T) {
	var buf bytes.Buffer
	err := RenderAnswer(&buf, sampleAnswer(), Options{Mode: ModePlain})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Kilder")
	assert.NotContains(t, buf.String(), "Svartid")
}

func TestRenderAnswerJSON(t *testing.T) {
	var buf bytes.Buffer
	err := RenderAnswer(&buf, sampleAnswer(), Options{Mode: ModeJSON, JSONIndent: true})
	require.NoError(t, err)

	var got api.Answer
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Har jeg rett til ferie?", got.Question)
	assert.Equal(t, "<p>Ja, arbeidstaker har rett til ferie.</p>", got.HTML)
}

func TestRenderAnswerPretty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderAnswer(&buf, sampleAnswer(), Options{Mode: ModePretty, Style: "notty", ShowContexts: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "rett til ferie")
	assert.Contains(t, buf.String(), "120ms")
}

func TestRenderDocumentsPlain(t *testing.T) {
	docs := []api.DocumentInfo{
		{RefID: "lov-1", Title: "Ferieloven", Chunks: 12},
		{RefID: "lov-2", Title: "Vegtrafikkloven", Chunks: 40},
	}
	var buf bytes.Buffer
	err := RenderDocuments(&buf, docs, Options{Mode: ModePlain, Headers: true})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "refid")
	assert.Contains(t, lines[1], "Ferieloven")
	assert.Contains(t, lines[2], "40")
}
