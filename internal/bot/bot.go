// Package bot answers questions over the indexed corpus: retrieve the most
// similar chunks, then ask an OpenAI-compatible model to answer from that
// context alone. Without an API key it degrades to returning the excerpts.
package bot

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kvernberg/lovchat/internal/index"
	"github.com/kvernberg/lovchat/internal/markup"
	"github.com/kvernberg/lovchat/pkg/api"
)

const systemPrompt = "Du er LovChat, en hjelpsom assistent som svarer på spørsmål om norske lover og " +
	"sentrale forskrifter. Oppgi kun informasjon hentet fra konteksten. Hvis svaret " +
	"ikke finnes i utdragene, si at du ikke er sikker."

// Completer is the generation backend; nil means no backend configured.
type Completer interface {
	Complete(ctx context.Context, model string, messages []Message, temperature float64) (string, error)
}

// Bot wires retrieval and generation. The index is held behind an atomic
// pointer: a rebuild swaps in a fresh index with SetIndex while questions
// keep being served against the old one.
type Bot struct {
	Client      Completer
	Model       string
	TopK        int
	Temperature float64

	index atomic.Pointer[index.Index]
}

// New builds a bot over an index. client may be nil.
func New(ix *index.Index, client Completer, model string, topK int) *Bot {
	if topK <= 0 {
		topK = 5
	}
	b := &Bot{Client: client, Model: model, TopK: topK, Temperature: 0.2}
	b.index.Store(ix)
	return b
}

// CurrentIndex returns the index queries currently run against.
func (b *Bot) CurrentIndex() *index.Index { return b.index.Load() }

// SetIndex swaps in a rebuilt index.
func (b *Bot) SetIndex(ix *index.Index) { b.index.Store(ix) }

// Retrieve returns the topK most relevant chunks for the question.
func (b *Bot) Retrieve(question string, topK int) []api.RetrievalResult {
	if topK <= 0 {
		topK = b.TopK
	}
	return b.index.Load().Search(question, topK)
}

// Ask retrieves context and generates an answer. The Answer's HTML field is
// the sanitize+render of the model text, ready for the web UI.
func (b *Bot) Ask(ctx context.Context, question string, topK int) (api.Answer, error) {
	started := time.Now()
	contexts := b.Retrieve(question, topK)

	text, err := b.generate(ctx, question, contexts)
	if err != nil {
		return api.Answer{}, err
	}

	return api.Answer{
		Question: question,
		Text:     text,
		HTML:     markup.PlainTextToHTML(markup.SanitizeModelText(text)),
		Contexts: contexts,
		Model:    b.Model,
		Duration: time.Since(started),
	}, nil
}

func (b *Bot) generate(ctx context.Context, question string, contexts []api.RetrievalResult) (string, error) {
	if b.Client == nil {
		// No backend configured; show the raw excerpts instead of failing.
		var sb strings.Builder
		sb.WriteString("Ingen språkmodell er konfigurert. Her er de mest relevante utdragene:")
		for _, c := range contexts {
			sb.WriteString("\n\n")
			sb.WriteString(c.Chunk.Content)
		}
		return sb.String(), nil
	}

	var ctxText strings.Builder
	for i, c := range contexts {
		if i > 0 {
			ctxText.WriteString("\n\n")
		}
		fmt.Fprintf(&ctxText, "Kilde: %s\n%s", sourceLabel(c.Chunk), c.Chunk.Content)
	}

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Kontekst:\n" + ctxText.String() + "\n\nSpørsmål: " + question + "\nSvar på norsk."},
	}
	return b.Client.Complete(ctx, b.Model, messages, b.Temperature)
}

func sourceLabel(c api.Chunk) string {
	switch {
	case c.Title != "":
		return c.Title
	case c.RefID != "":
		return c.RefID
	default:
		return c.SourcePath
	}
}
