package present

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/kvernberg/lovchat/pkg/api"
)

// writePrettyAnswer renders the answer as terminal markdown using glamour.
func writePrettyAnswer(w io.Writer, a api.Answer, opts Options) error {
	style := opts.Style
	if style == "" {
		style = "dracula"
	}
	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = 80
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n%s\n", a.Question, strings.TrimSpace(a.Text))
	if opts.ShowContexts && len(a.Contexts) > 0 {
		md.WriteString("\n---\n\n**Kilder**\n\n")
		for _, c := range a.Contexts {
			label := c.Chunk.Title
			if label == "" {
				label = c.Chunk.RefID
			}
			fmt.Fprintf(&md, "- %s (%.3f)\n", label, c.Score)
		}
	}
	if a.Duration > 0 {
		fmt.Fprintf(&md, "\n*Svartid: %s*\n", a.Duration.Round(time.Millisecond))
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md.String())
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
