package present

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kvernberg/lovchat/pkg/api"
)

// TSV columns: refid, title, chunks
var documentsHeader = "refid\ttitle\tchunks\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func writePlainAnswer(w io.Writer, a api.Answer, showContexts bool) error {
	if _, err := io.WriteString(w, strings.TrimSpace(a.Text)+"\n"); err != nil {
		return err
	}
	if !showContexts {
		return nil
	}
	if len(a.Contexts) > 0 {
		if _, err := io.WriteString(w, "\nKilder:\n"); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, c := range a.Contexts {
			label := c.Chunk.Title
			if label == "" {
				label = c.Chunk.RefID
			}
			fmt.Fprintf(tw, "  %.3f\t%s\n", c.Score, esc(label))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if a.Duration > 0 {
		_, err := fmt.Fprintf(w, "\nSvartid: %s\n", a.Duration.Round(time.Millisecond))
		return err
	}
	return nil
}

func writePlainDocuments(w io.Writer, docs []api.DocumentInfo, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, documentsHeader)
	}
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", esc(d.RefID), esc(d.Title), d.Chunks)
	}
	return tw.Flush()
}
