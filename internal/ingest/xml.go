package ingest

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/kvernberg/lovchat/pkg/api"
)

// DefaultChunkChars bounds a chunk when the caller passes 0. Sections are
// kept whole when possible; oversized ones are split on paragraph boundaries.
const DefaultChunkChars = 1200

// ParseDocument reads one Lovdata XML document and splits it into chunks.
// The title is taken from the first korttittel/tittel/title element, the ref
// id from the document id attribute falling back to the file name.
func ParseDocument(r io.Reader, sourcePath string, chunkChars int) ([]api.Chunk, error) {
	if chunkChars <= 0 {
		chunkChars = DefaultChunkChars
	}
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", sourcePath, err)
	}

	title := firstText(doc, "//korttittel", "//tittel", "//title")
	refID := ""
	if n := xmlquery.FindOne(doc, "//*[@id]"); n != nil {
		refID = n.SelectAttr("id")
	}
	if refID == "" {
		refID = strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	}

	paragraphs := collectParagraphs(doc)
	if len(paragraphs) == 0 {
		return nil, nil
	}

	var chunks []api.Chunk
	var buf strings.Builder
	flush := func() {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		if text == "" {
			return
		}
		chunks = append(chunks, api.Chunk{
			RefID:      refID,
			Title:      title,
			SourcePath: sourcePath,
			Content:    text,
		})
	}
	for _, p := range paragraphs {
		if buf.Len() > 0 && buf.Len()+len(p) > chunkChars {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(p)
	}
	flush()
	return chunks, nil
}

// collectParagraphs extracts prose-bearing elements; Lovdata documents use
// ledd/avsnitt, generic ones use p.
func collectParagraphs(doc *xmlquery.Node) []string {
	nodes := xmlquery.Find(doc, "//ledd|//avsnitt|//p")
	var out []string
	for _, n := range nodes {
		if t := strings.TrimSpace(collapseSpace(n.InnerText())); t != "" {
			out = append(out, t)
		}
	}
	if len(out) > 0 {
		return out
	}
	// No known structure; fall back to the whole document text.
	if t := strings.TrimSpace(collapseSpace(doc.InnerText())); t != "" {
		return []string{t}
	}
	return nil
}

func firstText(doc *xmlquery.Node, exprs ...string) string {
	for _, expr := range exprs {
		if n := xmlquery.FindOne(doc, expr); n != nil {
			if t := strings.TrimSpace(collapseSpace(n.InnerText())); t != "" {
				return t
			}
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// WalkDocuments parses every .xml file under root and returns the combined
// chunks. Unparseable files are skipped with their error collected into errs.
func WalkDocuments(root string, chunkChars int) ([]api.Chunk, []error) {
	var chunks []api.Chunk
	var errs []error
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		cs, err := ParseDocument(f, filepath.ToSlash(rel), chunkChars)
		_ = f.Close()
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		chunks = append(chunks, cs...)
		return nil
	})
	return chunks, errs
}
