// Package present renders answers and document listings for the CLI in
// plain, pretty (terminal markdown) and JSON modes.
package present

import (
	"io"

	"github.com/kvernberg/lovchat/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
)

type Options struct {
	Mode         Mode
	JSONIndent   bool
	Headers      bool
	Style        string // glamour style for pretty mode
	WordWrap     int
	ShowContexts bool
}

// ParseMode parses a string like "plain", "pretty", "json".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	default:
		return ModePretty, false
	}
}

// RenderAnswer renders one answer according to options.
func RenderAnswer(w io.Writer, a api.Answer, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return writeJSONAnswer(w, a, opts.JSONIndent)
	case ModePretty:
		return writePrettyAnswer(w, a, opts)
	default:
		return writePlainAnswer(w, a, opts.ShowContexts)
	}
}

// RenderDocuments renders the indexed document listing.
func RenderDocuments(w io.Writer, docs []api.DocumentInfo, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return writeJSONDocuments(w, docs, opts.JSONIndent)
	default:
		return writePlainDocuments(w, docs, opts.Headers)
	}
}
