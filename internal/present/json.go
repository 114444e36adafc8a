package present

import (
	"encoding/json"
	"io"

	"github.com/kvernberg/lovchat/pkg/api"
)

func writeJSONAnswer(w io.Writer, a api.Answer, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(a)
}

func writeJSONDocuments(w io.Writer, docs []api.DocumentInfo, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(docs)
}
