package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the chunk content.
// It includes RefID, Title, SourcePath and Content, so re-indexing an
// unchanged corpus is a no-op at the store level.
func (c Chunk) Hash() string {
	h := blake3.New()

	// Null-byte delimiters keep field boundaries unambiguous.
	h.Write([]byte(c.RefID))
	h.Write([]byte{0})

	h.Write([]byte(c.Title))
	h.Write([]byte{0})

	h.Write([]byte(c.SourcePath))
	h.Write([]byte{0})

	h.Write([]byte(c.Content))

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
