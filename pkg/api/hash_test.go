package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk_Hash(t *testing.T) {
	base := Chunk{
		RefID:      "lov-1902-05-22-10",
		Title:      "Straffeloven",
		SourcePath: "lover/nl-1902.xml",
		Content:    "Den som overtrer ...",
	}

	t.Run("identical chunks produce identical hashes", func(t *testing.T) {
		c1 := base
		c2 := base
		assert.Equal(t, c1.Hash(), c2.Hash())
	})

	t.Run("different content produces different hashes", func(t *testing.T) {
		c1 := base
		c2 := base
		c2.Content = "Noe annet."
		c3 := base
		c3.Title = "Annen tittel"
		assert.NotEqual(t, c1.Hash(), c2.Hash())
		assert.NotEqual(t, c1.Hash(), c3.Hash())
	})

	t.Run("field boundaries are unambiguous", func(t *testing.T) {
		c1 := Chunk{RefID: "ab", Title: "c"}
		c2 := Chunk{RefID: "a", Title: "bc"}
		assert.NotEqual(t, c1.Hash(), c2.Hash())
	})
}
