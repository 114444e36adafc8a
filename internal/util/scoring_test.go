package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCompletions(t *testing.T) {
	candidates := []string{"Ferieloven", "Vegtrafikkloven", "Arbeidsmiljøloven"}

	assert.Equal(t, candidates, ScoreCompletions("", candidates, 0), "empty input returns all")

	got := ScoreCompletions("ferie", candidates, 0)
	assert.Equal(t, []string{"Ferieloven"}, got)

	got = ScoreCompletions("loven", candidates, 2)
	assert.Len(t, got, 2)

	assert.Nil(t, ScoreCompletions("zzzz", candidates, 0))
}
