package index

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/kvernberg/lovchat/pkg/api"
)

// Index is an in-memory TF-IDF vector index over chunks: lowercase word
// tokens, unigrams and bigrams, a document-frequency-capped vocabulary and
// l2-normalized vectors queried by cosine similarity. It is immutable after
// Build and safe for concurrent queries.
type Index struct {
	chunks []api.Chunk
	vocab  map[string]int
	idf    []float64
	// docs[i] holds the sparse normalized vector of chunks[i].
	docs []map[int]float64
}

// DefaultMaxFeatures caps the vocabulary when the caller passes 0.
const DefaultMaxFeatures = 50000

// Build constructs the index. maxFeatures keeps only the most frequent terms
// across the corpus; 0 means DefaultMaxFeatures.
func Build(chunks []api.Chunk, maxFeatures int) *Index {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	tokenized := make([][]string, len(chunks))
	df := make(map[string]int)
	corpusCount := make(map[string]int)
	for i, c := range chunks {
		terms := ngrams(tokenize(c.Content))
		tokenized[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			corpusCount[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	vocab := buildVocab(corpusCount, maxFeatures)

	n := len(chunks)
	idf := make([]float64, len(vocab))
	for term, col := range vocab {
		// Smoothed idf as in the usual TF-IDF formulation.
		idf[col] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	docs := make([]map[int]float64, n)
	for i, terms := range tokenized {
		docs[i] = vectorize(terms, vocab, idf)
	}

	return &Index{chunks: chunks, vocab: vocab, idf: idf, docs: docs}
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.chunks) }

// Search returns the topK chunks most similar to the query, best first.
// Zero-similarity chunks are skipped.
func (ix *Index) Search(query string, topK int) []api.RetrievalResult {
	if ix == nil || len(ix.docs) == 0 || topK <= 0 {
		return nil
	}
	qv := vectorize(ngrams(tokenize(query)), ix.vocab, ix.idf)
	if len(qv) == 0 {
		return nil
	}

	results := make([]api.RetrievalResult, 0, len(ix.docs))
	for i, dv := range ix.docs {
		if score := dot(qv, dv); score > 0 {
			results = append(results, api.RetrievalResult{Score: score, Chunk: ix.chunks[i]})
		}
	}
	sort.SliceStable(results, func(a, b int) bool { return results[a].Score > results[b].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// Titles returns the distinct document titles, for shell completion.
func (ix *Index) Titles() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range ix.chunks {
		if _, ok := seen[c.Title]; ok || c.Title == "" {
			continue
		}
		seen[c.Title] = struct{}{}
		out = append(out, c.Title)
	}
	sort.Strings(out)
	return out
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ngrams returns the unigrams plus space-joined bigrams of tokens.
func ngrams(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens)*2-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// buildVocab keeps the maxFeatures most frequent terms, ties broken
// lexicographically for determinism.
func buildVocab(counts map[string]int, maxFeatures int) map[string]int {
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(a, b int) bool {
		if counts[terms[a]] != counts[terms[b]] {
			return counts[terms[a]] > counts[terms[b]]
		}
		return terms[a] < terms[b]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

// vectorize builds the l2-normalized tf-idf vector of terms.
func vectorize(terms []string, vocab map[string]int, idf []float64) map[int]float64 {
	tf := make(map[int]float64)
	for _, t := range terms {
		if col, ok := vocab[t]; ok {
			tf[col]++
		}
	}
	if len(tf) == 0 {
		return nil
	}
	var norm float64
	for col := range tf {
		tf[col] *= idf[col]
		norm += tf[col] * tf[col]
	}
	norm = math.Sqrt(norm)
	for col := range tf {
		tf[col] /= norm
	}
	return tf
}

// dot computes cosine similarity of two normalized sparse vectors, iterating
// the smaller one.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for col, av := range a {
		if bv, ok := b[col]; ok {
			sum += av * bv
		}
	}
	return sum
}
