package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvernberg/lovchat/pkg/api"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "lovchat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.PutChunks(ctx, testChunks()))

	got, err := s.ListChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, testChunks(), got)

	n, err := s.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStoreUpsertByHashIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.PutChunks(ctx, testChunks()))
	require.NoError(t, s.PutChunks(ctx, testChunks()))

	n, err := s.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStoreDocumentsAggregation(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	chunks := testChunks()
	chunks = append(chunks, api.Chunk{RefID: "lov-a", Title: "Arbeidsmiljøloven", Content: "Kapittel to."})
	require.NoError(t, s.PutChunks(ctx, chunks))

	docs, err := s.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "Arbeidsmiljøloven", docs[0].Title)
	assert.Equal(t, 2, docs[0].Chunks)
}

func TestStoreImportFromMergesByHash(t *testing.T) {
	ctx := context.Background()

	srcPath := filepath.Join(t.TempDir(), "prebuilt.db")
	src, err := OpenStore(ctx, srcPath)
	require.NoError(t, err)
	chunks := testChunks()
	chunks = append(chunks, api.Chunk{RefID: "lov-x", Title: "Ekstraloven", Content: "Ny paragraf."})
	require.NoError(t, src.PutChunks(ctx, chunks))
	require.NoError(t, src.Close())

	dst := openTestStore(t)
	// One overlapping chunk; only the three others are new.
	require.NoError(t, dst.PutChunk(ctx, testChunks()[0]))

	n, err := dst.ImportFrom(ctx, srcPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	total, err := dst.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestStoreImportFromMissingFile(t *testing.T) {
	dst := openTestStore(t)
	_, err := dst.ImportFrom(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
}

func TestStoreWipe(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.PutChunks(ctx, testChunks()))
	require.NoError(t, s.Wipe(ctx))
	n, err := s.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
