package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestEmptyIndex(t *testing.T) {
	idx := NewLinearIndex(nil)

	_, ok := idx.Best([]float32{1, 0})
	assert.False(t, ok)
}

func TestBestSingleDocumentAlwaysWins(t *testing.T) {
	idx := NewLinearIndex([]Document{
		{ID: 1, Text: "only doc", Vector: []float32{0, 0}},
	})

	// Even with a zero similarity score the single document is returned.
	doc, ok := idx.Best([]float32{1, 1})
	require.True(t, ok)
	assert.Equal(t, uint(1), doc.ID)
}

func TestBestPicksHighestDotProduct(t *testing.T) {
	idx := NewLinearIndex([]Document{
		{ID: 1, Text: "aligned", Vector: []float32{1, 0}},
		{ID: 2, Text: "orthogonal", Vector: []float32{0, 1}},
	})

	doc, ok := idx.Best([]float32{1, 0})
	require.True(t, ok)
	assert.Equal(t, uint(1), doc.ID, "dot products are 1 and 0, first doc must win")
}

func TestBestTieBreakFirstSeen(t *testing.T) {
	idx := NewLinearIndex([]Document{
		{ID: 1, Text: "first", Vector: []float32{1, 0}},
		{ID: 2, Text: "equal score", Vector: []float32{1, 0}},
	})

	doc, ok := idx.Best([]float32{1, 0})
	require.True(t, ok)
	assert.Equal(t, uint(1), doc.ID, "a later equal-scoring document must not replace the current best")
}

func TestBestNegativeScores(t *testing.T) {
	idx := NewLinearIndex(nil)
	idx.Add(Document{ID: 1, Vector: []float32{-1, 0}})
	idx.Add(Document{ID: 2, Vector: []float32{-0.5, 0}})

	doc, ok := idx.Best([]float32{1, 0})
	require.True(t, ok)
	assert.Equal(t, uint(2), doc.ID, "less negative dot product wins")
}

func TestDotProductMismatchedDimensions(t *testing.T) {
	assert.InDelta(t, 2.0, float64(dotProduct([]float32{1, 1, 5}, []float32{1, 1})), 1e-6)
}
