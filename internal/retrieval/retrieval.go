// Package retrieval selects the most relevant stored document for a query
// vector. The current implementation is a linear scan over unnormalized
// dot products; Index is an interface so an approximate-nearest-neighbor
// structure can replace it without touching callers.
package retrieval

// Document is one indexed text with its embedding vector.
type Document struct {
	ID     uint
	Text   string
	Vector []float32
}

// Index finds the best-matching document for a query vector.
type Index interface {
	Add(doc Document)
	Len() int
	// Best returns the document with the highest similarity to the query,
	// or false when the index is empty.
	Best(query []float32) (Document, bool)
}

// LinearIndex is an exhaustive dot-product scan. O(N*D) per query with no
// caching; fine for the small per-user document counts we see.
type LinearIndex struct {
	docs []Document
}

// NewLinearIndex builds an index over the given documents.
func NewLinearIndex(docs []Document) *LinearIndex {
	return &LinearIndex{docs: docs}
}

func (i *LinearIndex) Add(doc Document) {
	i.docs = append(i.docs, doc)
}

func (i *LinearIndex) Len() int {
	return len(i.docs)
}

// Best scans all documents and keeps the maximum dot product. The comparison
// is a strict greater-than, so on ties the first-seen document wins. A
// single-document index always returns that document regardless of score.
func (i *LinearIndex) Best(query []float32) (Document, bool) {
	if len(i.docs) == 0 {
		return Document{}, false
	}

	best := i.docs[0]
	bestScore := float32(0)
	first := true

	for _, doc := range i.docs {
		score := dotProduct(doc.Vector, query)
		if first || score > bestScore {
			bestScore = score
			best = doc
			first = false
		}
	}

	return best, true
}

// dotProduct is the unnormalized inner product. No cosine normalization is
// applied here; whatever normalization exists comes from the embedding model
// at encode time. Trailing components of the longer vector are ignored when
// dimensions disagree.
func dotProduct(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
