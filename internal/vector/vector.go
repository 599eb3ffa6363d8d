package vector

import (
	"fmt"
	"math"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value in [-1, 1]; zero vectors yield 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if err := CheckDims(a, b); err != nil {
		return 0, err
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// CheckDims verifies both vectors share the same non-zero dimensionality.
func CheckDims(a, b []float32) error {
	if len(a) == 0 || len(b) == 0 {
		return fmt.Errorf("empty vector: len(a)=%d len(b)=%d", len(a), len(b))
	}
	if len(a) != len(b) {
		return fmt.Errorf("vector dimensions mismatch: %d vs %d", len(a), len(b))
	}
	return nil
}
