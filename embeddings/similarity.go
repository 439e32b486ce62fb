package embeddings

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch reports vectors of unequal length passed to
// CosineSimilarity. This is a programmer error and fails fast instead of
// silently truncating to the shorter vector.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// CosineSimilarity returns dot(a,b) / (|a|*|b|), in [-1, 1]. When either
// vector has zero magnitude the result is NaN; NaN compares false against
// any threshold, so a plain >= filter drops such results.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
