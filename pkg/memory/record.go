// Package memory gives the crew a short-term conversation buffer backed by a
// pluggable long-term vector store.
package memory

import (
	"math"
	"time"
)

const embeddingDim = 256

// Record is one remembered exchange.
type Record struct {
	ID        int64
	SessionID string
	Role      string
	Content   string
	Embedding []float32
	CreatedAt time.Time
	Score     float64
}

// Embedding produces a deterministic local embedding. There is no remote
// embedding call in a single-run crew; retrieval only has to rank a handful
// of conversational records.
func Embedding(text string) []float32 {
	vec := make([]float32, embeddingDim)
	for i, ch := range []byte(text) {
		vec[i%embeddingDim] += float32(ch) / 255.0
	}
	return vec
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
