package memory

import (
	"context"
	"sort"
	"sync"
	"time"
)

// VectorStore is the contract for long-term memory backends.
type VectorStore interface {
	StoreMemory(ctx context.Context, rec Record) error
	SearchMemory(ctx context.Context, queryEmbedding []float32, limit int) ([]Record, error)
	Count(ctx context.Context) (int, error)
}

// InMemoryStore implements VectorStore for single-run crews and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[int64]Record)}
}

func (s *InMemoryStore) StoreMemory(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = s.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.Embedding = append([]float32(nil), rec.Embedding...)
	s.records[rec.ID] = rec
	return nil
}

func (s *InMemoryStore) SearchMemory(_ context.Context, queryEmbedding []float32, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		return nil, nil
	}
	scored := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		rec.Score = cosineSimilarity(queryEmbedding, rec.Embedding)
		scored = append(scored, rec)
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

var _ VectorStore = (*InMemoryStore)(nil)
