package memory

import (
	"context"
	"strings"
	"sync"
	"time"
)

// SessionMemory layers a bounded short-term buffer over a VectorStore.
// Everything the crew says during a run lands in the short-term buffer and is
// flushed to the store when the run ends.
type SessionMemory struct {
	store         VectorStore
	mu            sync.RWMutex
	shortTerm     map[string][]Record
	shortTermSize int
}

func NewSessionMemory(store VectorStore, shortTermSize int) *SessionMemory {
	if store == nil {
		store = NewInMemoryStore()
	}
	if shortTermSize <= 0 {
		shortTermSize = 32
	}
	return &SessionMemory{
		store:         store,
		shortTerm:     make(map[string][]Record),
		shortTermSize: shortTermSize,
	}
}

// Add records one exchange in the session's short-term buffer.
func (sm *SessionMemory) Add(sessionID, role, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	rec := Record{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Embedding: Embedding(content),
		CreatedAt: time.Now().UTC(),
	}
	sm.shortTerm[sessionID] = append(sm.shortTerm[sessionID], rec)
	if len(sm.shortTerm[sessionID]) > sm.shortTermSize {
		sm.shortTerm[sessionID] = sm.shortTerm[sessionID][len(sm.shortTerm[sessionID])-sm.shortTermSize:]
	}
}

// RetrieveContext returns short-term records followed by the most similar
// long-term records for the query.
func (sm *SessionMemory) RetrieveContext(ctx context.Context, sessionID, query string, limit int) ([]Record, error) {
	longTerm, err := sm.store.SearchMemory(ctx, Embedding(query), limit)
	if err != nil {
		return nil, err
	}

	sm.mu.RLock()
	shortTerm := append([]Record(nil), sm.shortTerm[sessionID]...)
	sm.mu.RUnlock()

	return append(shortTerm, longTerm...), nil
}

// FlushToLongTerm writes the session's short-term buffer to the store and
// clears it.
func (sm *SessionMemory) FlushToLongTerm(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for _, rec := range sm.shortTerm[sessionID] {
		if err := sm.store.StoreMemory(ctx, rec); err != nil {
			return err
		}
	}
	delete(sm.shortTerm, sessionID)
	return nil
}

// Store exposes the long-term backend.
func (sm *SessionMemory) Store() VectorStore { return sm.store }
