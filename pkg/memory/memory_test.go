package memory

import (
	"context"
	"fmt"
	"testing"
)

func TestInMemoryStoreRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	contents := []string{
		"the customer asked about crew memory",
		"unrelated note about invoices",
		"memory can be added to a crew via the memory flag",
	}
	for _, c := range contents {
		if err := store.StoreMemory(ctx, Record{SessionID: "s1", Content: c, Embedding: Embedding(c)}); err != nil {
			t.Fatalf("StoreMemory: %v", err)
		}
	}

	got, err := store.SearchMemory(ctx, Embedding("the customer asked about crew memory"), 1)
	if err != nil {
		t.Fatalf("SearchMemory: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 record, got %d", len(got))
	}
	if got[0].Content != contents[0] {
		t.Fatalf("top match %q, want %q", got[0].Content, contents[0])
	}
}

func TestSearchMemoryZeroLimit(t *testing.T) {
	store := NewInMemoryStore()
	got, err := store.SearchMemory(context.Background(), Embedding("x"), 0)
	if err != nil || got != nil {
		t.Fatalf("want nil, nil for zero limit; got %v, %v", got, err)
	}
}

func TestShortTermBufferIsBounded(t *testing.T) {
	sm := NewSessionMemory(NewInMemoryStore(), 3)
	for i := 0; i < 10; i++ {
		sm.Add("s1", "user", fmt.Sprintf("message %d", i))
	}
	records, err := sm.RetrieveContext(context.Background(), "s1", "message", 0)
	if err != nil {
		t.Fatalf("RetrieveContext: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("short-term buffer has %d records, want 3", len(records))
	}
	if records[0].Content != "message 7" {
		t.Fatalf("oldest retained record %q, want %q", records[0].Content, "message 7")
	}
}

func TestFlushToLongTerm(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	sm := NewSessionMemory(store, 8)

	sm.Add("s1", "user", "what is the refund policy?")
	sm.Add("s1", "assistant", "the refund policy allows 30 days")
	sm.Add("s1", "assistant", "") // blank content must be dropped

	if err := sm.FlushToLongTerm(ctx, "s1"); err != nil {
		t.Fatalf("FlushToLongTerm: %v", err)
	}
	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("store holds %d records after flush, want 2", n)
	}

	// Buffer is cleared; retrieval now comes only from the store.
	records, err := sm.RetrieveContext(ctx, "s1", "refund", 10)
	if err != nil {
		t.Fatalf("RetrieveContext: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("post-flush retrieval returned %d records, want 2", len(records))
	}
}

func TestVectorLiteralRoundTrip(t *testing.T) {
	vec := []float32{0.5, -1, 0.25}
	got := parseVector(vectorLiteral(vec))
	if len(got) != len(vec) {
		t.Fatalf("round trip length %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], vec[i])
		}
	}
}

func TestEmbeddingDeterministic(t *testing.T) {
	a := Embedding("same text")
	b := Embedding("same text")
	if cosineSimilarity(a, b) < 0.999 {
		t.Fatal("identical text should embed identically")
	}
	if len(a) != embeddingDim {
		t.Fatalf("embedding length %d, want %d", len(a), embeddingDim)
	}
}
