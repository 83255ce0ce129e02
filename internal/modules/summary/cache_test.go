package summary

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeDocs struct {
	texts map[string]string
	err   error
}

func (f *fakeDocs) DocumentText(_ context.Context, corpusName, documentID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.texts[corpusName+"/"+documentID], nil
}

type fakeGen struct {
	mu      sync.Mutex
	calls   atomic.Int64
	block   chan struct{}
	err     error
	results []string
}

func (f *fakeGen) Generate(_ context.Context, text string) (string, error) {
	n := f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.results) > 0 {
		idx := int(n) - 1
		if idx >= len(f.results) {
			idx = len(f.results) - 1
		}
		return f.results[idx], nil
	}
	return "summary of: " + text, nil
}

func newTestCache(gen Generator, ttl time.Duration) *Cache {
	docs := &fakeDocs{texts: map[string]string{
		"corpus/doc1": "document one text",
		"corpus/doc2": "document two text",
	}}
	return NewCache(docs, gen, ttl, nil)
}

func TestGetSummaryCachesResult(t *testing.T) {
	gen := &fakeGen{}
	c := newTestCache(gen, time.Hour)

	first, err := c.GetSummary(context.Background(), "corpus", "doc1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.GetSummary(context.Background(), "corpus", "doc1")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("summaries differ: %q vs %q", first, second)
	}
	if got := gen.calls.Load(); got != 1 {
		t.Fatalf("generator called %d times, want 1", got)
	}
}

func TestGetSummaryDistinctKeys(t *testing.T) {
	gen := &fakeGen{}
	c := newTestCache(gen, time.Hour)

	s1, _ := c.GetSummary(context.Background(), "corpus", "doc1")
	s2, _ := c.GetSummary(context.Background(), "corpus", "doc2")
	if s1 == s2 {
		t.Fatalf("different documents produced identical summaries: %q", s1)
	}
	if got := gen.calls.Load(); got != 2 {
		t.Fatalf("generator called %d times, want 2", got)
	}
}

func TestGetSummarySingleFlight(t *testing.T) {
	gen := &fakeGen{block: make(chan struct{})}
	c := newTestCache(gen, time.Hour)

	const waiters = 16
	results := make([]string, waiters)
	errs := make([]error, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetSummary(context.Background(), "corpus", "doc1")
		}(i)
	}

	// Wait until at least one goroutine reached the generator, then give the
	// rest a moment to pile onto the same flight.
	deadline := time.Now().Add(time.Second)
	for gen.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(gen.block)
	wg.Wait()

	if got := gen.calls.Load(); got != 1 {
		t.Fatalf("generator called %d times for concurrent requests, want 1", got)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Fatalf("waiter %d: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatalf("waiter %d saw %q, waiter 0 saw %q", i, results[i], results[0])
		}
	}
}

func TestGetSummaryFailureNotCached(t *testing.T) {
	genErr := errors.New("generation failed")
	gen := &fakeGen{err: genErr}
	c := newTestCache(gen, time.Hour)

	if _, err := c.GetSummary(context.Background(), "corpus", "doc1"); !errors.Is(err, genErr) {
		t.Fatalf("err = %v, want the generator failure", err)
	}
	if c.Len() != 0 {
		t.Fatalf("failure was cached: %d entries", c.Len())
	}

	// Retry succeeds once the generator recovers.
	gen.err = nil
	s, err := c.GetSummary(context.Background(), "corpus", "doc1")
	if err != nil {
		t.Fatal(err)
	}
	if s == "" {
		t.Fatal("empty summary after recovery")
	}
	if got := gen.calls.Load(); got != 2 {
		t.Fatalf("generator called %d times, want 2 (failure then retry)", got)
	}
}

func TestGetSummaryDocumentErrorPropagates(t *testing.T) {
	docErr := errors.New("document not found")
	c := NewCache(&fakeDocs{err: docErr}, &fakeGen{}, time.Hour, nil)

	if _, err := c.GetSummary(context.Background(), "corpus", "missing"); !errors.Is(err, docErr) {
		t.Fatalf("err = %v, want document error", err)
	}
}

func TestGetSummaryExpiryRegenerates(t *testing.T) {
	gen := &fakeGen{results: []string{"first", "second"}}
	c := newTestCache(gen, 20*time.Millisecond)

	s, err := c.GetSummary(context.Background(), "corpus", "doc1")
	if err != nil {
		t.Fatal(err)
	}
	if s != "first" {
		t.Fatalf("summary = %q", s)
	}

	time.Sleep(40 * time.Millisecond)

	s, err = c.GetSummary(context.Background(), "corpus", "doc1")
	if err != nil {
		t.Fatal(err)
	}
	if s != "second" {
		t.Fatalf("expired entry not regenerated, got %q", s)
	}
	if got := gen.calls.Load(); got != 2 {
		t.Fatalf("generator called %d times, want 2", got)
	}
}

func TestGetSummarySurvivesCallerCancellation(t *testing.T) {
	gen := &fakeGen{}
	c := newTestCache(gen, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Generation runs detached from the request context; an already-cancelled
	// caller still gets a summary.
	s, err := c.GetSummary(ctx, "corpus", "doc1")
	if err != nil {
		t.Fatal(err)
	}
	if s == "" {
		t.Fatal("empty summary")
	}
}

func TestRemoveExpired(t *testing.T) {
	gen := &fakeGen{}
	c := newTestCache(gen, 20*time.Millisecond)

	for i, id := range []string{"doc1", "doc2"} {
		if _, err := c.GetSummary(context.Background(), "corpus", id); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}

	time.Sleep(40 * time.Millisecond)
	if err := c.RemoveExpired(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d after sweep, want 0", c.Len())
	}
}

func TestRemoveExpiredKeepsLiveEntries(t *testing.T) {
	gen := &fakeGen{}
	c := newTestCache(gen, time.Hour)

	if _, err := c.GetSummary(context.Background(), "corpus", "doc1"); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveExpired(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("live entry swept: len = %d", c.Len())
	}
	if got := gen.calls.Load(); got != 1 {
		t.Fatalf("generator called %d times, want 1", got)
	}
}

func TestCacheKeyScopedByCorpus(t *testing.T) {
	gen := &fakeGen{}
	docs := &fakeDocs{texts: map[string]string{
		"corpusA/doc1": "text a",
		"corpusB/doc1": "text b",
	}}
	c := NewCache(docs, gen, time.Hour, nil)

	sa, _ := c.GetSummary(context.Background(), "corpusA", "doc1")
	sb, _ := c.GetSummary(context.Background(), "corpusB", "doc1")
	if sa == sb {
		t.Fatalf("same id in different corpora must not share a cache entry: %q", sa)
	}
}
