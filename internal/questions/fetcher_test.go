package questions

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/storage"
)

type countingProvider struct {
	calls   int64
	entered chan struct{}
	gate    chan struct{}
}

func (p *countingProvider) NextQuestion(req storage.QuestionRequest) (*game.Question, error) {
	if atomic.AddInt64(&p.calls, 1) == 1 && p.entered != nil {
		close(p.entered)
	}
	if p.gate != nil {
		<-p.gate
	}
	return &game.Question{Text: "q", Category: req.Category}, nil
}

func TestFetchPassesRequestThrough(t *testing.T) {
	p := &countingProvider{}
	f := NewFetcher(p)

	q, err := f.Fetch("g1", storage.QuestionRequest{Category: "history", Language: "en"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if q == nil || q.Category != "history" {
		t.Fatalf("unexpected question: %+v", q)
	}
	if atomic.LoadInt64(&p.calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", p.calls)
	}
}

func TestFetchDeduplicatesConcurrentLookups(t *testing.T) {
	p := &countingProvider{
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
	f := NewFetcher(p)
	req := storage.QuestionRequest{Category: "history", Language: "en"}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := f.Fetch("g1", req); err != nil {
			t.Errorf("Fetch: %v", err)
		}
	}()
	<-p.entered
	go func() {
		defer wg.Done()
		if _, err := f.Fetch("g1", req); err != nil {
			t.Errorf("Fetch: %v", err)
		}
	}()
	// Give the second call time to join the in-flight lookup.
	time.Sleep(20 * time.Millisecond)
	close(p.gate)
	wg.Wait()

	if got := atomic.LoadInt64(&p.calls); got != 1 {
		t.Fatalf("expected concurrent fetches to share one lookup, got %d", got)
	}
}

func TestFetchSeparatesGames(t *testing.T) {
	p := &countingProvider{}
	f := NewFetcher(p)
	req := storage.QuestionRequest{Category: "history", Language: "en"}

	if _, err := f.Fetch("g1", req); err != nil {
		t.Fatalf("Fetch g1: %v", err)
	}
	if _, err := f.Fetch("g2", req); err != nil {
		t.Fatalf("Fetch g2: %v", err)
	}
	if got := atomic.LoadInt64(&p.calls); got != 2 {
		t.Fatalf("distinct games must not share lookups, got %d calls", got)
	}
}
