//go:build soak

package splitter

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var soakWords = []string{
	"pavement", "elephant", "computer", "development", "international",
	"mnemonic", "butterfly", "umbrella", "tomorrow", "hello",
}

// soakLookup answers every fragment with a few records derived from it.
type soakLookup struct {
	failEvery int
	calls     int64
	mu        sync.Mutex
}

func (s *soakLookup) SoundLike(ctx context.Context, word string) ([]association.Record, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	if s.failEvery > 0 && n%int64(s.failEvery) == 0 {
		return nil, errors.New("flaky upstream")
	}
	return []association.Record{
		{Word: word, Score: 100, Frequency: float64(len(word) * 100)},
		{Word: word + "s", Score: 60, Frequency: 12},
	}, nil
}

func (s *soakLookup) Closest(_ context.Context, word string) (*association.Entry, error) {
	return &association.Entry{Word: word}, nil
}

func heapAndGoroutines() (uint64, int) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return m.HeapAlloc, runtime.NumGoroutine()
}

func TestSoakSequential(t *testing.T) {
	for _, iterations := range []int{100, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			engine := NewEngine(association.NewFetcher(&soakLookup{}), fixedSyllables(2), DefaultOptions())

			baseHeap, baseGoroutines := heapAndGoroutines()
			for i := 0; i < iterations; i++ {
				for _, w := range soakWords {
					if _, err := engine.Best(context.Background(), w, 10, true); err != nil {
						t.Fatalf("search %q: %v", w, err)
					}
				}
			}
			heap, goroutines := heapAndGoroutines()

			ops := iterations * len(soakWords)
			perOp := (float64(heap) - float64(baseHeap)) / float64(ops)
			t.Logf("ops=%d heap_delta_per_op=%.2f goroutine_delta=%d", ops, perOp, goroutines-baseGoroutines)

			if perOp > 1000 {
				t.Errorf("heap grows %.2f bytes per search", perOp)
			}
			if goroutines-baseGoroutines > 2 {
				t.Errorf("goroutine leak: %d goroutines left behind", goroutines-baseGoroutines)
			}
		})
	}
}

func TestSoakConcurrentWithFailures(t *testing.T) {
	engine := NewEngine(association.NewFetcher(&soakLookup{failEvery: 97}), fixedSyllables(2),
		Options{MaxConcurrency: 4})

	_, baseGoroutines := heapAndGoroutines()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				_, _ = engine.Best(ctx, soakWords[i%len(soakWords)], 5, true)
				cancel()
			}
		}()
	}
	wg.Wait()

	// Failed searches must not leave fetches running.
	time.Sleep(50 * time.Millisecond)
	_, goroutines := heapAndGoroutines()
	if goroutines-baseGoroutines > 2 {
		t.Errorf("goroutine leak: %d goroutines left behind", goroutines-baseGoroutines)
	}
}
