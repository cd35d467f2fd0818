//go:build !integration

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestPool(workers int) *Pool {
	log := zerolog.Nop()
	return NewPool(workers, &log)
}

func TestPoolSequentialOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := newTestPool(1)
	pool.Start(ctx)
	defer pool.Stop()

	var (
		mu   sync.Mutex
		seen []int
	)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		err := pool.Submit(ctx, func(ctx context.Context) error {
			defer wg.Done()
			mu.Lock()
			seen = append(seen, i)
			mu.Unlock()
			return nil
		})
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
	wg.Wait()

	for i, v := range seen {
		if v != i {
			t.Fatalf("width-1 pool ran tasks out of order: %v", seen)
		}
	}
}

func TestPoolSubmit(t *testing.T) {
	t.Run("nil task rejected", func(t *testing.T) {
		pool := newTestPool(1)
		if err := pool.Submit(context.Background(), nil); err == nil {
			t.Fatal("expected error for nil task")
		}
	})

	t.Run("cancelled context unblocks a full queue", func(t *testing.T) {
		// Pool never started, so the queue fills and Submit must wait.
		pool := newTestPool(1)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		noop := func(ctx context.Context) error { return nil }
		var err error
		for i := 0; i < 10; i++ {
			if err = pool.Submit(ctx, noop); err != nil {
				break
			}
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline error from blocked submit, got %v", err)
		}
	})

	t.Run("task errors are contained", func(t *testing.T) {
		ctx := context.Background()
		pool := newTestPool(1)
		pool.Start(ctx)
		defer pool.Stop()

		done := make(chan struct{})
		if err := pool.Submit(ctx, func(ctx context.Context) error {
			return errors.New("boom")
		}); err != nil {
			t.Fatal(err)
		}
		if err := pool.Submit(ctx, func(ctx context.Context) error {
			close(done)
			return nil
		}); err != nil {
			t.Fatal(err)
		}

		select {
		case <-done:
			// Pool kept running after the failing task.
		case <-time.After(time.Second):
			t.Fatal("pool stalled after task error")
		}
	})
}
