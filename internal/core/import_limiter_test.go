package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestImportLimiter_AcquireRelease(t *testing.T) {
	limiter := NewImportLimiter(2, time.Second)
	ctx := t.Context()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	if limiter.Active() != 1 {
		t.Errorf("expected 1 active, got %d", limiter.Active())
	}

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	if limiter.Active() != 2 {
		t.Errorf("expected 2 active, got %d", limiter.Active())
	}

	limiter.Release()
	limiter.Release()
	if limiter.Active() != 0 {
		t.Errorf("expected 0 active, got %d", limiter.Active())
	}
}

func TestImportLimiter_Timeout(t *testing.T) {
	limiter := NewImportLimiter(1, 50*time.Millisecond)
	ctx := t.Context()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	defer limiter.Release()

	start := time.Now()
	err := limiter.Acquire(ctx)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTooManyImports) {
		t.Errorf("expected ErrTooManyImports, got %v", err)
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("timeout returned too quickly: %v", elapsed)
	}
}

func TestImportLimiter_ContextCancel(t *testing.T) {
	limiter := NewImportLimiter(1, 5*time.Second)

	if err := limiter.Acquire(t.Context()); err != nil {
		t.Fatal(err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestImportLimiter_Defaults(t *testing.T) {
	limiter := NewImportLimiter(0, 0)
	if cap(limiter.slots) != DefaultMaxConcurrentImports {
		t.Errorf("slots = %d, want %d", cap(limiter.slots), DefaultMaxConcurrentImports)
	}
	if limiter.maxWait != DefaultImportWait {
		t.Errorf("maxWait = %v, want %v", limiter.maxWait, DefaultImportWait)
	}
}

func TestImportLimiter_Concurrency(t *testing.T) {
	const maxConcurrent = 3
	limiter := NewImportLimiter(maxConcurrent, 2*time.Second)

	var current, peak atomic.Int32
	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(context.Background()); err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			defer limiter.Release()

			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			current.Add(-1)
		}()
	}
	wg.Wait()

	if peak.Load() > maxConcurrent {
		t.Errorf("peak concurrency %d exceeded limit %d", peak.Load(), maxConcurrent)
	}
}

func TestImportLimiter_WaitForDrain(t *testing.T) {
	limiter := NewImportLimiter(1, time.Second)

	if err := limiter.WaitForDrain(t.Context()); err != nil {
		t.Fatalf("idle drain failed: %v", err)
	}

	if err := limiter.Acquire(t.Context()); err != nil {
		t.Fatal(err)
	}
	go func() {
		time.Sleep(30 * time.Millisecond)
		limiter.Release()
	}()
	if err := limiter.WaitForDrain(t.Context()); err != nil {
		t.Errorf("drain failed: %v", err)
	}

	if err := limiter.Acquire(t.Context()); err != nil {
		t.Fatal(err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(t.Context(), 30*time.Millisecond)
	defer cancel()
	if err := limiter.WaitForDrain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}
