package player

import (
	"sync"
	"testing"
	"time"

	tu "github.com/desertthunder/amp/internal/testing"
)

func TestSampler(t *testing.T) {
	t.Run("publishes readings while running", func(t *testing.T) {
		mock := &tu.MockPlayer{Position: 12.5, Dur: 200}

		var mu sync.Mutex
		var samples []Sample
		s := NewSampler(mock, 5*time.Millisecond, func() uint64 { return 7 }, func(sm Sample) {
			mu.Lock()
			defer mu.Unlock()
			samples = append(samples, sm)
		})

		s.Start()
		time.Sleep(40 * time.Millisecond)
		s.Stop()

		mu.Lock()
		defer mu.Unlock()
		if len(samples) == 0 {
			t.Fatal("expected at least one sample")
		}
		got := samples[0]
		if got.Position != 12.5 || got.Duration != 200 || got.Epoch != 7 {
			t.Errorf("sample = %+v", got)
		}
	})

	t.Run("duplicate start does not stack timers", func(t *testing.T) {
		mock := &tu.MockPlayer{}

		var mu sync.Mutex
		count := 0
		s := NewSampler(mock, 10*time.Millisecond, func() uint64 { return 0 }, func(Sample) {
			mu.Lock()
			defer mu.Unlock()
			count++
		})

		s.Start()
		s.Start()
		s.Start()
		time.Sleep(55 * time.Millisecond)
		s.Stop()

		mu.Lock()
		defer mu.Unlock()
		// One timer over ~55ms at 10ms per tick publishes at most ~6 times;
		// stacked timers would publish a multiple of that.
		if count > 8 {
			t.Errorf("published %d samples, timers appear stacked", count)
		}
	})

	t.Run("stop halts publishing", func(t *testing.T) {
		mock := &tu.MockPlayer{}

		var mu sync.Mutex
		count := 0
		s := NewSampler(mock, 5*time.Millisecond, func() uint64 { return 0 }, func(Sample) {
			mu.Lock()
			defer mu.Unlock()
			count++
		})

		s.Start()
		time.Sleep(20 * time.Millisecond)
		s.Stop()

		mu.Lock()
		settled := count
		mu.Unlock()

		time.Sleep(30 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		// One in-flight tick may land after Stop.
		if count > settled+1 {
			t.Errorf("sampler kept publishing after Stop: %d -> %d", settled, count)
		}
		if s.Running() {
			t.Error("Running() = true after Stop")
		}
	})

	t.Run("stop when not running is safe", func(t *testing.T) {
		s := NewSampler(&tu.MockPlayer{}, time.Millisecond, func() uint64 { return 0 }, func(Sample) {})
		s.Stop()
		s.Stop()
	})
}
