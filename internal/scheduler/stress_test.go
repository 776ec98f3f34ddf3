package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Half of the events are parked an hour out and cancelled again, the way
// the rollover watcher re-arms its boundary timer.
func TestEngineConcurrentScheduleAndCancel(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200
	want := workers * perWorker / 2

	now := time.Now()
	var cancelled int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := fmt.Sprintf("w%d-%d", w, i)
				at := now.Add(time.Duration((w+i)%50+10) * time.Millisecond)
				if i%2 == 1 {
					at = now.Add(time.Hour)
				}
				if err := engine.Schedule(Event{ID: id, Kind: KindDayBoundary, At: at}); err != nil {
					t.Errorf("schedule %s: %v", id, err)
					return
				}
				if i%2 == 1 {
					atomic.AddInt64(&cancelled, int64(engine.Cancel(id)))
				}
			}
		}()
	}
	wg.Wait()

	if got := int(atomic.LoadInt64(&cancelled)); got != want {
		t.Fatalf("cancelled %d events, want %d", got, want)
	}

	deadline := time.After(5 * time.Second)
	received := 0
	for received < want {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting events: received=%d want=%d dropped=%d", received, want, engine.Dropped())
		case ev := <-engine.C():
			if ev.Kind != KindDayBoundary {
				t.Fatalf("unexpected kind %q", ev.Kind)
			}
			received++
		}
	}

	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
	if n := engine.Pending(); n != 0 {
		t.Fatalf("expected empty queue, got %d pending", n)
	}
}
