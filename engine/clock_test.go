package engine

import (
	"testing"
	"time"
)

var (
	_ Clock = SystemClock{}
	_ Clock = (*ManualClock)(nil)
)

func TestSystemClockMonotonic(t *testing.T) {
	var p SystemClock
	t1 := p.Now()
	t2 := p.Now()
	if t2.Before(t1) {
		t.Errorf("clock went backwards: %v then %v", t1, t2)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	if !clock.Now().Equal(start) {
		t.Fatalf("initial time = %v, want %v", clock.Now(), start)
	}

	clock.Advance(16 * time.Millisecond)
	clock.Advance(4 * time.Millisecond)
	if got := clock.Now().Sub(start); got != 20*time.Millisecond {
		t.Errorf("advanced %v, want 20ms", got)
	}

	reset := start.Add(time.Hour)
	clock.Set(reset)
	if !clock.Now().Equal(reset) {
		t.Errorf("Set: got %v, want %v", clock.Now(), reset)
	}

	clock.Set(start.Add(-time.Second))
	if got := clock.Now().Sub(start); got != -time.Second {
		t.Errorf("Set backwards: offset %v, want -1s", got)
	}
}

func TestManualClockConcurrentAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				clock.Advance(time.Millisecond)
				_ = clock.Now()
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	if got := clock.Now().Sub(start); got != 200*time.Millisecond {
		t.Errorf("advanced %v, want 200ms", got)
	}
}
