package status

import (
	"sync"
	"testing"
)

func TestRegistryCachesPointers(t *testing.T) {
	r := NewRegistry()
	a := r.Counter(KeyTicks)
	b := r.Counter(KeyTicks)
	if a != b {
		t.Fatal("Counter should return the cached pointer")
	}
	a.Add(3)
	if b.Load() != 3 {
		t.Errorf("counter = %d, want 3", b.Load())
	}
}

func TestGaugeMax(t *testing.T) {
	var g Gauge
	g.Max(0.2)
	g.Max(0.1)
	if g.Load() != 0.2 {
		t.Errorf("gauge = %v, want 0.2", g.Load())
	}
	g.Set(0)
	if g.Load() != 0 {
		t.Error("Set should overwrite")
	}
}

func TestGaugeMaxConcurrent(t *testing.T) {
	var g Gauge
	var wg sync.WaitGroup
	for i := 1; i <= 64; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			g.Max(v)
		}(float64(i))
	}
	wg.Wait()
	if g.Load() != 64 {
		t.Errorf("gauge = %v, want 64", g.Load())
	}
}

func TestSamplesSorted(t *testing.T) {
	r := NewRegistry()
	r.Counter("b").Store(2)
	r.Counter("a").Store(1)
	r.Gauge("c").Set(1.5)

	s := r.Samples()
	if len(s) != 3 {
		t.Fatalf("got %d samples", len(s))
	}
	if s[0].Key != "a" || s[1].Key != "b" || s[2].Key != "c" {
		t.Errorf("unexpected order: %+v", s)
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d", r.Len())
	}
	if s[2].Value != "1.5000" {
		t.Errorf("float format = %q", s[2].Value)
	}
}
