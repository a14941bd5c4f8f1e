package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 metric stored as its IEEE-754 bits; the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *Gauge) Load() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Max raises the gauge to v when v is larger; the running peak of a series
func (g *Gauge) Max(v float64) {
	for old := g.bits.Load(); math.Float64frombits(old) < v; old = g.bits.Load() {
		if g.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}
