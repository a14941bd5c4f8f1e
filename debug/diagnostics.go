// Package debug surfaces data-integrity warnings and read-only collision snapshots
package debug

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/status"
)

// Kind classifies a recoverable per-entity problem
type Kind uint8

const (
	KindMissingCollider Kind = iota
	KindMissingTransform
	KindMissingVelocity
	KindDegenerateNormal
	KindDegenerateCapsule
	KindPenetration
	kindCount
)

var kindNames = [kindCount]string{
	KindMissingCollider:   "missing collider",
	KindMissingTransform:  "missing transform",
	KindMissingVelocity:   "missing velocity",
	KindDegenerateNormal:  "zero-length penetration normal",
	KindDegenerateCapsule: "zero-length capsule axis",
	KindPenetration:       "residual penetration",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

type episodeKey struct {
	kind   Kind
	entity core.Entity
}

// Diagnostics counts every occurrence and logs once per episode
// An episode is a run of consecutive ticks in which the same entity reports the same kind
type Diagnostics struct {
	logger *log.Logger

	tick     uint64
	lastSeen map[episodeKey]uint64

	counters [kindCount]*atomic.Int64
	logged   atomic.Int64
}

// NewDiagnostics creates a reporter writing to logger, or the standard logger when nil
func NewDiagnostics(reg *status.Registry, logger *log.Logger) *Diagnostics {
	if logger == nil {
		logger = log.Default()
	}
	d := &Diagnostics{
		logger:   logger,
		lastSeen: make(map[episodeKey]uint64),
	}
	missing := reg.Counter(status.KeyMissingComponent)
	degenerate := reg.Counter(status.KeyDegenerate)
	d.counters[KindMissingCollider] = missing
	d.counters[KindMissingTransform] = missing
	d.counters[KindMissingVelocity] = missing
	d.counters[KindDegenerateNormal] = degenerate
	d.counters[KindDegenerateCapsule] = degenerate
	d.counters[KindPenetration] = reg.Counter(status.KeyPenetration)
	return d
}

// BeginTick advances the episode clock and forgets episodes that ended
// Repeated calls within one tick are no-ops
func (d *Diagnostics) BeginTick(tick uint64) {
	if tick == d.tick {
		return
	}
	d.tick = tick
	for k, last := range d.lastSeen {
		if last+1 < tick {
			delete(d.lastSeen, k)
		}
	}
}

// Report records one occurrence; err carries the wrapped sentinel for the log line
// Returns true when this occurrence opened a new episode and was logged
func (d *Diagnostics) Report(kind Kind, e core.Entity, err error) bool {
	if kind < kindCount {
		d.counters[kind].Add(1)
	}

	key := episodeKey{kind: kind, entity: e}
	last, seen := d.lastSeen[key]
	d.lastSeen[key] = d.tick
	if seen && last+1 >= d.tick {
		return false
	}

	d.logged.Add(1)
	if err != nil {
		d.logger.Printf("[INTEGRITY] tick %d %s: %s: %v", d.tick, e, kind, err)
	} else {
		d.logger.Printf("[INTEGRITY] tick %d %s: %s", d.tick, e, kind)
	}
	return true
}

// Logged returns how many episodes were logged
func (d *Diagnostics) Logged() int64 {
	return d.logged.Load()
}
