// Package audio plays short cues for collision and contact events
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/arena/event"
)

const (
	sampleRate = beep.SampleRate(48000)

	// cueCooldown is the minimum tick gap between two plays of the same cue
	cueCooldown = 6
)

// Cue identifies a sound effect
type Cue uint8

const (
	CueBump Cue = iota
	CueContact
	CueTrigger

	cueCount
)

// Stream builds a fresh, finite streamer for the cue
func (c Cue) Stream(volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueBump:
		s = beep.Take(sampleRate.N(90*time.Millisecond), NewThudGenerator(sampleRate, 140, 0.03))
	case CueContact:
		sine, err := generators.SineTone(sampleRate, 440)
		if err != nil {
			return beep.Silence(0)
		}
		s = beep.Take(sampleRate.N(60*time.Millisecond), sine)
	case CueTrigger:
		s = beep.Take(sampleRate.N(400*time.Millisecond), NewChimeGenerator(sampleRate, 660))
	default:
		return beep.Silence(0)
	}
	return newVolume(s, volume)
}

// SoundManager turns blocked and contact events into rate-limited cues
// Implements engine.EventHandler; playback is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool

	lastTick [cueCount]uint64
	played   [cueCount]bool

	// sink receives cue streamers, the speaker mixer unless overridden in tests
	sink func(beep.Streamer)
}

// NewSoundManager creates a manager playing at volume in [0,1]
func NewSoundManager(volume float64) *SoundManager {
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
	sm.sink = func(s beep.Streamer) {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
	return sm
}

// Initialize opens the audio device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences pending cues and closes the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play queues cue unless the same cue played within cueCooldown ticks of tick
// Returns whether the cue was queued
func (sm *SoundManager) Play(cue Cue, tick uint64) bool {
	if cue >= cueCount {
		return false
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	if sm.played[cue] && tick < sm.lastTick[cue]+cueCooldown {
		return false
	}
	sm.played[cue] = true
	sm.lastTick[cue] = tick
	sm.sink(cue.Stream(sm.volume))
	return true
}

// EventTypes returns event types this handler processes
func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{event.EventActorBlocked, event.EventActorContact}
}

// HandleEvent processes events
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventActorBlocked:
		sm.Play(CueBump, ev.Tick)
	case event.EventActorContact:
		if p, ok := ev.Payload.(*event.ContactPayload); ok && p.Trigger {
			sm.Play(CueTrigger, ev.Tick)
			return
		}
		sm.Play(CueContact, ev.Tick)
	}
}
