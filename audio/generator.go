package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// ThudGenerator is a pitched-down sine with an exponential decay, used for wall bumps
type ThudGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64 // Amplitude time constant in seconds
	pos   int
}

// NewThudGenerator creates a thud at freq decaying with time constant decay
func NewThudGenerator(sr beep.SampleRate, freq, decay float64) *ThudGenerator {
	return &ThudGenerator{sr: sr, freq: freq, decay: decay}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Pitch drops by an octave over the decay for a soft impact
		f := g.freq * (0.5 + 0.5*math.Exp(-t/g.decay))
		sample := math.Sin(2*math.Pi*f*t) * math.Exp(-t/g.decay)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}

// ChimeGenerator layers a fundamental and its fifth, used for trigger contacts
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, freq: freq}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.6*math.Sin(2*math.Pi*g.freq*t) + 0.4*math.Sin(2*math.Pi*g.freq*1.5*t)

		// 10ms attack avoids a click at onset
		sample *= math.Min(t/0.01, 1.0) * math.Exp(-t/0.15)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// newVolume scales s linearly; math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
