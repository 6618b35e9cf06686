package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

// sweep plays a tone gliding from f0 to f1 with a linear fade out.
type sweep struct {
	f0, f1 float64
	amp    float64
	wave   wave
	total  int
	pos    int
	phase  float64
	rng    *rand.Rand
}

func newSweep(f0, f1 float64, d time.Duration, w wave, amp float64) *sweep {
	return &sweep{
		f0:    f0,
		f1:    f1,
		amp:   amp,
		wave:  w,
		total: sampleRate.N(d),
		rng:   rand.New(rand.NewPCG(1, 2)),
	}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.f0 + (s.f1-s.f0)*t

		var v float64
		switch s.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case waveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case waveNoise:
			v = s.rng.Float64()*2 - 1
		}
		v *= s.amp * (1 - t)

		samples[i][0] = v
		samples[i][1] = v
		s.phase += freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// synthesize stands in for a missing effect file.
func synthesize(name string) beep.Streamer {
	switch name {
	case Jump:
		return newSweep(300, 720, 120*time.Millisecond, waveSquare, 0.25)
	case Dash:
		return newSweep(0, 0, 220*time.Millisecond, waveNoise, 0.35)
	case Hit:
		return beep.Mix(
			newSweep(140, 60, 260*time.Millisecond, waveSquare, 0.3),
			newSweep(0, 0, 180*time.Millisecond, waveNoise, 0.3),
		)
	case Shoot:
		return newSweep(900, 300, 90*time.Millisecond, waveSine, 0.4)
	case Ambience:
		return newSweep(0, 0, 3*time.Second, waveNoise, 0.05)
	}
	return newSweep(440, 440, 50*time.Millisecond, waveSine, 0.2)
}

// arpeggio is the fallback background track: a short minor phrase.
func arpeggio() beep.Streamer {
	notes := []float64{220, 261.63, 329.63, 261.63, 196, 246.94, 293.66, 246.94}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		parts = append(parts, newSweep(f, f, 400*time.Millisecond, waveSine, 0.15))
	}
	return beep.Seq(parts...)
}
