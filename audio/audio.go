package audio

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Effect names the game plays.
const (
	Jump     = "jump"
	Dash     = "dash"
	Hit      = "hit"
	Shoot    = "shoot"
	Ambience = "ambience"
)

var effectNames = []string{Jump, Dash, Hit, Shoot, Ambience}

// Sink receives streamers to mix into the output. Locked runs fn while the
// output is not reading, which is required before touching a streamer that
// was already added.
type Sink interface {
	Add(s ...beep.Streamer)
	Locked(fn func())
}

type speakerSink struct {
	mixer *beep.Mixer
}

func (s *speakerSink) Add(st ...beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st...)
	speaker.Unlock()
}

func (s *speakerSink) Locked(fn func()) {
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}

// OpenSpeaker initializes the audio device and returns a sink mixing into it.
func OpenSpeaker() (Sink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	return &speakerSink{mixer: mixer}, nil
}

// CloseSpeaker releases the audio device.
func CloseSpeaker() {
	speaker.Close()
}

// Sounds holds decoded sound effects. A nil *Sounds plays nothing.
type Sounds struct {
	sink    Sink
	volumes map[string]float64

	mu      sync.Mutex
	buffers map[string]*beep.Buffer
	loops   []*beep.Ctrl
}

// NewSounds loads <dir>/sfx/<name>.wav for every effect, synthesizing the
// ones that are missing.
func NewSounds(sink Sink, dir string, volumes map[string]float64) *Sounds {
	s := &Sounds{
		sink:    sink,
		volumes: volumes,
		buffers: make(map[string]*beep.Buffer, len(effectNames)),
	}
	for _, name := range effectNames {
		buf, err := loadWAV(filepath.Join(dir, "sfx", name+".wav"))
		if err != nil {
			if dir != "" {
				log.Printf("audio: %s: %v, using synthesized sound", name, err)
			}
			buf = beep.NewBuffer(format)
			buf.Append(synthesize(name))
		}
		s.buffers[name] = buf
	}
	return s
}

// Play starts a one-shot effect.
func (s *Sounds) Play(name string) {
	if s == nil || s.sink == nil {
		return
	}
	buf, ok := s.buffers[name]
	if !ok {
		return
	}
	s.sink.Add(withVolume(buf.Streamer(0, buf.Len()), s.volume(name)))
}

// Loop plays an effect over and over until StopLoops.
func (s *Sounds) Loop(name string) {
	if s == nil || s.sink == nil {
		return
	}
	buf, ok := s.buffers[name]
	if !ok {
		return
	}
	ctrl := &beep.Ctrl{Streamer: repeat(buf)}
	s.mu.Lock()
	s.loops = append(s.loops, ctrl)
	s.mu.Unlock()
	s.sink.Add(withVolume(ctrl, s.volume(name)))
}

// StopLoops silences every looping effect.
func (s *Sounds) StopLoops() {
	if s == nil || s.sink == nil {
		return
	}
	s.mu.Lock()
	loops := s.loops
	s.loops = nil
	s.mu.Unlock()

	s.sink.Locked(func() {
		for _, c := range loops {
			c.Paused = true
			c.Streamer = nil
		}
	})
}

func (s *Sounds) volume(name string) float64 {
	if v, ok := s.volumes[name]; ok {
		return v
	}
	return 1
}

// Volume is the linear gain applied to an effect, for display.
func (s *Sounds) Volume(name string) float64 {
	if s == nil {
		return 0
	}
	return s.volume(name)
}

func withVolume(st beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(vol)}
}

// repeat streams buf from the start each time it runs out.
func repeat(buf *beep.Buffer) beep.Streamer {
	return beep.Iterate(func() beep.Streamer {
		return buf.Streamer(0, buf.Len())
	})
}

func loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, fmtIn, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if fmtIn.SampleRate != sampleRate {
		src = beep.Resample(4, fmtIn.SampleRate, sampleRate, streamer)
	}
	buf := beep.NewBuffer(format)
	buf.Append(src)
	return buf, nil
}
