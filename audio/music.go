package audio

import (
	"context"
	"log"
	"sync"

	"github.com/gopxl/beep"
)

// Music plays one background track on its own goroutine. The simulation
// never waits on it; Stop is only called at shutdown.
type Music struct {
	sink   Sink
	path   string
	volume float64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ctrl   *beep.Ctrl
}

// NewMusic creates a player for the wav file at path. A missing file falls
// back to a synthesized loop.
func NewMusic(sink Sink, path string, volume float64) *Music {
	return &Music{sink: sink, path: path, volume: volume}
}

// Start launches playback and returns immediately. Calling Start while the
// track is already running does nothing.
func (m *Music) Start(ctx context.Context) {
	if m == nil || m.sink == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
}

// Stop ends playback and waits for the music goroutine to exit.
func (m *Music) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Playing reports whether the track has been handed to the output.
func (m *Music) Playing() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctrl != nil && !m.ctrl.Paused
}

func (m *Music) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	var track beep.Streamer
	buf, err := loadWAV(m.path)
	if err != nil {
		log.Printf("audio: music %s: %v, using synthesized loop", m.path, err)
		buf = beep.NewBuffer(format)
		buf.Append(arpeggio())
	}
	track = repeat(buf)

	ctrl := &beep.Ctrl{Streamer: track}
	if ctx.Err() != nil {
		return
	}
	m.mu.Lock()
	m.ctrl = ctrl
	m.mu.Unlock()
	m.sink.Add(withVolume(ctrl, m.volume))

	<-ctx.Done()
	m.sink.Locked(func() {
		m.mu.Lock()
		ctrl.Paused = true
		ctrl.Streamer = nil
		m.mu.Unlock()
	})
}
