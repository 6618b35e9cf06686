package audio

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	mu    sync.Mutex
	added []beep.Streamer
}

func (f *fakeSink) Add(s ...beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, s...)
}

func (f *fakeSink) Locked(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.added)
}

func TestSweepLength(t *testing.T) {
	s := newSweep(440, 880, 10*time.Millisecond, waveSquare, 0.5)
	want := sampleRate.N(10 * time.Millisecond)

	got := 0
	buf := make([][2]float64, 64)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			require.LessOrEqual(t, smp[0], 0.5)
			require.GreaterOrEqual(t, smp[0], -0.5)
		}
		got += n
		if !ok {
			break
		}
	}
	assert.Equal(t, want, got)
}

func TestSoundsSynthesizeMissingFiles(t *testing.T) {
	sink := &fakeSink{}
	s := NewSounds(sink, t.TempDir(), map[string]float64{Hit: 0.8})

	for _, name := range effectNames {
		require.Contains(t, s.buffers, name)
		assert.Positive(t, s.buffers[name].Len(), name)
	}
	assert.Equal(t, 0.8, s.Volume(Hit))
	assert.Equal(t, 1.0, s.Volume(Jump))

	s.Play(Jump)
	s.Play("missing")
	assert.Equal(t, 1, sink.count())
}

func TestSoundsLoopStops(t *testing.T) {
	sink := &fakeSink{}
	s := NewSounds(sink, "", nil)
	s.Loop(Ambience)
	require.Len(t, s.loops, 1)
	ctrl := s.loops[0]

	s.StopLoops()
	assert.True(t, ctrl.Paused)
	assert.Empty(t, s.loops)
}

func TestNilSoundsIsSilent(t *testing.T) {
	var s *Sounds
	s.Play(Jump)
	s.Loop(Ambience)
	s.StopLoops()
	assert.Zero(t, s.Volume(Jump))
}

func TestMusicStartStop(t *testing.T) {
	sink := &fakeSink{}
	m := NewMusic(sink, "does-not-exist.wav", 0.5)
	m.Start(context.Background())
	m.Start(context.Background())

	require.Eventually(t, m.Playing, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, sink.count())

	m.Stop()
	assert.False(t, m.Playing())
}

func TestMusicStopWithoutStart(t *testing.T) {
	m := NewMusic(&fakeSink{}, "", 1)
	m.Stop()

	var nilMusic *Music
	nilMusic.Start(context.Background())
	nilMusic.Stop()
}
