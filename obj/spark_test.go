package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestSparkSlowsToAStop(t *testing.T) {
	s := NewSpark(cp.Vector{}, 0, 1)
	for i := 1; i < 10; i++ {
		assert.False(t, s.Update(), "tick %d", i)
	}
	assert.True(t, s.Update())
	assert.Equal(t, 0.0, s.Speed)
	assert.InDelta(t, 5.5, s.Pos.X, 1e-9)
}

func TestSparkFollowsAngle(t *testing.T) {
	s := NewSpark(cp.Vector{X: 10, Y: 10}, math.Pi/2, 2)
	s.Update()
	assert.InDelta(t, 10, s.Pos.X, 1e-9)
	assert.InDelta(t, 12, s.Pos.Y, 1e-9)
}

func TestParticleRemovedAfterAnimationEnds(t *testing.T) {
	fx := newTestEffects()
	p := fx.AddParticle(ParticleDust, cp.Vector{}, cp.Vector{X: 1}, 0)
	assert.True(t, p.Update(), "no animation means nothing to play")
	assert.Equal(t, 1.0, p.Pos.X)
}
