package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestingOnGround(t *testing.T) {
	tiles := gridTiles{}.floor(10, 0, 10)
	e := NewPhysicsEntity("player", cp.Vector{X: 32, Y: 145}, cp.Vector{X: 8, Y: 15}, nil)

	for i := 0; i < 5; i++ {
		e.Update(tiles, cp.Vector{})
		require.True(t, e.Collisions.Down, "tick %d", i)
		assert.Equal(t, 0.0, e.Vel.Y)
		assert.Equal(t, 145.0, e.Pos.Y)
	}
}

func TestCollisionFlagsOnlyDescribeLastStep(t *testing.T) {
	tiles := gridTiles{}.floor(10, 0, 10)
	e := NewPhysicsEntity("player", cp.Vector{X: 32, Y: 145}, cp.Vector{X: 8, Y: 15}, nil)
	e.Update(tiles, cp.Vector{})
	require.True(t, e.Collisions.Down)

	e.Vel.Y = -3
	e.Update(tiles, cp.Vector{})
	assert.False(t, e.Collisions.Down)
}

func TestResolutionIsSound(t *testing.T) {
	tiles := gridTiles{}.floor(12, -2, 20).wall(8, 0, 12).wall(-1, 0, 12)

	cases := []struct {
		name     string
		start    cp.Vector
		vel      cp.Vector
		movement cp.Vector
	}{
		{"fall", cp.Vector{X: 40, Y: 0}, cp.Vector{}, cp.Vector{}},
		{"run into wall", cp.Vector{X: 90, Y: 100}, cp.Vector{}, cp.Vector{X: 1.5}},
		{"fast diagonal", cp.Vector{X: 20, Y: 20}, cp.Vector{X: 4.7, Y: 3.3}, cp.Vector{X: 1}},
		{"run left into wall", cp.Vector{X: 30, Y: 100}, cp.Vector{X: -2}, cp.Vector{X: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewPhysicsEntity("player", tc.start, cp.Vector{X: 8, Y: 15}, nil)
			e.Vel = tc.vel
			for i := 0; i < 240; i++ {
				e.Update(tiles, tc.movement)
				require.False(t, tiles.overlapsAny(e.Rect()), "tick %d at %v", i, e.Pos)
			}
			assert.True(t, e.Collisions.Down, "settles on the floor")
		})
	}
}

func TestHorizontalResolvesBeforeVertical(t *testing.T) {
	tiles := gridTiles{{2, 2}: true}
	e := NewPhysicsEntity("spirit", cp.Vector{X: 26, Y: 26}, cp.Vector{X: 8, Y: 8}, nil)
	e.NoGravity = true
	e.Vel = cp.Vector{X: 4, Y: 4}

	e.Update(tiles, cp.Vector{})

	assert.Equal(t, cp.Vector{X: 24, Y: 30}, e.Pos)
	assert.Equal(t, Collisions{Right: true}, e.Collisions)
}

func TestHeadBumpZeroesVelocity(t *testing.T) {
	tiles := gridTiles{}.floor(0, 0, 4)
	e := NewPhysicsEntity("player", cp.Vector{X: 20, Y: 17}, cp.Vector{X: 8, Y: 15}, nil)
	e.Vel.Y = -3

	e.Update(tiles, cp.Vector{})

	assert.True(t, e.Collisions.Up)
	assert.Equal(t, 16.0, e.Pos.Y)
	assert.Equal(t, 0.0, e.Vel.Y)
}

func TestGravityClampsAtTerminalVelocity(t *testing.T) {
	e := NewPhysicsEntity("player", cp.Vector{}, cp.Vector{X: 8, Y: 15}, nil)
	for i := 0; i < 100; i++ {
		e.Update(gridTiles{}, cp.Vector{})
	}
	assert.Equal(t, 5.0, e.Vel.Y)
}

func TestVerticalFrozenSkipsOneStep(t *testing.T) {
	e := NewPhysicsEntity("player", cp.Vector{X: 10, Y: 10}, cp.Vector{X: 8, Y: 15}, nil)
	e.Vel.Y = 2
	e.VerticalFrozen = true

	e.Update(nil, cp.Vector{X: 1})

	assert.Equal(t, cp.Vector{X: 11, Y: 10}, e.Pos)
	assert.Equal(t, 2.0, e.Vel.Y)
	assert.False(t, e.VerticalFrozen)

	e.Update(nil, cp.Vector{})
	assert.InDelta(t, 12.1, e.Pos.Y, 1e-9)
}

func TestFacingFollowsMovement(t *testing.T) {
	e := NewPhysicsEntity("player", cp.Vector{}, cp.Vector{X: 8, Y: 15}, nil)
	e.Update(nil, cp.Vector{X: -1})
	assert.True(t, e.Flip)
	e.Update(nil, cp.Vector{})
	assert.True(t, e.Flip, "no input keeps facing")
	e.Update(nil, cp.Vector{X: 1})
	assert.False(t, e.Flip)
	assert.Equal(t, cp.Vector{X: 1}, e.LastMovement)
}
