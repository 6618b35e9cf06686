package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGunmanShootsAtEndOfWalk(t *testing.T) {
	tiles := gridTiles{}.floor(10, 0, 20)
	p := NewPlayer(cp.Vector{X: 150, Y: 145}, loadPlayerSpec(t), nil)
	e := NewEnemy("gunman", cp.Vector{X: 32, Y: 145}, loadEnemySpec(t, "gunman"), nil, nil)
	tick := &Tick{Tiles: tiles, Effects: newTestEffects(), Player: p, Enemies: []*Enemy{e}}

	e.Walking = 1
	require.False(t, e.Update(tick))

	assert.Equal(t, 0, e.Walking)
	assert.InDelta(t, 32.5, e.Pos.X, 1e-9)
	require.Len(t, tick.Effects.Projectiles, 1)
	shot := tick.Effects.Projectiles[0]
	assert.Equal(t, 1.5, shot.Speed)
	assert.Equal(t, component.FactionEnemy, shot.Team)
	assert.InDelta(t, e.Center().X+7, shot.Pos.X, 0.6)
}

func TestGunmanHoldsFireWhenPlayerBehind(t *testing.T) {
	tiles := gridTiles{}.floor(10, 0, 20)
	p := NewPlayer(cp.Vector{X: 4, Y: 145}, loadPlayerSpec(t), nil)
	e := NewEnemy("gunman", cp.Vector{X: 64, Y: 145}, loadEnemySpec(t, "gunman"), nil, nil)
	tick := &Tick{Tiles: tiles, Effects: newTestEffects(), Player: p}

	e.Walking = 1
	e.Update(tick)
	assert.Empty(t, tick.Effects.Projectiles)
}

func TestWalkerTurnsAtLedge(t *testing.T) {
	tiles := gridTiles{}.floor(10, 0, 3)
	e := NewEnemy("slime", cp.Vector{X: 30, Y: 152}, loadEnemySpec(t, "slime"), nil, nil)
	tick := &Tick{Tiles: tiles, Effects: newTestEffects()}

	turned := false
	for i := 0; i < 200 && !turned; i++ {
		e.Update(tick)
		turned = e.Flip
	}
	require.True(t, turned)
	assert.LessOrEqual(t, e.Center().X+7, 64.0+e.Spec.Speed)
	assert.True(t, e.Collisions.Down)
}

func TestWalkerTurnsAtWall(t *testing.T) {
	tiles := gridTiles{}.floor(10, 0, 10).wall(5, 9, 9)
	e := NewEnemy("slime", cp.Vector{X: 50, Y: 152}, loadEnemySpec(t, "slime"), nil, nil)
	tick := &Tick{Tiles: tiles, Effects: newTestEffects()}

	turned := false
	for i := 0; i < 200 && !turned; i++ {
		e.Update(tick)
		turned = e.Flip
	}
	require.True(t, turned)
	assert.LessOrEqual(t, e.Rect().Right(), 80.0)
}

func TestGoblinChargesPlayerInFront(t *testing.T) {
	tiles := gridTiles{}.floor(10, 0, 30)
	spec := loadEnemySpec(t, "goblin")
	p := NewPlayer(cp.Vector{X: 120, Y: 145}, loadPlayerSpec(t), nil)
	e := NewEnemy("goblin", cp.Vector{X: 40, Y: 142}, spec, nil, nil)
	tick := &Tick{Tiles: tiles, Effects: newTestEffects(), Player: p}

	e.Walking = 10
	x := e.Pos.X
	e.Update(tick)
	assert.InDelta(t, spec.ChargeSpeed, e.Pos.X-x, 1e-9)

	e.Flip = true
	x = e.Pos.X
	e.Update(tick)
	assert.InDelta(t, -spec.Speed, e.Pos.X-x, 1e-9)
}

func TestEnemyFrozenDuringTimeStop(t *testing.T) {
	e := NewEnemy("slime", cp.Vector{X: 30, Y: 0}, loadEnemySpec(t, "slime"), nil, nil)
	tick := &Tick{Tiles: gridTiles{}, Effects: newTestEffects(), TimeStop: true}
	for i := 0; i < 10; i++ {
		assert.False(t, e.Update(tick))
	}
	assert.Equal(t, cp.Vector{X: 30, Y: 0}, e.Pos)
	assert.Equal(t, 0, e.Age)
}

func TestDefeatedEnemyIsRemovedAfterAnimation(t *testing.T) {
	fx := newTestEffects()
	fx.DefeatShake = 9
	var defeats []string
	fx.Events.Subscribe(func(evt component.CombatEvent) {
		if evt.Type == component.EventDefeat {
			defeats = append(defeats, evt.Kind)
		}
	})
	e := NewEnemy("goblin", cp.Vector{}, loadEnemySpec(t, "goblin"), nil, nil)

	e.Defeat(fx)
	e.Defeat(fx)
	assert.Equal(t, []string{"goblin"}, defeats)
	assert.Equal(t, "defeat", e.Action)
	assert.Len(t, fx.Sparks, 32)
	assert.Equal(t, 9.0, fx.Shake)
	assert.True(t, e.Update(&Tick{Effects: fx}))
}

func TestContactEnemiesTouchPlayer(t *testing.T) {
	p := NewPlayer(cp.Vector{X: 10, Y: 10}, loadPlayerSpec(t), nil)
	slime := NewEnemy("slime", cp.Vector{X: 12, Y: 12}, loadEnemySpec(t, "slime"), nil, nil)
	gunman := NewEnemy("gunman", cp.Vector{X: 12, Y: 12}, loadEnemySpec(t, "gunman"), nil, nil)

	assert.True(t, slime.Touches(p))
	assert.False(t, gunman.Touches(p))
	slime.Defeated = true
	assert.False(t, slime.Touches(p))
}

func TestDriftMovesTowardPlayer(t *testing.T) {
	spec := loadEnemySpec(t, "spirit")
	p := NewPlayer(cp.Vector{X: 100, Y: 50}, loadPlayerSpec(t), nil)
	e := NewEnemy("spirit", cp.Vector{X: 40, Y: 50}, spec, nil, Drift{})
	tick := &Tick{Tiles: gridTiles{}, Effects: newTestEffects(), Player: p}

	e.Update(tick)
	assert.Greater(t, e.Vel.X, 0.0)
	assert.False(t, e.Flip)
	assert.True(t, e.NoGravity)

	p.Pos.X = -400
	e.Update(tick)
	assert.Equal(t, 0.0, e.Vel.X, "player out of sight")
}
