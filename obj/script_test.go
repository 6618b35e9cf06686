package obj

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpiritScriptSteersTowardPlayer(t *testing.T) {
	spec := loadEnemySpec(t, "spirit")
	b, err := NewScriptBehavior(NewScriptCache(), spec.Script, Drift{})
	require.NoError(t, err)

	p := NewPlayer(cp.Vector{X: 100, Y: 50}, loadPlayerSpec(t), nil)
	e := NewEnemy("spirit", cp.Vector{X: 40, Y: 50}, spec, nil, b)
	tick := &Tick{Tiles: gridTiles{}, Effects: newTestEffects(), Player: p}

	e.Update(tick)
	require.False(t, b.Failed())
	assert.Greater(t, e.Vel.X, 0.0)
	assert.False(t, e.Flip)

	p.Pos.X = -20
	e.Update(tick)
	assert.Less(t, e.Vel.X, 0.0)
	assert.True(t, e.Flip)

	n, ok := b.state.Value["t"].(*tengo.Int)
	require.True(t, ok, "state persists between ticks")
	assert.Equal(t, int64(2), n.Value)
}

func TestScriptStatePerEnemy(t *testing.T) {
	cache := NewScriptCache()
	spec := loadEnemySpec(t, "spirit")
	a, err := NewScriptBehavior(cache, spec.Script, nil)
	require.NoError(t, err)
	b, err := NewScriptBehavior(cache, spec.Script, nil)
	require.NoError(t, err)

	p := NewPlayer(cp.Vector{X: 100, Y: 50}, loadPlayerSpec(t), nil)
	tick := &Tick{Tiles: gridTiles{}, Effects: newTestEffects(), Player: p}
	ea := NewEnemy("spirit", cp.Vector{X: 40, Y: 50}, spec, nil, a)
	eb := NewEnemy("spirit", cp.Vector{X: 60, Y: 50}, spec, nil, b)

	ea.Update(tick)
	ea.Update(tick)
	eb.Update(tick)

	assert.Equal(t, int64(2), a.state.Value["t"].(*tengo.Int).Value)
	assert.Equal(t, int64(1), b.state.Value["t"].(*tengo.Int).Value)
}

func TestBrokenScriptFallsBack(t *testing.T) {
	dir := t.TempDir()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "syntax.tengo"), []byte("update := func(engine, state) {"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "runtime.tengo"),
		[]byte(`update := func(engine, state) { engine.set_velocity("a", "b") }`), 0o644))

	spec := loadEnemySpec(t, "spirit")
	p := NewPlayer(cp.Vector{X: 100, Y: 50}, loadPlayerSpec(t), nil)
	tick := &Tick{Tiles: gridTiles{}, Effects: newTestEffects(), Player: p}

	t.Run("compile error", func(t *testing.T) {
		b, err := NewScriptBehavior(NewScriptCache(), "syntax.tengo", Drift{})
		require.Error(t, err)
		assert.True(t, b.Failed())

		e := NewEnemy("spirit", cp.Vector{X: 40, Y: 50}, spec, nil, b)
		e.Update(tick)
		assert.Greater(t, e.Vel.X, 0.0, "drift takes over")
	})

	t.Run("runtime error", func(t *testing.T) {
		b, err := NewScriptBehavior(NewScriptCache(), "runtime.tengo", Drift{})
		require.NoError(t, err)

		e := NewEnemy("spirit", cp.Vector{X: 40, Y: 50}, spec, nil, b)
		e.Update(tick)
		assert.True(t, b.Failed())
		assert.Greater(t, e.Vel.X, 0.0, "drift takes over")
	})
}

func TestBehaviorFor(t *testing.T) {
	cache := NewScriptCache()
	_, ok := BehaviorFor(loadEnemySpec(t, "spirit"), cache).(*ScriptBehavior)
	assert.True(t, ok)
	assert.Equal(t, Walker{}, BehaviorFor(loadEnemySpec(t, "gunman"), cache))
	assert.Equal(t, Drift{}, BehaviorFor(loadEnemySpec(t, "spirit"), nil))
}
