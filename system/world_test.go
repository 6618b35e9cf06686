package system

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLevel is a flat floor at row 10 with a player spawn at (32, 145).
type testLevel struct {
	enemies []tilemap.Tile
	items   []tilemap.Tile
	traps   [][2]int
	noSpawn bool
}

func (l testLevel) build() *tilemap.Tilemap {
	tm := tilemap.New(16)
	for x := -5; x <= 60; x++ {
		tm.Set(tilemap.Tile{Type: tilemap.TypeStone, Pos: [2]float64{float64(x), 10}})
	}
	for _, c := range l.traps {
		tm.Set(tilemap.Tile{Type: tilemap.TypeTraps, Pos: [2]float64{float64(c[0]), float64(c[1])}})
	}
	if !l.noSpawn {
		tm.AddOffgrid(tilemap.Tile{Type: tilemap.TypeSpawners, Variant: 0, Pos: [2]float64{32, 145}})
	}
	for _, e := range l.enemies {
		tm.AddOffgrid(e)
	}
	for _, it := range l.items {
		tm.AddOffgrid(it)
	}
	tm.AddOffgrid(tilemap.Tile{Type: tilemap.TypeLargeDecor, Variant: 2, Pos: [2]float64{200, 100}})
	return tm
}

type loader struct {
	levels []testLevel
	calls  []int
}

func (l *loader) load(index int) (*tilemap.Tilemap, error) {
	l.calls = append(l.calls, index)
	return l.levels[index].build(), nil
}

func newTestWorld(t *testing.T, levels ...testLevel) (*World, *loader) {
	t.Helper()
	specs, err := prefabs.LoadAll()
	require.NoError(t, err)
	ld := &loader{levels: levels}
	w, err := NewWorld(Config{
		Specs:      specs,
		Rand:       rand.New(rand.NewPCG(7, 7)),
		LevelCount: len(levels),
		LoadLevel:  ld.load,
	}, 0)
	require.NoError(t, err)
	return w, ld
}

func slimeAt(x, y float64) tilemap.Tile {
	return tilemap.Tile{Type: tilemap.TypeSpawners, Variant: 2, Pos: [2]float64{x, y}}
}

func TestLoadSpawnsFromLevel(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{
		enemies: []tilemap.Tile{slimeAt(300, 152), {Type: tilemap.TypeSpawners, Variant: 1, Pos: [2]float64{400, 145}}},
		items:   []tilemap.Tile{{Type: tilemap.TypeItems, Variant: 1, Pos: [2]float64{500, 144}}},
	})

	assert.Equal(t, 32.0, w.Player.Pos.X)
	require.Len(t, w.Enemies, 2)
	names := []string{w.Enemies[0].Name, w.Enemies[1].Name}
	assert.ElementsMatch(t, []string{"slime", "gunman"}, names)
	require.Len(t, w.Items, 1)
	assert.Equal(t, "dash", w.Items[0].Kind)
	require.Len(t, w.Leaves, 1)
	assert.Equal(t, 204.0, w.Leaves[0].X)
	assert.Equal(t, 23.0, w.Leaves[0].W)

	left := w.Tiles.Extract([]tilemap.TileID{{Type: tilemap.TypeSpawners, Variant: 0}, {Type: tilemap.TypeItems, Variant: 1}}, true)
	assert.Empty(t, left, "spawners are removed from the map")
	assert.Equal(t, -30, w.Transition.Value)
}

func TestLoadWithoutPlayerSpawn(t *testing.T) {
	specs, err := prefabs.LoadAll()
	require.NoError(t, err)
	ld := &loader{levels: []testLevel{{noSpawn: true}}}
	_, err = NewWorld(Config{Specs: specs, LevelCount: 1, LoadLevel: ld.load}, 0)
	require.ErrorIs(t, err, ErrNoPlayerSpawn)
}

func TestItemCollectedOnTheSameTick(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{
		enemies: []tilemap.Tile{slimeAt(600, 152)},
		items:   []tilemap.Tile{{Type: tilemap.TypeItems, Variant: 4, Pos: [2]float64{28, 144}}},
	})
	require.False(t, w.Player.Abilities.TimeStop)

	require.NoError(t, w.Update(nil))
	assert.Empty(t, w.Items)
	assert.True(t, w.Player.Abilities.TimeStop)
}

func TestLevelAdvancesWhenEnemiesAreGone(t *testing.T) {
	w, ld := newTestWorld(t, testLevel{}, testLevel{})

	for i := 0; i < 100 && w.Level == 0; i++ {
		require.NoError(t, w.Update(nil))
	}
	assert.Equal(t, 1, w.Level)
	assert.Equal(t, []int{0, 1}, ld.calls)

	for i := 0; i < 100; i++ {
		require.NoError(t, w.Update(nil))
	}
	assert.Equal(t, 1, w.Level, "the last level repeats")
}

func TestDeathReloadsLevelAndResetsAbilities(t *testing.T) {
	w, ld := newTestWorld(t, testLevel{enemies: []tilemap.Tile{slimeAt(600, 152)}})
	w.Player.Abilities.SetDashUnlocked()
	w.Player.Kill(w.Effects)

	require.NoError(t, w.Update(nil))
	require.Equal(t, 1, w.Dead)

	for i := 0; i < 45 && len(ld.calls) == 1; i++ {
		require.NoError(t, w.Update(nil))
	}
	assert.Equal(t, []int{0, 0}, ld.calls)
	assert.Equal(t, 0, w.Dead)
	assert.False(t, w.Player.Dead())
	assert.False(t, w.Player.Abilities.Dash)
}

func TestFallingTooLongKills(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{enemies: []tilemap.Tile{slimeAt(600, 152)}})
	w.Player.Pos.Y = -10000

	for i := 0; i < 200 && w.Dead == 0; i++ {
		require.NoError(t, w.Update(nil))
	}
	assert.True(t, w.Player.Dead())
	assert.Greater(t, w.Dead, 0)
}

func TestHazardHurtsPlayer(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{
		enemies: []tilemap.Tile{slimeAt(600, 152)},
		traps:   [][2]int{{2, 9}},
	})
	require.NoError(t, w.Update(nil))
	assert.Equal(t, 1, w.Player.Health.Hits)
	assert.Equal(t, 16.0, w.Effects.Shake)
}

func TestDashDefeatsTouchedEnemy(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{enemies: []tilemap.Tile{slimeAt(36, 152), slimeAt(600, 152)}})
	w.Player.Abilities.SetDashUnlocked()

	require.NoError(t, w.Update(&obj.Input{DashPressed: true}))
	assert.Equal(t, 0, w.Player.Health.Hits)
	require.NotEmpty(t, w.Enemies)
	defeated := 0
	for _, e := range w.Enemies {
		if e.Defeated {
			defeated++
		}
	}
	assert.Equal(t, 1, defeated)
}

func TestContactEnemyHurtsPlayer(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{enemies: []tilemap.Tile{slimeAt(36, 152)}})
	require.NoError(t, w.Update(nil))
	assert.Equal(t, 1, w.Player.Health.Hits)
}

func TestTimeMeter(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{enemies: []tilemap.Tile{slimeAt(600, 152)}})

	assert.False(t, w.ToggleTimeStop(), "locked")
	w.Player.Abilities.SetTimeStopUnlocked()

	require.NoError(t, w.Update(&obj.Input{TimeStopPressed: true}))
	require.True(t, w.TimeStop)
	enemy := w.Enemies[0]
	x := enemy.Pos.X

	for i := 0; i < 10; i++ {
		require.NoError(t, w.Update(nil))
	}
	assert.Equal(t, x, enemy.Pos.X, "enemies are frozen")
	assert.Equal(t, 590.0, w.TimeMeter)

	for i := 0; i < 600 && w.TimeStop; i++ {
		require.NoError(t, w.Update(nil))
	}
	assert.False(t, w.TimeStop, "meter ran out")
	assert.Equal(t, 0.0, w.TimeMeter)

	require.NoError(t, w.Update(nil))
	assert.Equal(t, 0.5, w.TimeMeter)
	assert.True(t, w.ToggleTimeStop(), "any charge allows time stop")
}

func TestFilterUpdateKeepsAppended(t *testing.T) {
	list := []int{1, 2, 3, 4}
	filterUpdate(&list, func(v int) bool {
		if v == 2 {
			list = append(list, 10)
		}
		return v%2 == 0
	})
	assert.Equal(t, []int{1, 3, 10}, list)
}

func TestSnapshotMentionsState(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{enemies: []tilemap.Tile{slimeAt(600, 152)}})
	s := w.Snapshot()
	assert.Contains(t, s, "level 0/0")
	assert.Contains(t, s, "enemy slime")
}

func TestApplySpecs(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{enemies: []tilemap.Tile{slimeAt(600, 152)}})
	specs, err := prefabs.LoadAll()
	require.NoError(t, err)
	specs.Player.Jump.Velocity = 5
	slime := specs.Enemies["slime"]
	slime.Speed = 2
	specs.Enemies["slime"] = slime

	w.ApplySpecs(specs)
	assert.Equal(t, 5.0, w.Player.Spec.Jump.Velocity)
	assert.Equal(t, 2.0, w.Enemies[0].Spec.Speed)
}

func TestShakeFollowsGameTuning(t *testing.T) {
	w, _ := newTestWorld(t, testLevel{
		enemies: []tilemap.Tile{slimeAt(600, 152)},
		traps:   [][2]int{{2, 9}},
	})
	specs, err := prefabs.LoadAll()
	require.NoError(t, err)
	specs.Game.Shake.OnHit = 5
	specs.Game.Shake.OnDefeat = 3

	w.ApplySpecs(specs)
	assert.Equal(t, 3.0, w.Effects.DefeatShake)

	require.NoError(t, w.Update(nil))
	assert.Equal(t, 1, w.Player.Health.Hits)
	assert.Equal(t, 5.0, w.Effects.Shake)
}
