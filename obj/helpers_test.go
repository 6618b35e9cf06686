package obj

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/prefabs"
	"github.com/stretchr/testify/require"
)

// gridTiles is a collision service backed by a set of solid tile cells.
type gridTiles map[[2]int]bool

func (g gridTiles) SolidCheck(x, y float64) bool {
	return g[[2]int{common.FloorDiv(x, common.TileSize), common.FloorDiv(y, common.TileSize)}]
}

func (g gridTiles) PhysicsRectsAround(r common.Rect) []common.Rect {
	var out []common.Rect
	x0 := common.FloorDiv(r.X, common.TileSize) - 1
	y0 := common.FloorDiv(r.Y, common.TileSize) - 1
	x1 := common.FloorDiv(r.Right(), common.TileSize) + 1
	y1 := common.FloorDiv(r.Bottom(), common.TileSize) + 1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if g[[2]int{x, y}] {
				out = append(out, tileRect(x, y))
			}
		}
	}
	return out
}

func tileRect(x, y int) common.Rect {
	return common.Rect{X: float64(x * common.TileSize), Y: float64(y * common.TileSize), W: common.TileSize, H: common.TileSize}
}

// floor fills row y from x0 to x1 inclusive.
func (g gridTiles) floor(y, x0, x1 int) gridTiles {
	for x := x0; x <= x1; x++ {
		g[[2]int{x, y}] = true
	}
	return g
}

func (g gridTiles) wall(x, y0, y1 int) gridTiles {
	for y := y0; y <= y1; y++ {
		g[[2]int{x, y}] = true
	}
	return g
}

// overlapsAny reports whether r overlaps any solid tile near it.
func (g gridTiles) overlapsAny(r common.Rect) bool {
	for _, tr := range g.PhysicsRectsAround(r) {
		if r.Intersects(tr) {
			return true
		}
	}
	return false
}

func newTestEffects() *Effects {
	return NewEffects(rand.New(rand.NewPCG(1, 2)), nil, nil)
}

func loadPlayerSpec(t *testing.T) prefabs.PlayerSpec {
	t.Helper()
	spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](prefabs.PlayerFile)
	require.NoError(t, err)
	return spec
}

func loadEnemySpec(t *testing.T, name string) prefabs.EnemySpec {
	t.Helper()
	specs, err := prefabs.LoadSpec[prefabs.EnemiesSpec](prefabs.EnemiesFile)
	require.NoError(t, err)
	spec, ok := specs[name]
	require.True(t, ok, "missing enemy %s", name)
	return spec
}

func loadItemsSpec(t *testing.T) prefabs.ItemsSpec {
	t.Helper()
	spec, err := prefabs.LoadSpec[prefabs.ItemsSpec](prefabs.ItemsFile)
	require.NoError(t, err)
	return spec
}
