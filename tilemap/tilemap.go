package tilemap

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/common"
)

// Tile types the level format knows about.
const (
	TypeGrass      = "grass"
	TypeStone      = "stone"
	TypeDecor      = "decor"
	TypeLargeDecor = "large_decor"
	TypeTraps      = "traps"
	TypeSpawners   = "spawners"
	TypeItems      = "items"
)

var physicsTiles = map[string]bool{TypeGrass: true, TypeStone: true}

// TileID selects tiles by type and variant.
type TileID struct {
	Type    string
	Variant int
}

// Tile is a single placed tile. Grid tiles store Pos in tile units, offgrid
// tiles in pixels.
type Tile struct {
	Type    string     `json:"type"`
	Variant int        `json:"variant"`
	Pos     [2]float64 `json:"pos"`
}

// Tilemap answers solidity queries against a sparse tile grid. Cells outside
// the placed tiles are empty, so queries far outside the level report nothing.
type Tilemap struct {
	TileSize int

	grid    map[[2]int]Tile
	offgrid []Tile
}

// New creates an empty tilemap.
func New(tileSize int) *Tilemap {
	if tileSize <= 0 {
		tileSize = common.TileSize
	}
	return &Tilemap{TileSize: tileSize, grid: make(map[[2]int]Tile)}
}

// Set places a grid tile at its Pos (tile units), replacing any tile there.
func (t *Tilemap) Set(tile Tile) {
	if t == nil {
		return
	}
	x, y := int(tile.Pos[0]), int(tile.Pos[1])
	tile.Pos = [2]float64{float64(x), float64(y)}
	t.grid[[2]int{x, y}] = tile
}

// AddOffgrid places a free-floating tile at a pixel position.
func (t *Tilemap) AddOffgrid(tile Tile) {
	if t == nil {
		return
	}
	t.offgrid = append(t.offgrid, tile)
}

// At returns the grid tile at tile coordinates (x, y).
func (t *Tilemap) At(x, y int) (Tile, bool) {
	if t == nil {
		return Tile{}, false
	}
	tile, ok := t.grid[[2]int{x, y}]
	return tile, ok
}

// SolidCheck reports whether the pixel position lies in a physics tile.
func (t *Tilemap) SolidCheck(x, y float64) bool {
	if t == nil {
		return false
	}
	tile, ok := t.At(t.cell(x), t.cell(y))
	return ok && physicsTiles[tile.Type]
}

// PhysicsRectsAround returns the rects of every physics tile within one tile
// of the area covered by r.
func (t *Tilemap) PhysicsRectsAround(r common.Rect) []common.Rect {
	return t.rectsAround(r, func(tile Tile) bool { return physicsTiles[tile.Type] })
}

// HazardCheck reports whether r overlaps a trap tile.
func (t *Tilemap) HazardCheck(r common.Rect) bool {
	for _, hr := range t.rectsAround(r, func(tile Tile) bool { return tile.Type == TypeTraps }) {
		if r.Intersects(hr) {
			return true
		}
	}
	return false
}

func (t *Tilemap) rectsAround(r common.Rect, match func(Tile) bool) []common.Rect {
	if t == nil {
		return nil
	}
	minX := t.cell(r.X) - 1
	minY := t.cell(r.Y) - 1
	maxX := t.cell(r.Right()) + 1
	maxY := t.cell(r.Bottom()) + 1

	size := float64(t.TileSize)
	var out []common.Rect
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			tile, ok := t.grid[[2]int{x, y}]
			if !ok || !match(tile) {
				continue
			}
			out = append(out, common.Rect{X: float64(x) * size, Y: float64(y) * size, W: size, H: size})
		}
	}
	return out
}

// Extract returns every tile matching one of ids with Pos converted to
// pixels. Unless keep is set the matches are removed from the map.
func (t *Tilemap) Extract(ids []TileID, keep bool) []Tile {
	if t == nil || len(ids) == 0 {
		return nil
	}
	want := make(map[TileID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var matches []Tile
	remaining := t.offgrid[:0]
	for _, tile := range t.offgrid {
		if want[TileID{tile.Type, tile.Variant}] {
			matches = append(matches, tile)
			if keep {
				remaining = append(remaining, tile)
			}
			continue
		}
		remaining = append(remaining, tile)
	}
	t.offgrid = remaining

	size := float64(t.TileSize)
	for _, key := range t.sortedKeys() {
		tile := t.grid[key]
		if !want[TileID{tile.Type, tile.Variant}] {
			continue
		}
		out := tile
		out.Pos = [2]float64{tile.Pos[0] * size, tile.Pos[1] * size}
		matches = append(matches, out)
		if !keep {
			delete(t.grid, key)
		}
	}
	return matches
}

// Tiles returns the grid tiles ordered by row then column.
func (t *Tilemap) Tiles() []Tile {
	if t == nil {
		return nil
	}
	keys := t.sortedKeys()
	out := make([]Tile, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.grid[k])
	}
	return out
}

// Offgrid returns the free-floating tiles in placement order.
func (t *Tilemap) Offgrid() []Tile {
	if t == nil {
		return nil
	}
	return append([]Tile(nil), t.offgrid...)
}

// Bounds returns the tile-aligned pixel rect covering every grid tile.
func (t *Tilemap) Bounds() common.Rect {
	if t == nil || len(t.grid) == 0 {
		return common.Rect{}
	}
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for k := range t.grid {
		minX, maxX = min(minX, k[0]), max(maxX, k[0])
		minY, maxY = min(minY, k[1]), max(maxY, k[1])
	}
	size := float64(t.TileSize)
	return common.Rect{
		X: float64(minX) * size,
		Y: float64(minY) * size,
		W: float64(maxX-minX+1) * size,
		H: float64(maxY-minY+1) * size,
	}
}

func (t *Tilemap) cell(v float64) int {
	return int(math.Floor(v / float64(t.TileSize)))
}

func (t *Tilemap) sortedKeys() [][2]int {
	keys := make([][2]int, 0, len(t.grid))
	for k := range t.grid {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][1] != keys[j][1] {
			return keys[i][1] < keys[j][1]
		}
		return keys[i][0] < keys[j][0]
	})
	return keys
}

func gridKey(x, y int) string {
	return strconv.Itoa(x) + ";" + strconv.Itoa(y)
}

func parseGridKey(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ";")
	if !ok {
		return 0, 0, fmt.Errorf("tilemap: bad grid key %q", s)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("tilemap: bad grid key %q: %w", s, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("tilemap: bad grid key %q: %w", s, err)
	}
	return x, y, nil
}
