package main

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/tilemap"
)

// Cell is one terminal character standing for a tile.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Grid is a level flattened to tile coordinates.
type Grid struct {
	Cells      map[[2]int]Cell
	MinX, MinY int
	MaxX, MaxY int
	Legend     map[rune]string

	enemies map[string]rune
}

var tileGlyphs = map[string]Cell{
	tilemap.TypeGrass:      {'#', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	tilemap.TypeStone:      {'=', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	tilemap.TypeDecor:      {'.', tcell.StyleDefault.Foreground(tcell.ColorOlive)},
	tilemap.TypeLargeDecor: {'T', tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)},
	tilemap.TypeTraps:      {'^', tcell.StyleDefault.Foreground(tcell.ColorRed)},
}

var (
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	enemyStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	itemStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// BuildGrid places every tile of m. Offgrid tiles land in the cell holding
// their top-left pixel and are drawn over grid tiles.
func BuildGrid(m *tilemap.Tilemap, specs *prefabs.Specs) *Grid {
	g := &Grid{
		Cells:  make(map[[2]int]Cell),
		Legend: make(map[rune]string),
		MinX:   math.MaxInt,
		MinY:   math.MaxInt,
		MaxX:   math.MinInt,
		MaxY:   math.MinInt,
	}
	if specs != nil {
		g.enemies = enemyRunes(specs.Enemies.Names())
	}

	for _, t := range m.Tiles() {
		g.put(int(t.Pos[0]), int(t.Pos[1]), g.cellFor(t, specs))
	}
	size := float64(m.TileSize)
	for _, t := range m.Offgrid() {
		x := int(math.Floor(t.Pos[0] / size))
		y := int(math.Floor(t.Pos[1] / size))
		g.put(x, y, g.cellFor(t, specs))
	}

	if len(g.Cells) == 0 {
		g.MinX, g.MinY, g.MaxX, g.MaxY = 0, 0, 0, 0
	}
	return g
}

func (g *Grid) put(x, y int, c Cell) {
	g.Cells[[2]int{x, y}] = c
	g.MinX, g.MaxX = min(g.MinX, x), max(g.MaxX, x)
	g.MinY, g.MaxY = min(g.MinY, y), max(g.MaxY, y)
}

func (g *Grid) cellFor(t tilemap.Tile, specs *prefabs.Specs) Cell {
	switch t.Type {
	case tilemap.TypeSpawners:
		if t.Variant == 0 {
			g.Legend['@'] = "player"
			return Cell{'@', playerStyle}
		}
		if specs != nil {
			if name, _, ok := specs.Enemies.ByVariant(t.Variant); ok {
				r := g.enemies[name]
				g.Legend[r] = name
				return Cell{r, enemyStyle}
			}
		}
		g.Legend['?'] = "unknown spawner"
		return Cell{'?', enemyStyle}
	case tilemap.TypeItems:
		name := "item"
		if specs != nil {
			if kind, ok := specs.Items.Kinds[t.Variant]; ok {
				name = kind
			}
		}
		r := rune('0' + t.Variant%10)
		g.Legend[r] = name
		return Cell{r, itemStyle}
	}
	if c, ok := tileGlyphs[t.Type]; ok {
		g.Legend[c.Rune] = t.Type
		return c
	}
	g.Legend['%'] = "unknown tile"
	return Cell{'%', tcell.StyleDefault}
}

// enemyRunes gives each enemy the first upper-cased letter of its name not
// already taken by an enemy earlier in names.
func enemyRunes(names []string) map[string]rune {
	out := make(map[string]rune, len(names))
	used := map[rune]bool{'@': true, '?': true}
	for _, name := range names {
		r := '?'
		for _, c := range strings.ToUpper(name) {
			if !used[c] {
				r = c
				break
			}
		}
		used[r] = true
		out[name] = r
	}
	return out
}
