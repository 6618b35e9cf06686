package system

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/tilemap"
)

var ErrNoPlayerSpawn = errors.New("system: level has no player spawner")

const playerSpawnVariant = 0

// treeVariant is the large_decor variant that sheds leaves.
const treeVariant = 2

// Load replaces the current level with level index. The world is left
// untouched when the level cannot be loaded.
func (w *World) Load(index int) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	tiles, err := w.cfg.LoadLevel(index)
	if err != nil {
		return fmt.Errorf("system: load level %d: %w", index, err)
	}

	leaves := w.leafSpawners(tiles)

	spawn, enemies, err := w.spawnEnemies(tiles)
	if err != nil {
		return fmt.Errorf("system: load level %d: %w", index, err)
	}
	items := w.spawnItems(tiles)

	w.Level = index
	w.Tiles = tiles
	w.Leaves = leaves
	w.Enemies = enemies
	w.Items = items
	w.Effects.Clear()

	if w.Player == nil {
		w.Player = obj.NewPlayer(spawn, w.Specs.Player, w.assets())
	}
	w.Player.Respawn(spawn)
	if w.cfg.AllAbilities {
		w.Player.Abilities.UnlockAll()
		w.Player.HasGun = true
	}

	w.Dead = 0
	w.TimeStop = false
	w.TimeMeter = w.Specs.Game.TimeStop.Max
	w.Transition.Open()

	w.Camera.SetWorldBounds(tiles.Bounds())
	w.Camera.SnapTo(w.Player.Center())

	w.Debugf("loaded level %d: %d enemies, %d items, %d trees", index, len(enemies), len(items), len(leaves))
	return nil
}

func (w *World) leafSpawners(tiles *tilemap.Tilemap) []common.Rect {
	spec := w.Specs.Game.Leaves
	var out []common.Rect
	for _, tree := range tiles.Extract([]tilemap.TileID{{Type: tilemap.TypeLargeDecor, Variant: treeVariant}}, true) {
		out = append(out, common.Rect{
			X: tree.Pos[0] + spec.Inset[0],
			Y: tree.Pos[1] + spec.Inset[1],
			W: spec.Size.W(),
			H: spec.Size.H(),
		})
	}
	return out
}

// spawnEnemies removes every spawner from tiles and returns the player
// start and the enemies.
func (w *World) spawnEnemies(tiles *tilemap.Tilemap) (cp.Vector, []*obj.Enemy, error) {
	ids := []tilemap.TileID{{Type: tilemap.TypeSpawners, Variant: playerSpawnVariant}}
	for _, name := range w.Specs.Enemies.Names() {
		ids = append(ids, tilemap.TileID{Type: tilemap.TypeSpawners, Variant: w.Specs.Enemies[name].Variant})
	}

	var (
		spawn   cp.Vector
		found   bool
		enemies []*obj.Enemy
	)
	for _, s := range tiles.Extract(ids, false) {
		pos := cp.Vector{X: s.Pos[0], Y: s.Pos[1]}
		if s.Variant == playerSpawnVariant {
			spawn, found = pos, true
			continue
		}
		name, spec, ok := w.Specs.Enemies.ByVariant(s.Variant)
		if !ok {
			continue
		}
		enemies = append(enemies, obj.NewEnemy(name, pos, spec, w.assets(), obj.BehaviorFor(spec, w.scripts)))
	}
	if !found {
		return cp.Vector{}, nil, ErrNoPlayerSpawn
	}
	return spawn, enemies, nil
}

func (w *World) spawnItems(tiles *tilemap.Tilemap) []*obj.Item {
	spec := w.Specs.Items
	variants := make([]int, 0, len(spec.Kinds))
	for v := range spec.Kinds {
		variants = append(variants, v)
	}
	sort.Ints(variants)

	ids := make([]tilemap.TileID, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, tilemap.TileID{Type: tilemap.TypeItems, Variant: v})
	}

	var items []*obj.Item
	for _, t := range tiles.Extract(ids, false) {
		it, err := obj.NewItem(spec.Kinds[t.Variant], cp.Vector{X: t.Pos[0], Y: t.Pos[1]}, spec, w.assets())
		if err != nil {
			log.Printf("system: skipping item variant %d: %v", t.Variant, err)
			continue
		}
		items = append(items, it)
	}
	return items
}
