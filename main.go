package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

func main() {
	allAbilities := flag.Bool("ab", false, "start with all abilities and the gun unlocked")
	debug := flag.Bool("debug", false, "enable debug mode (overlay, hot reload, snapshots)")
	mute := flag.Bool("mute", false, "disable audio")
	level := flag.Int("level", -1, "level index to start on (default from game.yaml)")
	seed := flag.Uint64("seed", 0, "random seed for effects and enemy AI")
	assetsDir := flag.String("assets", "data", "directory holding images/, sfx/ and music")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory checked for tuning files before the embedded copies")
	levelDir := flag.String("levels", levels.Dir, "directory checked for level files before the embedded copies")
	scale := flag.Int("scale", 0, "window scale (default from game.yaml)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	prefabs.Dir = *prefabDir
	levels.Dir = *levelDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{
		Level:        *level,
		Debug:        *debug,
		AllAbilities: *allAbilities,
		Mute:         *mute,
		Seed:         *seed,
		AssetsDir:    *assetsDir,
	})
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer game.Close()

	s := *scale
	if s <= 0 {
		s = game.world.Specs.Game.Scale
	}
	s = max(s, 1)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.DisplayWidth*s, common.DisplayHeight*s)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(common.TPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
