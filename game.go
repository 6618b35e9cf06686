package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/audio"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/system"
	"golang.design/x/clipboard"
)

// Options are the command line choices NewGame needs.
type Options struct {
	// Level is the starting level; negative uses game.yaml.
	Level        int
	Debug        bool
	AllAbilities bool
	Mute         bool
	Seed         uint64
	AssetsDir    string
}

type Game struct {
	world *system.World
	input *obj.Input
	ui    *ebitenui.UI

	paused  bool
	quit    bool
	overlay bool
	debug   bool

	watcher *prefabs.Watcher

	speaker bool
	sounds  *audio.Sounds
	music   *audio.Music
	cancel  context.CancelFunc

	clipboardReady bool
	clipboardTried bool
}

func NewGame(opts Options) (*Game, error) {
	specs, err := prefabs.LoadAll()
	if err != nil {
		return nil, err
	}

	art, err := assets.NewLibrary(opts.AssetsDir)
	if err != nil {
		return nil, err
	}

	g := &Game{
		input:   obj.NewInput(),
		debug:   opts.Debug,
		overlay: opts.Debug,
	}

	cfg := system.Config{
		Specs:        specs,
		Art:          art,
		Rand:         rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		AllAbilities: opts.AllAbilities,
		Debug:        opts.Debug,
	}
	if !opts.Mute {
		g.startAudio(opts.AssetsDir, specs.Game.Audio)
		if g.sounds != nil {
			cfg.Sound = g.sounds
		}
	}

	level := opts.Level
	if level < 0 {
		level = specs.Game.StartLevel
	}
	g.world, err = system.NewWorld(cfg, level)
	if err != nil {
		g.Close()
		return nil, err
	}

	if opts.Debug {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) startAudio(dir string, spec prefabs.AudioSpec) {
	sink, err := audio.OpenSpeaker()
	if err != nil {
		log.Printf("game: audio disabled: %v", err)
		return
	}
	g.speaker = true
	g.sounds = audio.NewSounds(sink, dir, spec.Volumes)
	if spec.Ambient != "" {
		g.sounds.Loop(spec.Ambient)
	}

	var ctx context.Context
	ctx, g.cancel = context.WithCancel(context.Background())
	g.music = audio.NewMusic(sink, filepath.Join(dir, spec.Music), spec.Volumes["music"])
	g.music.Start(ctx)
}

// Close stops background work. It is safe to call more than once.
func (g *Game) Close() {
	if g == nil {
		return
	}
	if g.cancel != nil {
		g.cancel()
	}
	g.music.Stop()
	g.sounds.StopLoops()
	if g.speaker {
		audio.CloseSpeaker()
		g.speaker = false
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: close watcher: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.input.Update()
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.input.DebugPressed {
		g.overlay = !g.overlay
	}

	if g.paused {
		g.ui.Update()
		return nil
	}

	if g.debug {
		g.hotReload()
		if g.input.SnapshotPressed {
			g.copySnapshot()
		}
	}

	return g.world.Update(g.input)
}

func (g *Game) hotReload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("game: watcher: %v", err)
		}
	default:
	}

	for _, c := range g.watcher.Drain() {
		if c.Script {
			log.Printf("game: reloading script %s", c.Name)
			g.world.ReloadScripts()
			continue
		}
		if err := g.world.Specs.Reload(c.Name); err != nil {
			log.Printf("game: reload %s: %v", c.Name, err)
			continue
		}
		log.Printf("game: reloaded %s", c.Name)
		g.world.ApplySpecs(g.world.Specs)
	}
}

func (g *Game) copySnapshot() {
	snap := g.world.Snapshot()
	if !g.clipboardTried {
		g.clipboardTried = true
		if err := clipboard.Init(); err != nil {
			log.Printf("game: clipboard unavailable: %v", err)
		} else {
			g.clipboardReady = true
		}
	}
	if !g.clipboardReady {
		log.Printf("game: snapshot\n%s", snap)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(snap))
	log.Printf("game: snapshot copied to clipboard")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)

	if g.overlay {
		p := g.world.Player
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f  L%d  %s", ebiten.ActualFPS(), g.world.Level, p.StateName()), 2, 14)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("x %.1f y %.1f", p.Pos.X, p.Pos.Y), 2, 26)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("vx %.2f vy %.2f", p.Vel.X, p.Vel.Y), 2, 38)
	}

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.DisplayWidth, common.DisplayHeight
}
