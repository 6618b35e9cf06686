package system

import (
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/tilemap"
)

// Art is everything the world draws with.
type Art interface {
	obj.Assets
	Tile(kind string, variant int) *ebiten.Image
	Images(key string) []*ebiten.Image
}

// Config collects the world's collaborators. Zero values get defaults.
type Config struct {
	Specs *prefabs.Specs
	Art   Art
	Sound obj.SoundPlayer
	Rand  *rand.Rand

	// AllAbilities unlocks every ability and the gun after each load.
	AllAbilities bool
	Debug        bool

	LevelCount int
	LoadLevel  func(index int) (*tilemap.Tilemap, error)
}

// World owns the level and every entity in it, and runs one simulation step
// per Update.
type World struct {
	Specs *prefabs.Specs
	Debug bool

	Level   int
	Tiles   *tilemap.Tilemap
	Player  *obj.Player
	Enemies []*obj.Enemy
	Items   []*obj.Item
	Leaves  []common.Rect
	Clouds  *obj.Clouds
	Effects *obj.Effects

	Camera     *obj.Camera
	Transition *obj.Transition

	// Dead counts ticks since the player died; zero while alive.
	Dead      int
	TimeStop  bool
	TimeMeter float64
	Ticks     int

	cfg     Config
	art     Art
	scripts *obj.ScriptCache
}

// NewWorld builds a world and loads level.
func NewWorld(cfg Config, level int) (*World, error) {
	if cfg.Specs == nil {
		specs, err := prefabs.LoadAll()
		if err != nil {
			return nil, err
		}
		cfg.Specs = specs
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(0, 0))
	}
	if cfg.LoadLevel == nil {
		cfg.LoadLevel = tilemap.LoadLevel
	}
	if cfg.LevelCount <= 0 {
		cfg.LevelCount = levels.Count()
	}

	w := &World{
		Specs:      cfg.Specs,
		Debug:      cfg.Debug,
		cfg:        cfg,
		art:        cfg.Art,
		scripts:    obj.NewScriptCache(),
		Camera:     obj.NewCamera(common.DisplayWidth, common.DisplayHeight),
		Transition: obj.NewTransition(cfg.Specs.Game.Transition.Length),
	}
	var assets obj.Assets
	if cfg.Art != nil {
		assets = cfg.Art
	}
	w.Effects = obj.NewEffects(cfg.Rand, assets, cfg.Sound)
	w.Effects.Events.Subscribe(w.logCombat)
	w.applyShake(cfg.Specs.Game.Shake)
	w.Camera.SetSmooth(cfg.Specs.Game.Camera.Smoothing)

	var clouds []*ebiten.Image
	if cfg.Art != nil {
		clouds = cfg.Art.Images("clouds")
	}
	w.Clouds = obj.NewClouds(clouds, cfg.Specs.Game.Clouds.Count, cfg.Rand)

	if err := w.Load(level); err != nil {
		return nil, err
	}
	return w, nil
}

// LevelCount returns how many levels the world can advance through.
func (w *World) LevelCount() int {
	return w.cfg.LevelCount
}

func (w *World) assets() obj.Assets {
	if w.art == nil {
		return nil
	}
	return w.art
}

// Debugf logs only when debug mode is on.
func (w *World) Debugf(format string, args ...any) {
	if w == nil || !w.Debug {
		return
	}
	log.Printf("world: "+format, args...)
}

func (w *World) logCombat(evt component.CombatEvent) {
	w.Debugf("tick %d %s %s -> %s %q at (%.0f, %.0f)", w.Ticks, evt.Type, evt.Source, evt.Target, evt.Kind, evt.PosX, evt.PosY)
}

// Update advances the simulation by one tick.
func (w *World) Update(in *obj.Input) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	if in == nil {
		in = &obj.Input{}
	}
	w.Ticks++
	game := w.Specs.Game
	fx := w.Effects

	fx.Shake = max(0, fx.Shake-1)

	if len(w.Enemies) == 0 {
		if w.Transition.Close() {
			next := min(w.Level+1, w.cfg.LevelCount-1)
			w.Debugf("level %d cleared, loading %d", w.Level, next)
			return w.Load(next)
		}
	}
	w.Transition.Opening()

	w.updateTimeMeter()

	if w.Dead > 0 {
		w.Dead++
		if w.Dead >= game.Death.CloseAfter {
			w.Transition.SetClosing(w.Transition.Value + 1)
		}
		if w.Dead > game.Death.ReloadAfter {
			w.Debugf("reloading level %d after death", w.Level)
			return w.Load(w.Level)
		}
	}

	w.Camera.Update(w.Player.Center())

	w.spawnLeaves()
	if !w.TimeStop {
		w.Clouds.Update()
	}

	tick := &obj.Tick{
		Tiles:    w.Tiles,
		Effects:  fx,
		Player:   w.Player,
		Enemies:  w.Enemies,
		TimeStop: w.TimeStop,
	}

	filterUpdate(&w.Enemies, func(e *obj.Enemy) bool { return e.Update(tick) })
	tick.Enemies = w.Enemies

	if w.Dead == 0 {
		w.handleActions(in)
		w.Player.Update(tick, cp.Vector{X: in.MoveX})
	}

	filterUpdate(&fx.Projectiles, func(p *obj.Projectile) bool { return p.Update(tick) })
	filterUpdate(&fx.Sparks, func(s *obj.Spark) bool { return s.Update() })
	filterUpdate(&w.Items, func(it *obj.Item) bool { return it.Update(tick) })
	filterUpdate(&fx.Particles, func(p *obj.Particle) bool { return p.Update() })

	w.resolveCombat()

	if w.Dead == 0 && w.Player.Dead() {
		w.Dead = 1
		w.TimeStop = false
		w.Debugf("player died on level %d", w.Level)
	}
	return nil
}

func (w *World) handleActions(in *obj.Input) {
	fx := w.Effects
	if in.TimeStopPressed {
		w.ToggleTimeStop()
	}
	if in.JumpPressed {
		w.Player.Jump(fx)
	}
	if in.DashPressed {
		w.Player.Dash(fx)
	}
	if in.ShootPressed {
		w.Player.Shoot(fx)
	}
}

// ToggleTimeStop flips time-stop when the ability is unlocked and the meter
// has charge. It returns the new state.
func (w *World) ToggleTimeStop() bool {
	if !w.Player.Abilities.TimeStop {
		return w.TimeStop
	}
	if w.TimeStop {
		w.TimeStop = false
	} else if w.TimeMeter > 0 {
		w.TimeStop = true
	}
	return w.TimeStop
}

func (w *World) updateTimeMeter() {
	if !w.Player.Abilities.TimeStop {
		w.TimeStop = false
		return
	}
	spec := w.Specs.Game.TimeStop
	if w.TimeStop {
		w.TimeMeter -= spec.Drain
		if w.TimeMeter <= 0 {
			w.TimeMeter = 0
			w.TimeStop = false
		}
		return
	}
	w.TimeMeter = min(spec.Max, w.TimeMeter+spec.Refill)
}

func (w *World) spawnLeaves() {
	fx := w.Effects
	spec := w.Specs.Game.Leaves
	for _, r := range w.Leaves {
		if fx.Rand.Float64()*spec.AreaDivisor >= r.Area() {
			continue
		}
		pos := cp.Vector{X: r.X + fx.Rand.Float64()*r.W, Y: r.Y + fx.Rand.Float64()*r.H}
		vel := cp.Vector{X: spec.Velocity[0], Y: spec.Velocity[1]}
		p := fx.AddParticle(obj.ParticleLeaf, pos, vel, fx.Rand.IntN(21))
		p.Sway = spec.Sway
	}
}

// filterUpdate calls update on a snapshot of list and drops the elements it
// reports as finished. Elements appended to list during the pass are kept.
func filterUpdate[T any](list *[]T, update func(T) bool) {
	n := len(*list)
	snapshot := slices.Clone(*list)
	kept := make([]T, 0, n)
	for _, v := range snapshot {
		if !update(v) {
			kept = append(kept, v)
		}
	}
	*list = append(kept, (*list)[n:]...)
}

// ApplySpecs pushes reloaded tuning into live entities.
func (w *World) ApplySpecs(specs *prefabs.Specs) {
	if w == nil || specs == nil {
		return
	}
	w.Specs = specs
	w.Player.ApplySpec(specs.Player)
	for _, e := range w.Enemies {
		if spec, ok := specs.Enemies[e.Name]; ok {
			e.Spec = spec
			e.NoGravity = spec.Float
		}
	}
	w.applyShake(specs.Game.Shake)
	w.Camera.SetSmooth(specs.Game.Camera.Smoothing)
	if specs.Game.Transition.Length > 0 {
		w.Transition.Length = specs.Game.Transition.Length
	}
	w.TimeMeter = min(w.TimeMeter, specs.Game.TimeStop.Max)
}

func (w *World) applyShake(s prefabs.ShakeSpec) {
	w.Effects.HitShake = s.OnHit
	w.Effects.DefeatShake = s.OnDefeat
}

// ReloadScripts recompiles enemy scripts and gives scripted enemies fresh
// behaviors.
func (w *World) ReloadScripts() {
	if w == nil {
		return
	}
	w.scripts.Invalidate()
	for _, e := range w.Enemies {
		if e.Spec.Script != "" {
			e.Behavior = obj.BehaviorFor(e.Spec, w.scripts)
		}
	}
}

// Snapshot describes the current state for bug reports.
func (w *World) Snapshot() string {
	if w == nil {
		return ""
	}
	var b strings.Builder
	p := w.Player
	fmt.Fprintf(&b, "level %d/%d tick %d dead %d transition %d\n", w.Level, w.cfg.LevelCount-1, w.Ticks, w.Dead, w.Transition.Value)
	fmt.Fprintf(&b, "player pos=(%.2f, %.2f) vel=(%.2f, %.2f) air=%d jumps=%d dash=%d wall=%t gun=%t hits=%d/%d state=%s\n",
		p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y, p.AirTime, p.Jumps, p.Dashing, p.WallSlide, p.HasGun, p.Health.Hits, p.Health.Max, p.StateName())
	fmt.Fprintf(&b, "abilities %+v\n", p.Abilities.Abilities)
	fmt.Fprintf(&b, "time stop %t meter %.1f\n", w.TimeStop, w.TimeMeter)
	for _, e := range w.Enemies {
		fmt.Fprintf(&b, "enemy %s pos=(%.2f, %.2f) walking=%d defeated=%t\n", e.Name, e.Pos.X, e.Pos.Y, e.Walking, e.Defeated)
	}
	for _, it := range w.Items {
		fmt.Fprintf(&b, "item %s pos=(%.0f, %.0f)\n", it.Kind, it.Pos.X, it.Pos.Y)
	}
	fmt.Fprintf(&b, "projectiles %d sparks %d particles %d\n", len(w.Effects.Projectiles), len(w.Effects.Sparks), len(w.Effects.Particles))
	return b.String()
}
