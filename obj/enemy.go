package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

// EnemyBehavior decides an enemy's horizontal intent for one tick. It may
// also adjust the enemy directly (velocity, facing, timers) or spawn
// projectiles through the tick's effects.
type EnemyBehavior interface {
	Think(e *Enemy, t *Tick) cp.Vector
}

// Enemy is a physics entity driven by a behavior.
type Enemy struct {
	PhysicsEntity

	Name     string
	Variant  int
	Spec     prefabs.EnemySpec
	Behavior EnemyBehavior

	// Walking counts down the ticks left in the current walk.
	Walking  int
	Age      int
	Defeated bool
}

// NewEnemy creates an enemy from its spec. Animations are looked up under
// the tuning's anim name.
func NewEnemy(name string, pos cp.Vector, spec prefabs.EnemySpec, assets Assets, behavior EnemyBehavior) *Enemy {
	kind := spec.Anim
	if kind == "" {
		kind = name
	}
	e := &Enemy{
		PhysicsEntity: NewPhysicsEntity(kind, pos, cp.Vector{X: spec.Size.W(), Y: spec.Size.H()}, assets),
		Name:          name,
		Variant:       spec.Variant,
		Spec:          spec,
		Behavior:      behavior,
	}
	e.NoGravity = spec.Float
	if e.Behavior == nil {
		e.Behavior = DefaultBehavior(spec)
	}
	return e
}

// Update runs one tick and reports true once the defeat animation has
// finished and the enemy can be removed.
func (e *Enemy) Update(t *Tick) bool {
	if e.Defeated {
		e.Anim.Update()
		return e.Anim.Done()
	}
	if t.TimeStop {
		return false
	}
	e.Age++
	movement := e.Behavior.Think(e, t)
	e.PhysicsEntity.Update(t.Tiles, movement)
	return false
}

// Defeat starts the defeat animation and throws out sparks. Calling it again
// does nothing.
func (e *Enemy) Defeat(fx *Effects) {
	if e.Defeated {
		return
	}
	e.Defeated = true
	e.Vel = cp.Vector{}
	e.SetAction("defeat")

	c := e.Center()
	fx.Burst(c)
	fx.AddSpark(c, 0, 5+fx.Rand.Float64())
	fx.AddSpark(c, math.Pi, 5+fx.Rand.Float64())
	fx.ShakeAtLeast(fx.DefeatShake)
	fx.Play("hit")
	fx.Emit(component.CombatEvent{
		Type:   component.EventDefeat,
		Source: component.FactionPlayer,
		Target: component.FactionEnemy,
		Kind:   e.Name,
		PosX:   c.X,
		PosY:   c.Y,
	})
}

// Touches reports whether the enemy hurts the player on contact.
func (e *Enemy) Touches(p *Player) bool {
	return !e.Defeated && e.Spec.Contact && e.Rect().Intersects(p.Rect())
}

func (e *Enemy) Draw(screen *ebiten.Image, offset cp.Vector) {
	e.PhysicsEntity.Draw(screen, offset)
}
