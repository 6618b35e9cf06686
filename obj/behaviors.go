package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

// DefaultBehavior picks the built-in behavior that matches a spec.
func DefaultBehavior(spec prefabs.EnemySpec) EnemyBehavior {
	if spec.Float {
		return Drift{}
	}
	return Walker{}
}

// Walker idles until a random walk starts, walks until the timer runs out
// and turns around at walls and ledges. Patrol walkers never stop; others
// may shoot at the end of a walk or charge a player they can see.
type Walker struct{}

func (Walker) Think(e *Enemy, t *Tick) cp.Vector {
	fx := t.Effects
	spec := e.Spec
	var movement cp.Vector

	if e.Walking == 0 && spec.Patrol {
		e.Walking = e.walkTime(fx)
	}

	if e.Walking > 0 {
		speed := spec.Speed
		if spec.ChargeSpeed > 0 && e.seesPlayer(t.Player) {
			speed = spec.ChargeSpeed
		}
		probeX := e.Center().X + 7
		if e.Flip {
			probeX = e.Center().X - 7
		}
		probeY := e.Pos.Y + e.Size.Y + 8
		if t.Tiles != nil && t.Tiles.SolidCheck(probeX, probeY) {
			if e.Collisions.Left || e.Collisions.Right {
				e.Flip = !e.Flip
			} else if e.Flip {
				movement.X = -speed
			} else {
				movement.X = speed
			}
		} else {
			e.Flip = !e.Flip
		}

		e.Walking--
		if e.Walking == 0 && spec.ProjectileSpeed > 0 {
			e.shoot(t)
		}
	} else if fx.Rand.Float64() < spec.IdleChance {
		e.Walking = e.walkTime(fx)
	}

	if movement.X != 0 {
		e.SetAction("run")
	} else {
		e.SetAction("idle")
	}
	return movement
}

func (e *Enemy) walkTime(fx *Effects) int {
	lo, hi := e.Spec.WalkMin, e.Spec.WalkMax
	if hi <= lo {
		return max(lo, 1)
	}
	return lo + fx.Rand.IntN(hi-lo+1)
}

// seesPlayer reports whether the player is level with the enemy, within
// sight and on the side it faces.
func (e *Enemy) seesPlayer(p *Player) bool {
	if p == nil || p.Dead() {
		return false
	}
	d := p.Pos.Sub(e.Pos)
	if math.Abs(d.Y) >= e.Spec.SightY {
		return false
	}
	if e.Spec.SightX > 0 && math.Abs(d.X) > e.Spec.SightX {
		return false
	}
	return (e.Flip && d.X < 0) || (!e.Flip && d.X > 0)
}

func (e *Enemy) shoot(t *Tick) {
	if !e.seesPlayer(t.Player) {
		return
	}
	fx := t.Effects
	c := e.Center()
	speed := e.Spec.ProjectileSpeed
	angle := 0.0
	muzzle := cp.Vector{X: c.X + 7, Y: c.Y}
	if e.Flip {
		speed = -speed
		angle = math.Pi
		muzzle.X = c.X - 7
	}
	fx.AddProjectile(NewProjectile(muzzle, speed, component.FactionEnemy, fx.Assets))
	fx.SparkFan(muzzle, angle)
	fx.Play("shoot")
}

// Drift floats toward the player when it is within horizontal sight,
// bobbing up and down.
type Drift struct{}

func (Drift) Think(e *Enemy, t *Tick) cp.Vector {
	bob := math.Sin(float64(e.Age)*0.05) * 0.3
	p := t.Player
	if p == nil || p.Dead() {
		e.Vel = cp.Vector{Y: bob}
		return cp.Vector{}
	}
	d := p.Center().Sub(e.Center())
	if math.Abs(d.X) > e.Spec.SightX || d.Length() < 1 {
		e.Vel = cp.Vector{Y: bob}
		e.SetAction("idle")
		return cp.Vector{}
	}
	v := d.Normalize().Mult(e.Spec.Speed)
	e.Vel = cp.Vector{X: v.X, Y: v.Y + bob}
	e.Flip = d.X < 0
	e.SetAction("idle")
	return cp.Vector{}
}
