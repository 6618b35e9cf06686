package obj

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
)

// SoundPlayer plays a named sound effect.
type SoundPlayer interface {
	Play(name string)
}

// Effects owns the short-lived things entities spawn during a tick. The
// world passes the same Effects to every update so nothing needs globals.
type Effects struct {
	Rand   *rand.Rand
	Assets Assets
	Sound  SoundPlayer
	Events *component.CombatEventEmitter

	Sparks      []*Spark
	Particles   []*Particle
	Projectiles []*Projectile
	Shake       float64

	// shake raised when a hit lands on the player and when an enemy is defeated
	HitShake    float64
	DefeatShake float64
}

const defaultShake = 16

// NewEffects creates an empty arena. A nil rng is replaced by a fixed seed.
func NewEffects(rng *rand.Rand, assets Assets, sound SoundPlayer) *Effects {
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}
	return &Effects{
		Rand:   rng,
		Assets: assets,
		Sound:  sound,
		Events: &component.CombatEventEmitter{},

		HitShake:    defaultShake,
		DefeatShake: defaultShake,
	}
}

// Clear drops every live effect, as on level load.
func (fx *Effects) Clear() {
	fx.Sparks = nil
	fx.Particles = nil
	fx.Projectiles = nil
	fx.Shake = 0
}

func (fx *Effects) AddSpark(pos cp.Vector, angle, speed float64) {
	fx.Sparks = append(fx.Sparks, NewSpark(pos, angle, speed))
}

// AddParticle spawns a particle whose animation starts at frame.
func (fx *Effects) AddParticle(kind string, pos, vel cp.Vector, frame int) *Particle {
	var anim *component.Animation
	if fx.Assets != nil {
		anim = fx.Assets.Animation("particle/" + kind)
	}
	p := NewParticle(kind, pos, vel, anim, frame)
	fx.Particles = append(fx.Particles, p)
	return p
}

func (fx *Effects) AddProjectile(p *Projectile) {
	if p == nil {
		return
	}
	fx.Projectiles = append(fx.Projectiles, p)
}

// ShakeAtLeast raises the screen shake to v.
func (fx *Effects) ShakeAtLeast(v float64) {
	fx.Shake = max(fx.Shake, v)
}

// ShakeOffset returns a random offset within ±Shake/2.
func (fx *Effects) ShakeOffset() cp.Vector {
	return cp.Vector{
		X: fx.Rand.Float64()*fx.Shake - fx.Shake/2,
		Y: fx.Rand.Float64()*fx.Shake - fx.Shake/2,
	}
}

// Play plays a sound if a player is attached.
func (fx *Effects) Play(name string) {
	if fx != nil && fx.Sound != nil {
		fx.Sound.Play(name)
	}
}

func (fx *Effects) Emit(evt component.CombatEvent) {
	if fx == nil {
		return
	}
	fx.Events.Emit(evt)
}

// Burst throws 30 sparks and particles out of center.
func (fx *Effects) Burst(center cp.Vector) {
	for i := 0; i < 30; i++ {
		angle := fx.Rand.Float64() * math.Pi * 2
		speed := fx.Rand.Float64() * 5
		fx.AddSpark(center, angle, 2+fx.Rand.Float64())
		vel := cp.ForAngle(angle + math.Pi).Mult(speed * 0.5)
		fx.AddParticle(ParticleDust, center, vel, fx.Rand.IntN(8))
	}
}

// SparkRing emits four sparks at right angles to each other around pos.
func (fx *Effects) SparkRing(pos cp.Vector) {
	base := fx.Rand.Float64() * math.Pi / 2
	for i := 0; i < 4; i++ {
		fx.AddSpark(pos, base+float64(i)*math.Pi/2, 1+fx.Rand.Float64())
	}
}

// SparkFan emits four sparks pointing roughly along angle.
func (fx *Effects) SparkFan(pos cp.Vector, angle float64) {
	for i := 0; i < 4; i++ {
		fx.AddSpark(pos, fx.Rand.Float64()-0.5+angle, 2+fx.Rand.Float64())
	}
}

// Tick is everything an entity may read or spawn into during one update.
type Tick struct {
	Tiles    CollisionService
	Effects  *Effects
	Player   *Player
	Enemies  []*Enemy
	TimeStop bool
}
