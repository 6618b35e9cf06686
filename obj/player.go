package obj

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

// playerState picks the visible action after physics has run. Ground, air
// and wall states only drive animation; jump charges and the dash timer are
// tracked separately because they overlap with all three.
type playerState interface {
	Name() string
	OnPhysics(p *Player, movement cp.Vector)
}

type groundState struct{}

func (groundState) Name() string { return "ground" }
func (groundState) OnPhysics(p *Player, movement cp.Vector) {
	if p.airborne() {
		p.setState(stateAir)
		return
	}
	if movement.X != 0 {
		p.SetAction("run")
	} else {
		p.SetAction("idle")
	}
}

type airState struct{}

func (airState) Name() string { return "air" }
func (airState) OnPhysics(p *Player, movement cp.Vector) {
	if p.WallSlide {
		p.setState(stateWall)
		return
	}
	if !p.airborne() {
		p.setState(stateGround)
		return
	}
	p.SetAction("jump")
}

type wallState struct{}

func (wallState) Name() string { return "wall" }
func (wallState) OnPhysics(p *Player, movement cp.Vector) {
	if !p.WallSlide {
		p.setState(stateAir)
		return
	}
	p.SetAction("wall_slide")
}

var (
	stateGround playerState = groundState{}
	stateAir    playerState = airState{}
	stateWall   playerState = wallState{}
)

// Player is the controllable character.
type Player struct {
	PhysicsEntity

	Spec      prefabs.PlayerSpec
	Abilities *component.AbilitySet
	Health    *component.Health

	Jumps         int
	Dashing       int
	WallSlide     bool
	ShootCooldown int
	HasGun        bool

	state playerState
}

// NewPlayer creates a player at pos. Ability defaults come from the tuning's
// abilities block.
func NewPlayer(pos cp.Vector, spec prefabs.PlayerSpec, assets Assets) *Player {
	size := cp.Vector{X: spec.Size.W(), Y: spec.Size.H()}
	if size.X <= 0 || size.Y <= 0 {
		size = cp.Vector{X: 8, Y: 15}
	}
	p := &Player{
		PhysicsEntity: NewPhysicsEntity("player", pos, size, assets),
		Abilities:     component.NewAbilitySet(AbilitiesFromSpec(spec.Ability)),
		Health:        component.NewHealth(spec.Health.MaxHits),
		state:         stateGround,
	}
	p.ApplySpec(spec)
	p.Abilities.OnUnlock = func(a component.Ability) {
		if a == component.AbilityDoubleJump {
			p.Jumps = p.Abilities.MaxJumps()
		}
	}
	p.Jumps = p.Abilities.MaxJumps()
	return p
}

// AbilitiesFromSpec converts an abilities block into flags. Unknown names
// are logged and ignored.
func AbilitiesFromSpec(m map[string]bool) component.Abilities {
	set := component.AbilitySet{}
	for name, on := range m {
		a, ok := component.ParseAbility(name)
		if !ok {
			log.Printf("obj: unknown ability %q in player spec", name)
			continue
		}
		if on {
			set.Unlock(a)
		}
	}
	return set.Abilities
}

// ApplySpec swaps in new tuning without touching progress.
func (p *Player) ApplySpec(spec prefabs.PlayerSpec) {
	if p == nil {
		return
	}
	p.Spec = spec
	p.Gravity = spec.Physics.Gravity
	p.Terminal = spec.Physics.TerminalVelocity
	if p.Gravity == 0 {
		p.Gravity = defaultGravity
	}
	if p.Terminal == 0 {
		p.Terminal = defaultTerminal
	}
	p.Abilities.Defaults = AbilitiesFromSpec(spec.Ability)
	if spec.Health.MaxHits > 0 {
		p.Health.Max = spec.Health.MaxHits
	}
}

// Respawn puts the player back at pos with level-start abilities and no
// hits taken.
func (p *Player) Respawn(pos cp.Vector) {
	if p == nil {
		return
	}
	p.Pos = pos
	p.Vel = cp.Vector{}
	p.AirTime = 0
	p.Dashing = 0
	p.WallSlide = false
	p.ShootCooldown = 0
	p.HasGun = false
	p.Flip = false
	p.Abilities.Reload()
	p.Health.Reset()
	p.Jumps = p.Abilities.MaxJumps()
	p.setState(stateGround)
	p.SetAction("idle")
}

func (p *Player) setState(s playerState) {
	p.state = s
}

// StateName returns the name of the current movement state.
func (p *Player) StateName() string {
	if p == nil || p.state == nil {
		return ""
	}
	return p.state.Name()
}

func (p *Player) airborne() bool {
	return p.AirTime > p.Spec.Wall.AirborneAfter
}

// Dead reports whether the player has run out of hits.
func (p *Player) Dead() bool {
	return p == nil || !p.Health.IsAlive()
}

// DashInvulnerable reports whether the dash is still in its untouchable
// opening.
func (p *Player) DashInvulnerable() bool {
	return abs(p.Dashing) >= p.Spec.Dash.InvulnerableFrom
}

// Invulnerable reports whether a hit would be ignored right now.
func (p *Player) Invulnerable() bool {
	return p.DashInvulnerable() || p.Health.IFrames > 0
}

// Update runs one simulation step with the given horizontal intent.
func (p *Player) Update(t *Tick, movement cp.Vector) {
	if p == nil {
		return
	}
	if t.TimeStop {
		p.VerticalFrozen = true
	}
	p.PhysicsEntity.Update(t.Tiles, movement)

	if !t.TimeStop {
		p.AirTime++
	}
	if p.Collisions.Down {
		p.AirTime = 0
		p.Jumps = p.Abilities.MaxJumps()
	}

	p.WallSlide = false
	if p.Abilities.WallSlide && (p.Collisions.Left || p.Collisions.Right) && p.airborne() && p.Vel.Y >= 0 {
		p.WallSlide = true
		p.Vel.Y = min(p.Vel.Y, p.Spec.Wall.SlideSpeed)
		p.Flip = p.Collisions.Left
	}
	p.state.OnPhysics(p, movement)

	p.updateDash(t.Effects)

	p.Vel.X = common.Approach(p.Vel.X, 0, p.Spec.Physics.Friction)

	if p.ShootCooldown > 0 {
		p.ShootCooldown--
	}
	p.Health.Tick()
}

func (p *Player) updateDash(fx *Effects) {
	d := p.Spec.Dash
	if n := abs(p.Dashing); n == d.Duration || n == d.BurstUntil {
		c := p.Center()
		for i := 0; i < 20; i++ {
			angle := fx.Rand.Float64() * math.Pi * 2
			speed := fx.Rand.Float64()*0.5 + 0.5
			fx.AddParticle(ParticleDust, c, cp.ForAngle(angle).Mult(speed), fx.Rand.IntN(8))
		}
	}
	if p.Dashing > 0 {
		p.Dashing--
	} else if p.Dashing < 0 {
		p.Dashing++
	}
	if abs(p.Dashing) > d.BurstUntil {
		dir := sign(p.Dashing)
		p.Vel.X = dir * d.Speed
		if abs(p.Dashing) == d.BurstUntil+1 {
			p.Vel.X *= d.Settle
		}
		vel := cp.Vector{X: dir * fx.Rand.Float64() * 3}
		fx.AddParticle(ParticleDust, p.Center(), vel, fx.Rand.IntN(8))
	}
}

// Jump uses one jump charge, or kicks off the wall when wall sliding with
// wall jump unlocked. It returns false when nothing happened.
func (p *Player) Jump(fx *Effects) bool {
	if p == nil || p.Dead() {
		return false
	}
	if p.WallSlide && p.Abilities.WallJump {
		dir := 1.0
		if !p.Flip {
			dir = -1
		}
		p.Vel.X = dir * p.Spec.Wall.KickX
		p.Vel.Y = -p.Spec.Wall.KickY
		p.AirTime = p.Spec.Jump.AirTime
		p.Jumps = max(0, p.Jumps-1)
		p.Flip = dir < 0
		fx.Play("jump")
		return true
	}
	if p.Jumps <= 0 {
		return false
	}
	p.Vel.Y = -p.Spec.Jump.Velocity
	p.Jumps--
	p.AirTime = p.Spec.Jump.AirTime
	fx.Play("jump")
	return true
}

// Dash starts a dash in the facing direction. It does nothing while the
// ability is locked or a dash is already running.
func (p *Player) Dash(fx *Effects) bool {
	if p == nil || p.Dead() || !p.Abilities.Dash || p.Dashing != 0 {
		return false
	}
	p.Dashing = p.Spec.Dash.Duration
	if p.Flip {
		p.Dashing = -p.Dashing
	}
	fx.Play("dash")
	return true
}

// Shoot fires a projectile in the facing direction once the gun is held and
// the cooldown has elapsed.
func (p *Player) Shoot(fx *Effects) bool {
	if p == nil || p.Dead() || !p.HasGun || p.ShootCooldown > 0 {
		return false
	}
	speed := p.Spec.Shoot.Speed
	angle := 0.0
	if p.Flip {
		speed = -speed
		angle = math.Pi
	}
	c := p.Center()
	fx.AddProjectile(NewProjectile(c, speed, component.FactionPlayer, fx.Assets))
	fx.SparkFan(c, angle)
	p.ShootCooldown = p.Spec.Shoot.Cooldown
	fx.Play("shoot")
	return true
}

// Hurt registers a hit from source. It returns false when the player was
// invulnerable.
func (p *Player) Hurt(fx *Effects, source component.Faction) bool {
	if p == nil || p.Dead() || p.Invulnerable() {
		return false
	}
	c := p.Center()
	evt := component.CombatEvent{
		Type:   component.EventHit,
		Source: source,
		Target: component.FactionPlayer,
		Kind:   "player",
		PosX:   c.X,
		PosY:   c.Y,
	}
	if !p.Health.ApplyHit() {
		return false
	}
	p.Health.StartIFrames(p.Spec.Health.IFrames)
	fx.Burst(c)
	fx.ShakeAtLeast(fx.HitShake)
	fx.Play("hit")
	fx.Emit(evt)
	if p.Dead() {
		evt.Type = component.EventDeath
		fx.Emit(evt)
	}
	return true
}

// Kill ends the current life regardless of remaining hits, as when falling
// out of the level.
func (p *Player) Kill(fx *Effects) {
	if p.Dead() {
		return
	}
	c := p.Center()
	evt := component.CombatEvent{
		Type:   component.EventDeath,
		Source: component.FactionEnvironment,
		Target: component.FactionPlayer,
		Kind:   "player",
		PosX:   c.X,
		PosY:   c.Y,
	}
	p.Health.Kill()
	fx.ShakeAtLeast(fx.HitShake)
	fx.Emit(evt)
}

func (p *Player) Draw(screen *ebiten.Image, offset cp.Vector) {
	if p == nil || abs(p.Dashing) > p.Spec.Dash.BurstUntil {
		return
	}
	if p.Health.IFrames > 0 && (p.Health.IFrames/4)%2 == 1 {
		return
	}
	p.PhysicsEntity.Draw(screen, offset)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
