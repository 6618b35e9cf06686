package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
)

// ProjectileMaxAge is how many ticks a projectile lives without hitting anything.
const ProjectileMaxAge = 360

// Projectile is a bullet that travels horizontally until it hits a wall, a
// target, or expires.
type Projectile struct {
	Pos   cp.Vector
	Speed float64
	Age   int
	Team  component.Faction

	img *ebiten.Image
}

func NewProjectile(pos cp.Vector, speed float64, team component.Faction, assets Assets) *Projectile {
	p := &Projectile{Pos: pos, Speed: speed, Team: team}
	if assets != nil {
		p.img = assets.Image("projectile")
	}
	return p
}

// Update moves the projectile and reports true when it should be removed.
func (p *Projectile) Update(t *Tick) bool {
	if !t.TimeStop {
		p.Pos.X += p.Speed
	}
	p.Age++

	fx := t.Effects
	if t.Tiles != nil && t.Tiles.SolidCheck(p.Pos.X, p.Pos.Y) {
		base := 0.0
		if p.Speed > 0 {
			base = math.Pi
		}
		fx.SparkFan(p.Pos, base)
		return true
	}
	if p.Age > ProjectileMaxAge {
		return true
	}

	if p.Team.Hostile(component.FactionPlayer) {
		pl := t.Player
		if pl != nil && !pl.Dead() && !pl.DashInvulnerable() && pl.Rect().ContainsPoint(p.Pos.X, p.Pos.Y) {
			pl.Hurt(fx, p.Team)
			return true
		}
	}
	if p.Team.Hostile(component.FactionEnemy) {
		for _, e := range t.Enemies {
			if e.Defeated {
				continue
			}
			if e.Rect().ContainsPoint(p.Pos.X, p.Pos.Y) {
				e.Defeat(fx)
				return true
			}
		}
	}
	return false
}

func (p *Projectile) Draw(screen *ebiten.Image, offset cp.Vector) {
	if screen == nil {
		return
	}
	if p.img == nil {
		vector.DrawFilledRect(screen, float32(p.Pos.X-offset.X-2), float32(p.Pos.Y-offset.Y-1), 4, 2, color.White, false)
		return
	}
	b := p.img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(p.Pos.X-offset.X-float64(b.Dx())/2, p.Pos.Y-offset.Y-float64(b.Dy())/2)
	screen.DrawImage(p.img, op)
}
