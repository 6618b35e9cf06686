package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/component"
)

const (
	ParticleLeaf = "leaf"
	ParticleDust = "particle"
)

// Particle drifts along Vel for as long as its animation plays.
type Particle struct {
	Kind string
	Pos  cp.Vector
	Vel  cp.Vector
	Anim *component.Animation
	// Sway is the sideways wobble amplitude applied to leaves.
	Sway float64
}

func NewParticle(kind string, pos, vel cp.Vector, anim *component.Animation, frame int) *Particle {
	p := &Particle{Kind: kind, Pos: pos, Vel: vel, Anim: anim}
	if kind == ParticleLeaf {
		p.Sway = 0.3
	}
	p.Anim.SetFrame(frame)
	return p
}

// Update moves the particle and reports true when its animation finished
// before this tick.
func (p *Particle) Update() bool {
	kill := p.Anim.Done()
	p.Pos = p.Pos.Add(p.Vel)
	p.Anim.Update()
	if p.Sway != 0 {
		p.Pos.X += math.Sin(float64(p.Anim.Frame())*0.035) * p.Sway
	}
	return kill
}

func (p *Particle) Draw(screen *ebiten.Image, offset cp.Vector) {
	img := p.Anim.Img()
	if screen == nil || img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(p.Pos.X-offset.X-float64(b.Dx())/2, p.Pos.Y-offset.Y-float64(b.Dy())/2)
	screen.DrawImage(img, op)
}
