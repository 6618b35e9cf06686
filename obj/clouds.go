package obj

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Cloud is a background sprite drawn with parallax.
type Cloud struct {
	Pos   cp.Vector
	Speed float64
	Depth float64
	img   *ebiten.Image
}

// Clouds drifts a set of clouds across a wrapping band.
type Clouds struct {
	Clouds []*Cloud
}

// NewClouds scatters count clouds using images picked at random.
func NewClouds(images []*ebiten.Image, count int, rng *rand.Rand) *Clouds {
	c := &Clouds{}
	for i := 0; i < count; i++ {
		var img *ebiten.Image
		if len(images) > 0 {
			img = images[rng.IntN(len(images))]
		}
		c.Clouds = append(c.Clouds, &Cloud{
			Pos:   cp.Vector{X: rng.Float64() * 99999, Y: rng.Float64() * 99999},
			Speed: rng.Float64()*0.05 + 0.05,
			Depth: rng.Float64()*0.6 + 0.2,
			img:   img,
		})
	}
	// far clouds first so near ones are drawn on top
	slices.SortStableFunc(c.Clouds, func(a, b *Cloud) int { return cmp.Compare(a.Depth, b.Depth) })
	return c
}

func (c *Clouds) Update() {
	if c == nil {
		return
	}
	for _, cl := range c.Clouds {
		cl.Pos.X += cl.Speed
	}
}

// Draw draws every cloud shifted by offset*depth, wrapping around the
// screen plus one cloud of margin.
func (c *Clouds) Draw(screen *ebiten.Image, offset cp.Vector) {
	if c == nil || screen == nil {
		return
	}
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	for _, cl := range c.Clouds {
		if cl.img == nil {
			continue
		}
		w, h := float64(cl.img.Bounds().Dx()), float64(cl.img.Bounds().Dy())
		x := wrap(cl.Pos.X-offset.X*cl.Depth, sw+w) - w
		y := wrap(cl.Pos.Y-offset.Y*cl.Depth, sh+h) - h
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(cl.img, op)
	}
}

func wrap(v, n float64) float64 {
	if n <= 0 {
		return v
	}
	r := v - n*float64(int(v/n))
	if r < 0 {
		r += n
	}
	return r
}
