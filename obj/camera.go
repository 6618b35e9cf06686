package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// Camera follows a target with easing and renders the world through a
// fixed-size offscreen image.
type Camera struct {
	// Scroll is the world-space top-left of the view.
	Scroll cp.Vector

	screenW int
	screenH int
	off     *ebiten.Image

	// smoothing divisor; the view closes 1/smooth of the gap each tick.
	smooth float64
	// world bounds in pixels (zero rect means unbounded)
	bounds common.Rect
}

// NewCamera creates a camera with the given logical screen size.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{screenW: screenW, screenH: screenH, smooth: 30}
}

func (c *Camera) SetSmooth(f float64) {
	if f < 1 {
		f = 1
	}
	c.smooth = f
}

// SetWorldBounds limits the view to the given world rect.
func (c *Camera) SetWorldBounds(r common.Rect) {
	c.bounds = r
}

// Size returns the logical screen size.
func (c *Camera) Size() (int, int) {
	return c.screenW, c.screenH
}

// Offset returns the scroll rounded to whole pixels, which is what entities
// should subtract when drawing.
func (c *Camera) Offset() cp.Vector {
	return cp.Vector{X: math.Floor(c.Scroll.X), Y: math.Floor(c.Scroll.Y)}
}

// Update eases the view so that target ends up in the middle of the screen.
func (c *Camera) Update(target cp.Vector) {
	want := c.want(target)
	c.Scroll.X += (want.X - c.Scroll.X) / c.smooth
	c.Scroll.Y += (want.Y - c.Scroll.Y) / c.smooth
}

// SnapTo immediately centers the view on target. Use after a level load.
func (c *Camera) SnapTo(target cp.Vector) {
	c.Scroll = c.want(target)
}

func (c *Camera) want(target cp.Vector) cp.Vector {
	halfW := float64(c.screenW) / 2
	halfH := float64(c.screenH) / 2
	want := cp.Vector{X: target.X - halfW, Y: target.Y - halfH}

	if c.bounds.W > 0 {
		if c.bounds.W < float64(c.screenW) {
			want.X = c.bounds.X + c.bounds.W/2 - halfW
		} else {
			want.X = common.Clamp(want.X, c.bounds.X, c.bounds.Right()-float64(c.screenW))
		}
	}
	if c.bounds.H > 0 {
		if c.bounds.H < float64(c.screenH) {
			want.Y = c.bounds.Y + c.bounds.H/2 - halfH
		} else {
			want.Y = common.Clamp(want.Y, c.bounds.Y, c.bounds.Bottom()-float64(c.screenH))
		}
	}
	return want
}

// Render clears the offscreen image, lets drawWorld fill it in view space,
// then scales it onto screen shifted by shake.
func (c *Camera) Render(screen *ebiten.Image, shake cp.Vector, drawWorld func(world *ebiten.Image)) {
	if c.off == nil {
		c.off = ebiten.NewImage(c.screenW, c.screenH)
	}

	c.off.Clear()
	if drawWorld != nil {
		drawWorld(c.off)
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	sx := float64(sw) / float64(c.screenW)
	sy := float64(sh) / float64(c.screenH)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Translate(shake.X, shake.Y)
	op.GeoM.Scale(sx, sy)
	screen.DrawImage(c.off, op)
}
