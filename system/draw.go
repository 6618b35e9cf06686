package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"golang.org/x/image/colornames"
)

var (
	skyColor      = colornames.Lightskyblue
	meterBorder   = color.Black
	meterBack     = colornames.Darkred
	meterFill     = colornames.Royalblue
	hitPipColor   = colornames.Crimson
	emptyPipColor = colornames.Dimgray
)

// Draw renders the world onto screen, scaling the logical display to fit.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	w.Camera.Render(screen, w.Effects.ShakeOffset(), w.drawView)
}

func (w *World) drawView(view *ebiten.Image) {
	offset := w.Camera.Offset()

	w.drawBackground(view)
	w.Clouds.Draw(view, offset)
	w.drawTiles(view, offset)

	for _, e := range w.Enemies {
		e.Draw(view, offset)
	}
	if w.Dead == 0 {
		w.Player.Draw(view, offset)
	}
	for _, p := range w.Effects.Projectiles {
		p.Draw(view, offset)
	}
	for _, s := range w.Effects.Sparks {
		s.Draw(view, offset)
	}
	for _, it := range w.Items {
		it.Draw(view, offset)
	}
	for _, p := range w.Effects.Particles {
		p.Draw(view, offset)
	}

	w.drawHUD(view)
	w.Transition.Draw(view)
}

func (w *World) drawBackground(view *ebiten.Image) {
	var bg *ebiten.Image
	if w.art != nil {
		bg = w.art.Image("background")
	}
	if bg == nil {
		view.Fill(skyColor)
		return
	}
	b := bg.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(view.Bounds().Dx())/float64(b.Dx()), float64(view.Bounds().Dy())/float64(b.Dy()))
	view.DrawImage(bg, op)
}

// drawTiles draws offgrid decoration first, then every grid tile in view.
func (w *World) drawTiles(view *ebiten.Image, offset cp.Vector) {
	if w.art == nil {
		return
	}
	for _, t := range w.Tiles.Offgrid() {
		img := w.art.Tile(t.Type, t.Variant)
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(t.Pos[0]-offset.X, t.Pos[1]-offset.Y)
		view.DrawImage(img, op)
	}

	size := float64(w.Tiles.TileSize)
	vw, vh := w.Camera.Size()
	x0 := int(math.Floor(offset.X / size))
	y0 := int(math.Floor(offset.Y / size))
	x1 := int(math.Floor((offset.X + float64(vw)) / size))
	y1 := int(math.Floor((offset.Y + float64(vh)) / size))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t, ok := w.Tiles.At(x, y)
			if !ok {
				continue
			}
			img := w.art.Tile(t.Type, t.Variant)
			if img == nil {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x)*size-offset.X, float64(y)*size-offset.Y)
			view.DrawImage(img, op)
		}
	}
}

func (w *World) drawHUD(view *ebiten.Image) {
	p := w.Player
	if p.Abilities.TimeStop {
		limit := w.Specs.Game.TimeStop.Max
		frac := 0.0
		if limit > 0 {
			frac = common.Clamp(w.TimeMeter/limit, 0, 1)
		}
		vector.DrawFilledRect(view, 1, 1, 104, 12, meterBorder, false)
		vector.DrawFilledRect(view, 3, 3, 100, 8, meterBack, false)
		vector.DrawFilledRect(view, 3, 3, float32(100*frac), 8, meterFill, false)
	}

	right := float32(view.Bounds().Dx()) - 4
	for i := 0; i < p.Health.Max; i++ {
		clr := color.Color(emptyPipColor)
		if i < p.Health.Remaining() {
			clr = hitPipColor
		}
		vector.DrawFilledRect(view, right-float32(i+1)*8, 3, 6, 6, clr, false)
	}
}
