package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Transition is the iris wipe between levels. Value runs from -Length
// (fully closed, opening) through 0 (open) to Length (fully closed again).
type Transition struct {
	Value  int
	Length int

	mask *ebiten.Image
	hole *ebiten.Image
}

func NewTransition(length int) *Transition {
	if length <= 0 {
		length = 30
	}
	return &Transition{Length: length}
}

// Open starts the opening wipe of a freshly loaded level.
func (t *Transition) Open() {
	t.Value = -t.Length
}

// Opening reports whether the wipe is still opening and counts it one tick
// toward fully open.
func (t *Transition) Opening() bool {
	if t.Value < 0 {
		t.Value++
		return true
	}
	return false
}

// Close advances the closing wipe. It returns true once it is fully
// closed.
func (t *Transition) Close() bool {
	t.Value++
	return t.Value > t.Length
}

// SetClosing moves the wipe to v without going backwards.
func (t *Transition) SetClosing(v int) {
	t.Value = max(t.Value, min(v, t.Length))
}

// Radius is the radius of the visible circle for the given screen.
func (t *Transition) Radius() float32 {
	n := t.Value
	if n < 0 {
		n = -n
	}
	return float32(t.Length-n) * 8
}

// Draw blacks out everything outside the circle. It draws nothing while
// fully open.
func (t *Transition) Draw(screen *ebiten.Image) {
	if t == nil || t.Value == 0 || screen == nil {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if t.mask == nil || t.mask.Bounds().Dx() != w || t.mask.Bounds().Dy() != h {
		t.mask = ebiten.NewImage(w, h)
		t.hole = ebiten.NewImage(w, h)
	}
	t.mask.Fill(color.Black)
	if r := t.Radius(); r > 0 {
		t.hole.Clear()
		vector.DrawFilledCircle(t.hole, float32(w)/2, float32(h)/2, r, color.White, false)
		op := &ebiten.DrawImageOptions{}
		op.Blend = ebiten.BlendDestinationOut
		t.mask.DrawImage(t.hole, op)
	}
	screen.DrawImage(t.mask, nil)
}
