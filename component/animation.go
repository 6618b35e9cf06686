package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Animation cycles through a shared list of frames, holding each one for
// ImgDur ticks. Frames are never mutated so several animations can share
// them; progress lives in the Animation itself.
type Animation struct {
	Frames []*ebiten.Image
	ImgDur int
	Loop   bool

	frame int
	done  bool
}

// NewAnimation creates an Animation. imgDur defaults to 5 ticks per frame when
// <= 0.
func NewAnimation(frames []*ebiten.Image, imgDur int, loop bool) *Animation {
	if imgDur <= 0 {
		imgDur = 5
	}
	return &Animation{Frames: frames, ImgDur: imgDur, Loop: loop}
}

// SliceSheet cuts a spritesheet into frames laid out left-to-right,
// top-to-bottom. count <= 0 reads every frame the sheet holds.
func SliceSheet(sheet *ebiten.Image, frameW, frameH, count int) []*ebiten.Image {
	if sheet == nil {
		return nil
	}
	rects := sheetRects(sheet.Bounds(), frameW, frameH, count)
	if len(rects) == 0 {
		return nil
	}
	frames := make([]*ebiten.Image, len(rects))
	for i, r := range rects {
		frames[i] = sheet.SubImage(r).(*ebiten.Image)
	}
	return frames
}

func sheetRects(bounds image.Rectangle, frameW, frameH, count int) []image.Rectangle {
	if frameW <= 0 || frameH <= 0 {
		return nil
	}
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	if cols == 0 || rows == 0 {
		return nil
	}
	maxFrames := cols * rows
	if count <= 0 || count > maxFrames {
		count = maxFrames
	}
	rects := make([]image.Rectangle, count)
	for i := range rects {
		sx := bounds.Min.X + (i%cols)*frameW
		sy := bounds.Min.Y + (i/cols)*frameH
		rects[i] = image.Rect(sx, sy, sx+frameW, sy+frameH)
	}
	return rects
}

func (a *Animation) length() int {
	return a.ImgDur * len(a.Frames)
}

// Update advances the animation by one tick. Looping animations wrap; the
// others stop on their last frame and report Done.
func (a *Animation) Update() {
	if a == nil || len(a.Frames) == 0 {
		return
	}
	total := a.length()
	if a.Loop {
		a.frame = (a.frame + 1) % total
		return
	}
	a.frame = min(a.frame+1, total-1)
	if a.frame >= total-1 {
		a.done = true
	}
}

// Img returns the frame to draw for the current tick.
func (a *Animation) Img() *ebiten.Image {
	if a == nil || len(a.Frames) == 0 {
		return nil
	}
	return a.Frames[a.Index()]
}

// Index returns the index into Frames for the current tick.
func (a *Animation) Index() int {
	if a == nil || len(a.Frames) == 0 {
		return 0
	}
	return min(a.frame/a.ImgDur, len(a.Frames)-1)
}

// Frame returns the tick counter of the animation.
func (a *Animation) Frame() int {
	if a == nil {
		return 0
	}
	return a.frame
}

// Done reports whether a non-looping animation reached its last frame. A nil
// animation has nothing left to play and is always done.
func (a *Animation) Done() bool {
	if a == nil {
		return true
	}
	return a.done
}

// Copy returns an animation that shares frames with a but starts from the
// beginning.
func (a *Animation) Copy() *Animation {
	if a == nil {
		return nil
	}
	return &Animation{Frames: a.Frames, ImgDur: a.ImgDur, Loop: a.Loop}
}

// Reset sets the animation back to the first frame.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.frame = 0
	a.done = false
}

// SetFrame jumps to the given tick, clamped to the animation length.
func (a *Animation) SetFrame(tick int) {
	if a == nil || len(a.Frames) == 0 {
		return
	}
	a.frame = max(0, min(tick, a.length()-1))
}

// Draw draws the current frame. If `op` is nil a new DrawImageOptions will be
// used.
func (a *Animation) Draw(screen *ebiten.Image, op *ebiten.DrawImageOptions) {
	img := a.Img()
	if screen == nil || img == nil {
		return
	}
	var dop ebiten.DrawImageOptions
	if op != nil {
		dop = *op
	}
	dop.Filter = ebiten.FilterNearest
	screen.DrawImage(img, &dop)
}

// Size returns the size of the first frame.
func (a *Animation) Size() (int, int) {
	img := a.Img()
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
