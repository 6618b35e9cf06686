// Command animview previews the animations listed in the asset manifest,
// using files from the assets directory or the generated placeholders.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/component"
)

const (
	screenWidth  = 256
	screenHeight = 192
	zoom         = 4
)

type viewer struct {
	lib     *assets.Library
	keys    []string
	current int
	anim    *component.Animation
	paused  bool
}

func newViewer(lib *assets.Library, start string) *viewer {
	v := &viewer{lib: lib, keys: lib.Manifest().AnimationKeys()}
	if i := slices.Index(v.keys, start); i >= 0 {
		v.current = i
	}
	v.selectKey(v.current)
	return v
}

func (v *viewer) selectKey(i int) {
	if len(v.keys) == 0 {
		return
	}
	v.current = (i + len(v.keys)) % len(v.keys)
	v.anim = v.lib.Animation(v.keys[v.current])
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		v.selectKey(v.current + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		v.selectKey(v.current - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && v.anim != nil {
		v.anim.Reset()
	}
	if v.anim != nil && !v.paused {
		v.anim.Update()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	if v.anim == nil {
		ebitenutil.DebugPrint(screen, "no animations")
		return
	}

	fw, fh := v.anim.Size()
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(float64(screenWidth-fw*zoom)/2, float64(screenHeight-fh*zoom)/2)
	v.anim.Draw(screen, op)

	status := fmt.Sprintf("%s  frame %d  done %t", v.keys[v.current], v.anim.Index(), v.anim.Done())
	if v.paused {
		status += "  (paused)"
	}
	ebitenutil.DebugPrint(screen, status)
	ebitenutil.DebugPrintAt(screen, "<- -> select  space pause  r reset", 2, screenHeight-16)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	dir := flag.String("assets", "data", "directory holding images/")
	start := flag.String("anim", "player/idle", "animation key to show first")
	flag.Parse()

	lib, err := assets.NewLibrary(*dir)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("animview")
	if err := ebiten.RunGame(newViewer(lib, *start)); err != nil {
		log.Fatal(err)
	}
}
