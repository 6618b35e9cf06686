package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/component"
)

// Library resolves sprite keys to images. Sprites are read once from
// <dir>/images and cached; anything missing is replaced by generated frames.
type Library struct {
	dir      string
	manifest *Manifest

	mu     sync.Mutex
	frames map[string][]*ebiten.Image
	warned map[string]bool
}

// NewLibrary creates a library reading sprites from dir. An empty dir uses
// placeholders for everything.
func NewLibrary(dir string) (*Library, error) {
	m, err := LoadManifest()
	if err != nil {
		return nil, err
	}
	return &Library{
		dir:      dir,
		manifest: m,
		frames:   make(map[string][]*ebiten.Image),
		warned:   make(map[string]bool),
	}, nil
}

// Manifest returns the manifest the library was built from.
func (l *Library) Manifest() *Manifest {
	if l == nil {
		return nil
	}
	return l.manifest
}

// Animation returns a fresh animation for key, or nil if the key is unknown.
func (l *Library) Animation(key string) *component.Animation {
	if l == nil {
		return nil
	}
	e, ok := l.manifest.Animations[key]
	if !ok {
		l.warnOnce(key, fmt.Errorf("unknown animation"))
		return nil
	}
	return component.NewAnimation(l.load("anim:"+key, e), e.ImgDur, e.Loop)
}

// Image returns the first frame of an image entry.
func (l *Library) Image(key string) *ebiten.Image {
	imgs := l.Images(key)
	if len(imgs) == 0 {
		return nil
	}
	return imgs[0]
}

// Images returns every frame of an image entry.
func (l *Library) Images(key string) []*ebiten.Image {
	if l == nil {
		return nil
	}
	e, ok := l.manifest.Images[key]
	if !ok {
		l.warnOnce(key, fmt.Errorf("unknown image"))
		return nil
	}
	return l.load("img:"+key, e)
}

// Tile returns the sprite for a tile type and variant.
func (l *Library) Tile(kind string, variant int) *ebiten.Image {
	if l == nil {
		return nil
	}
	e, ok := l.manifest.Tiles[kind]
	if !ok {
		return nil
	}
	imgs := l.load("tile:"+kind, e)
	if len(imgs) == 0 {
		return nil
	}
	if variant < 0 {
		variant = 0
	}
	return imgs[variant%len(imgs)]
}

func (l *Library) load(cacheKey string, e Entry) []*ebiten.Image {
	l.mu.Lock()
	defer l.mu.Unlock()

	if imgs, ok := l.frames[cacheKey]; ok {
		return imgs
	}
	imgs, err := l.readDisk(e)
	if err != nil || len(imgs) == 0 {
		if err == nil {
			err = fmt.Errorf("no frames")
		}
		l.warnLocked(cacheKey, err)
		imgs = placeholderFrames(e)
	}
	l.frames[cacheKey] = imgs
	return imgs
}

func (l *Library) readDisk(e Entry) ([]*ebiten.Image, error) {
	if l.dir == "" {
		return nil, fmt.Errorf("no asset directory")
	}
	root := filepath.Join(l.dir, "images")
	if e.File != "" {
		img, err := loadImage(filepath.Join(root, filepath.FromSlash(e.File)))
		if err != nil {
			return nil, err
		}
		return sheetFrames(img, e)
	}

	dir := filepath.Join(root, filepath.FromSlash(e.Dir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, de := range entries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".png") {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	imgs := make([]*ebiten.Image, 0, len(names))
	for _, name := range names {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

// sheetFrames cuts a single-file entry with more than one frame into
// size-sized cells.
func sheetFrames(img *ebiten.Image, e Entry) ([]*ebiten.Image, error) {
	if e.Frames <= 1 {
		return []*ebiten.Image{img}, nil
	}
	frames := component.SliceSheet(img, e.Size[0], e.Size[1], e.Frames)
	if len(frames) == 0 {
		return nil, fmt.Errorf("sheet %s holds no %dx%d frame", e.File, e.Size[0], e.Size[1])
	}
	return frames, nil
}

func loadImage(path string) (*ebiten.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func (l *Library) warnOnce(key string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnLocked(key, err)
}

func (l *Library) warnLocked(key string, err error) {
	if l.warned[key] {
		return
	}
	l.warned[key] = true
	if l.dir != "" {
		log.Printf("assets: %s: %v, using placeholder", key, err)
	}
}

// placeholderFrames draws flat colored frames with a shade band that moves
// from frame to frame so animations are still visible.
func placeholderFrames(e Entry) []*ebiten.Image {
	w, h := max(e.Size[0], 1), max(e.Size[1], 1)
	n := max(e.Frames, 1)
	base, err := e.color()
	if err != nil {
		base = color.RGBA{R: 0xff, B: 0xff, A: 0xff}
	}
	shade := color.RGBA{R: base.R / 2, G: base.G / 2, B: base.B / 2, A: 0xff}

	frames := make([]*ebiten.Image, n)
	for i := range frames {
		img := ebiten.NewImage(w, h)
		img.Fill(base)
		if n > 1 && h > 2 {
			y := (i * h) / n
			band := image.Rect(0, y, w, min(y+max(h/n, 1), h))
			img.SubImage(band).(*ebiten.Image).Fill(shade)
		}
		frames[i] = img
	}
	return frames
}
