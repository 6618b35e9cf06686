package obj

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/prefabs"
)

var ErrUnknownItem = errors.New("obj: unknown item kind")

// ItemEffect grants the item's reward. It reports whether anything changed.
type ItemEffect func(p *Player) bool

var itemEffects = map[string]ItemEffect{
	"doublejump": func(p *Player) bool { return p.Abilities.SetDoubleJumpUnlocked() },
	"dash":       func(p *Player) bool { return p.Abilities.SetDashUnlocked() },
	"wallslide":  func(p *Player) bool { return p.Abilities.SetWallSlideUnlocked() },
	"walljump":   func(p *Player) bool { return p.Abilities.SetWallJumpUnlocked() },
	"timestop":   func(p *Player) bool { return p.Abilities.SetTimeStopUnlocked() },
	"gun": func(p *Player) bool {
		had := p.HasGun
		p.HasGun = true
		return !had
	},
}

// ItemKinds returns the names of every known item effect.
func ItemKinds() []string {
	kinds := make([]string, 0, len(itemEffects))
	for k := range itemEffects {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Item is a pickup that sits in the level until the player touches it.
type Item struct {
	Kind      string
	Pos       cp.Vector
	Size      cp.Vector
	Anim      *component.Animation
	Countdown int
	Destroyed bool

	interval    int
	sparkOffset float64
	effect      ItemEffect
}

// NewItem creates an item of the given kind. Its animation is "items/<kind>".
func NewItem(kind string, pos cp.Vector, spec prefabs.ItemsSpec, assets Assets) (*Item, error) {
	effect, ok := itemEffects[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, kind)
	}
	interval := spec.SparkInterval
	if interval <= 0 {
		interval = 120
	}
	size := cp.Vector{X: spec.Size.W(), Y: spec.Size.H()}
	if size.X <= 0 || size.Y <= 0 {
		size = cp.Vector{X: common.TileSize, Y: common.TileSize}
	}
	it := &Item{
		Kind:        kind,
		Pos:         pos,
		Size:        size,
		Countdown:   interval,
		interval:    interval,
		sparkOffset: spec.SparkOffset,
		effect:      effect,
	}
	if assets != nil {
		it.Anim = assets.Animation("items/" + kind)
	}
	return it, nil
}

func (it *Item) Rect() common.Rect {
	return common.Rect{X: it.Pos.X, Y: it.Pos.Y, W: it.Size.X, H: it.Size.Y}
}

// Update runs one tick and reports true once the item has been collected.
func (it *Item) Update(t *Tick) bool {
	if it.Destroyed {
		return true
	}

	it.Countdown--
	if it.Countdown <= 0 {
		it.Countdown = it.interval
		t.Effects.SparkRing(it.Pos.Add(cp.Vector{X: it.sparkOffset, Y: it.sparkOffset}))
	}
	it.Anim.Update()

	p := t.Player
	if p == nil || p.Dead() || !it.Rect().Intersects(p.Rect()) {
		return false
	}

	it.effect(p)
	it.Destroyed = true
	c := it.Pos.Add(it.Size.Mult(0.5))
	t.Effects.Emit(component.CombatEvent{
		Type:   component.EventPickup,
		Source: component.FactionNeutral,
		Target: component.FactionPlayer,
		Kind:   it.Kind,
		PosX:   c.X,
		PosY:   c.Y,
	})
	return true
}

func (it *Item) Draw(screen *ebiten.Image, offset cp.Vector) {
	img := it.Anim.Img()
	if screen == nil || img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(it.Pos.X-offset.X, it.Pos.Y-offset.Y)
	screen.DrawImage(img, op)
}
