package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/component"
)

const (
	defaultGravity  = 0.1
	defaultTerminal = 5.0
)

// CollisionService answers solidity queries about the level.
type CollisionService interface {
	SolidCheck(x, y float64) bool
	PhysicsRectsAround(r common.Rect) []common.Rect
}

// Assets resolves sprite keys.
type Assets interface {
	Animation(key string) *component.Animation
	Image(key string) *ebiten.Image
}

// Collisions records which sides touched a solid during the last Update.
type Collisions struct {
	Up, Down, Left, Right bool
}

// PhysicsEntity moves a box through the tilemap one axis at a time.
type PhysicsEntity struct {
	Kind string
	Pos  cp.Vector
	Size cp.Vector
	Vel  cp.Vector

	Collisions   Collisions
	Flip         bool
	Action       string
	Anim         *component.Animation
	AnimOffset   cp.Vector
	AirTime      int
	LastMovement cp.Vector

	Gravity  float64
	Terminal float64
	// NoGravity entities keep whatever vertical velocity they are given.
	NoGravity bool
	// VerticalFrozen suspends gravity and vertical motion for the next
	// Update.
	VerticalFrozen bool

	assets Assets
}

// NewPhysicsEntity creates an entity whose animations are looked up as
// "<kind>/<action>".
func NewPhysicsEntity(kind string, pos, size cp.Vector, assets Assets) PhysicsEntity {
	e := PhysicsEntity{
		Kind:       kind,
		Pos:        pos,
		Size:       size,
		Gravity:    defaultGravity,
		Terminal:   defaultTerminal,
		AnimOffset: cp.Vector{X: -3, Y: -3},
		assets:     assets,
	}
	e.SetAction("idle")
	return e
}

// Rect returns the collision box at the current position.
func (e *PhysicsEntity) Rect() common.Rect {
	return common.Rect{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// Center returns the middle of the collision box.
func (e *PhysicsEntity) Center() cp.Vector {
	x, y := e.Rect().Center()
	return cp.Vector{X: x, Y: y}
}

// SetAction switches to the animation for action, restarting it only when
// the action changes.
func (e *PhysicsEntity) SetAction(action string) {
	if e.Action == action && e.Anim != nil {
		return
	}
	e.Action = action
	if e.assets != nil {
		e.Anim = e.assets.Animation(e.Kind + "/" + action)
	}
}

// Update integrates velocity plus movement and resolves collisions, x axis
// first then y.
func (e *PhysicsEntity) Update(tiles CollisionService, movement cp.Vector) {
	e.Collisions = Collisions{}

	frozen := e.VerticalFrozen
	e.VerticalFrozen = false
	// gravity lands before displacement so a body resting on a tile is pushed
	// into it and flagged Down every tick
	if !e.NoGravity && !frozen {
		e.Vel.Y = min(e.Vel.Y+e.Gravity, e.Terminal)
	}

	frame := e.Vel.Add(movement)
	if frozen {
		frame.Y = 0
	}

	e.Pos.X += frame.X
	if tiles != nil {
		r := e.Rect()
		for _, tr := range tiles.PhysicsRectsAround(r) {
			if !r.Intersects(tr) {
				continue
			}
			if frame.X > 0 {
				r.X = tr.X - r.W
				e.Collisions.Right = true
			} else if frame.X < 0 {
				r.X = tr.Right()
				e.Collisions.Left = true
			}
			e.Pos.X = r.X
		}
	}

	e.Pos.Y += frame.Y
	if tiles != nil {
		r := e.Rect()
		for _, tr := range tiles.PhysicsRectsAround(r) {
			if !r.Intersects(tr) {
				continue
			}
			if frame.Y > 0 {
				r.Y = tr.Y - r.H
				e.Collisions.Down = true
			} else if frame.Y < 0 {
				r.Y = tr.Bottom()
				e.Collisions.Up = true
			}
			e.Pos.Y = r.Y
		}
	}

	if movement.X > 0 {
		e.Flip = false
	} else if movement.X < 0 {
		e.Flip = true
	}

	e.LastMovement = movement

	if e.Collisions.Down || e.Collisions.Up {
		e.Vel.Y = 0
	}

	if !frozen {
		e.Anim.Update()
	}
}

// Draw draws the current animation frame shifted by the camera offset.
func (e *PhysicsEntity) Draw(screen *ebiten.Image, offset cp.Vector) {
	img := e.Anim.Img()
	if screen == nil || img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if e.Flip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(img.Bounds().Dx()), 0)
	}
	op.GeoM.Translate(e.Pos.X-offset.X+e.AnimOffset.X, e.Pos.Y-offset.Y+e.AnimOffset.Y)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}
