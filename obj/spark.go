package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

const sparkDecay = 0.1

// Spark is a short streak that flies along Angle and slows to a stop.
type Spark struct {
	Pos   cp.Vector
	Angle float64
	Speed float64
}

func NewSpark(pos cp.Vector, angle, speed float64) *Spark {
	return &Spark{Pos: pos, Angle: angle, Speed: speed}
}

// Update moves the spark and reports true once it has stopped.
func (s *Spark) Update() bool {
	s.Pos = s.Pos.Add(cp.ForAngle(s.Angle).Mult(s.Speed))
	s.Speed -= sparkDecay
	if s.Speed < 1e-9 {
		s.Speed = 0
	}
	return s.Speed == 0
}

func (s *Spark) Draw(screen *ebiten.Image, offset cp.Vector) {
	if screen == nil {
		return
	}
	dir := cp.ForAngle(s.Angle)
	head := s.Pos.Add(dir.Mult(s.Speed * 3)).Sub(offset)
	tail := s.Pos.Sub(dir.Mult(s.Speed * 1.5)).Sub(offset)
	width := float32(max(s.Speed*0.5, 1))
	vector.StrokeLine(screen, float32(tail.X), float32(tail.Y), float32(head.X), float32(head.Y), width, color.White, false)
}
