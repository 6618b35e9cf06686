package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the actions polled for the current tick. Discrete actions are
// true only on the tick their key goes down.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64

	JumpPressed     bool
	DashPressed     bool
	ShootPressed    bool
	TimeStopPressed bool
	PausePressed    bool
	DebugPressed    bool
	SnapshotPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls keyboard and the first gamepad.
func (i *Input) Update() {
	var moveX float64
	// Keyboard D/A or arrows
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	var gpJump, gpDash, gpShoot, gpTimeStop, gpPause bool
	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			moveX = -1
		} else if leftX > 0.3 {
			moveX = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			moveX = -1
		} else if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			moveX = 1
		}

		gpJump = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpDash = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		gpShoot = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		gpTimeStop = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.MoveX = moveX
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp) || gpJump
	i.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || gpDash
	i.ShootPressed = inpututil.IsKeyJustPressed(ebiten.KeyJ) || gpShoot
	i.TimeStopPressed = inpututil.IsKeyJustPressed(ebiten.KeyT) || gpTimeStop
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpPause
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF1)
	i.SnapshotPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)
}

// Clear drops every pressed action, as when the game is paused.
func (i *Input) Clear() {
	*i = Input{}
}
