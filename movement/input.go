package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/common"
)

// Direction is one of the four digital movement buttons.
type Direction int

const (
	DirForward Direction = iota
	DirBack
	DirLeft
	DirRight
	dirCount
)

func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBack:
		return "back"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// FingerID identifies a touch for its lifetime.
type FingerID int

// MovementInput is the per-tick input record.
type MovementInput struct {
	Analog      mgl64.Vec2
	ActiveTouch FingerID
	Touching    bool
	DragOrigin  mgl64.Vec2
	Drag        mgl64.Vec2
}

// JoystickVisual describes the on-screen joystick. It is derived from the
// active touch and never read back by the simulation.
type JoystickVisual struct {
	Anchor  mgl64.Vec2
	Knob    mgl64.Vec2
	Radius  float64
	Visible bool
}

// InputAggregator folds digital, analog and touch input into one movement
// vector.
type InputAggregator struct {
	cfg InputConfig

	latches [dirCount]bool
	analog  mgl64.Vec2

	screenW float64
	screenH float64

	touching bool
	finger   FingerID
	origin   mgl64.Vec2
	knob     mgl64.Vec2
	drag     mgl64.Vec2

	stop bool
}

func NewInputAggregator(cfg InputConfig) *InputAggregator {
	full := Config{Input: cfg}.WithDefaults()
	return &InputAggregator{cfg: full.Input}
}

// SetConfig swaps tuning without dropping held input.
func (a *InputAggregator) SetConfig(cfg InputConfig) {
	a.cfg = Config{Input: cfg}.WithDefaults().Input
}

// SetScreen records the screen size used for the claim zone and joystick
// radius. Until it is set every finger-down may claim.
func (a *InputAggregator) SetScreen(w, h float64) {
	if !common.Finite(w) || !common.Finite(h) || w < 0 || h < 0 {
		return
	}
	a.screenW, a.screenH = w, h
}

func (a *InputAggregator) Press(d Direction) {
	if d < 0 || d >= dirCount {
		return
	}
	a.latches[d] = true
}

// Release clears a latch and raises a stop request.
func (a *InputAggregator) Release(d Direction) {
	if d < 0 || d >= dirCount {
		return
	}
	a.latches[d] = false
	a.stop = true
}

// SetAnalog records the stick vector, clamped to unit length.
func (a *InputAggregator) SetAnalog(v mgl64.Vec2) {
	a.analog = common.ClampMagnitude2(common.SanitizeVec2(v), 1)
}

func (a *InputAggregator) ClearAnalog() {
	a.analog = mgl64.Vec2{}
}

// JoystickSize is clamp(screenWidth*scale, min, max).
func (a *InputAggregator) JoystickSize() float64 {
	return common.Clamp(a.screenW*a.cfg.JoystickScale, a.cfg.JoystickMin, a.cfg.JoystickMax)
}

func (a *InputAggregator) radius() float64 {
	return a.JoystickSize() / 2
}

func (a *InputAggregator) inClaimZone(pos mgl64.Vec2) bool {
	if a.screenW <= 0 {
		return true
	}
	return pos[0] < a.screenW*a.cfg.ClaimZone
}

// FingerDown reports whether the finger claimed the joystick.
func (a *InputAggregator) FingerDown(id FingerID, pos mgl64.Vec2) bool {
	if !common.Finite(pos[0]) || !common.Finite(pos[1]) {
		return false
	}
	if a.touching || !a.inClaimZone(pos) {
		if a.cfg.OutsideTouch == OutsideTouchStop && !(a.touching && id == a.finger) {
			a.stop = true
		}
		return false
	}
	a.touching = true
	a.finger = id
	a.origin = pos
	a.knob = mgl64.Vec2{}
	a.drag = mgl64.Vec2{}
	return true
}

// FingerMove updates the drag for the claiming finger. Other fingers are
// ignored.
func (a *InputAggregator) FingerMove(id FingerID, pos mgl64.Vec2) {
	if !a.touching || id != a.finger {
		return
	}
	if !common.Finite(pos[0]) || !common.Finite(pos[1]) {
		a.knob = mgl64.Vec2{}
		a.drag = mgl64.Vec2{}
		return
	}
	r := a.radius()
	a.knob = common.ClampMagnitude2(pos.Sub(a.origin), r)
	a.drag = a.knob.Mul(1 / r)
}

// FingerUp releases the joystick when the claiming finger lifts.
func (a *InputAggregator) FingerUp(id FingerID, _ mgl64.Vec2) {
	if !a.touching || id != a.finger {
		return
	}
	a.touching = false
	a.finger = 0
	a.knob = mgl64.Vec2{}
	a.drag = mgl64.Vec2{}
}

func (a *InputAggregator) Touching() bool {
	return a.touching
}

// CurrentMovementVector returns the authoritative input for this tick.
// Touch wins, then a non-zero stick, then the digital latches.
func (a *InputAggregator) CurrentMovementVector() mgl64.Vec2 {
	if a.touching {
		return a.drag
	}
	if a.analog != (mgl64.Vec2{}) {
		return a.analog
	}
	return a.digital()
}

func (a *InputAggregator) digital() mgl64.Vec2 {
	var v mgl64.Vec2
	if a.latches[DirRight] {
		v[0]++
	}
	if a.latches[DirLeft] {
		v[0]--
	}
	if a.latches[DirForward] {
		v[1]++
	}
	if a.latches[DirBack] {
		v[1]--
	}
	if a.cfg.Diagonal == DiagonalNormalized && v[0] != 0 && v[1] != 0 {
		return common.Normalize2(v)
	}
	return v
}

func (a *InputAggregator) Snapshot() MovementInput {
	return MovementInput{
		Analog:      a.analog,
		ActiveTouch: a.finger,
		Touching:    a.touching,
		DragOrigin:  a.origin,
		Drag:        a.drag,
	}
}

func (a *InputAggregator) Joystick() JoystickVisual {
	if !a.touching {
		return JoystickVisual{Radius: a.radius()}
	}
	return JoystickVisual{
		Anchor:  a.origin,
		Knob:    a.knob,
		Radius:  a.radius(),
		Visible: true,
	}
}

// TakeStopRequest consumes the one-shot stop request.
func (a *InputAggregator) TakeStopRequest() bool {
	stop := a.stop
	a.stop = false
	return stop
}

// Reset drops all held input.
func (a *InputAggregator) Reset() {
	a.latches = [dirCount]bool{}
	a.analog = mgl64.Vec2{}
	a.touching = false
	a.finger = 0
	a.knob = mgl64.Vec2{}
	a.drag = mgl64.Vec2{}
	a.stop = false
}
