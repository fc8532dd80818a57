package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/touchmove/movement"
)

const stickDeadzone = 0.2

// mouseFinger lets the left mouse button act as a touch on desktop.
const mouseFinger movement.FingerID = -1

type keyBinding struct {
	keys []ebiten.Key
	dir  movement.Direction
}

var keyBindings = []keyBinding{
	{keys: []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, dir: movement.DirForward},
	{keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, dir: movement.DirBack},
	{keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, dir: movement.DirLeft},
	{keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, dir: movement.DirRight},
}

// JumpButton is a round on-screen button in y-up screen pixels, measured
// from the bottom-right corner.
type JumpButton struct {
	Inset  float64
	Radius float64
}

// Center returns the button center for a screen size.
func (b JumpButton) Center(w, h float64) mgl64.Vec2 {
	return mgl64.Vec2{w - b.Inset, b.Inset}
}

func (b JumpButton) Contains(pos mgl64.Vec2, w, h float64) bool {
	if b.Radius <= 0 {
		return false
	}
	d := pos.Sub(b.Center(w, h))
	return d.Dot(d) <= b.Radius*b.Radius
}

// EbitenSource polls keyboard, gamepad, touch and mouse state once per tick.
type EbitenSource struct {
	Button JumpButton

	w, h        float64
	screenDirty bool
	analogLive  bool
	jumpTouches map[ebiten.TouchID]bool
	mouseJump   bool
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{
		Button:      JumpButton{Inset: 120, Radius: 80},
		jumpTouches: make(map[ebiten.TouchID]bool),
	}
}

// SetScreen is called from Layout.
func (s *EbitenSource) SetScreen(w, h int) {
	fw, fh := float64(w), float64(h)
	if fw == s.w && fh == s.h {
		return
	}
	s.w, s.h = fw, fh
	s.screenDirty = true
}

func (s *EbitenSource) Screen() (float64, float64) {
	return s.w, s.h
}

// toScreen flips ebiten's y-down pixels to y-up.
func (s *EbitenSource) toScreen(x, y int) mgl64.Vec2 {
	return FlipY(x, y, s.h)
}

// FlipY converts y-down pixel coordinates to y-up.
func FlipY(x, y int, height float64) mgl64.Vec2 {
	return mgl64.Vec2{float64(x), height - float64(y)}
}

func (s *EbitenSource) Poll() ([]Event, error) {
	var events []Event
	if s.screenDirty {
		events = append(events, Event{Kind: KindScreen, Vec: mgl64.Vec2{s.w, s.h}})
		s.screenDirty = false
	}

	for _, b := range keyBindings {
		for _, k := range b.keys {
			if inpututil.IsKeyJustPressed(k) {
				events = append(events, Event{Kind: KindPress, Dir: b.dir})
			}
			if inpututil.IsKeyJustReleased(k) {
				events = append(events, Event{Kind: KindRelease, Dir: b.dir})
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		events = append(events, Event{Kind: KindJump})
	}

	events = s.pollGamepad(events)
	events = s.pollTouches(events)
	events = s.pollMouse(events)
	return events, nil
}

func (s *EbitenSource) pollGamepad(events []Event) []Event {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		if s.analogLive {
			s.analogLive = false
			events = append(events, Event{Kind: KindAnalogCancel})
		}
		return events
	}
	id := ids[0]
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	// Gamepad y points down.
	y := -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Hypot(x, y) > stickDeadzone {
		s.analogLive = true
		events = append(events, Event{Kind: KindAnalog, Vec: mgl64.Vec2{x, y}})
	} else if s.analogLive {
		s.analogLive = false
		events = append(events, Event{Kind: KindAnalogCancel})
	}
	if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
		events = append(events, Event{Kind: KindJump})
	}
	return events
}

func (s *EbitenSource) pollTouches(events []Event) []Event {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		pos := s.toScreen(ebiten.TouchPosition(id))
		if s.Button.Contains(pos, s.w, s.h) {
			s.jumpTouches[id] = true
			events = append(events, Event{Kind: KindJump})
			continue
		}
		events = append(events, Event{Kind: KindFingerDown, Finger: movement.FingerID(id), Vec: pos})
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		if s.jumpTouches[id] || inpututil.IsTouchJustReleased(id) {
			continue
		}
		pos := s.toScreen(ebiten.TouchPosition(id))
		events = append(events, Event{Kind: KindFingerMove, Finger: movement.FingerID(id), Vec: pos})
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		if s.jumpTouches[id] {
			delete(s.jumpTouches, id)
			continue
		}
		pos := s.toScreen(inpututil.TouchPositionInPreviousTick(id))
		events = append(events, Event{Kind: KindFingerUp, Finger: movement.FingerID(id), Vec: pos})
	}
	return events
}

func (s *EbitenSource) pollMouse(events []Event) []Event {
	pos := s.toScreen(ebiten.CursorPosition())
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if s.Button.Contains(pos, s.w, s.h) {
			s.mouseJump = true
			return append(events, Event{Kind: KindJump})
		}
		events = append(events, Event{Kind: KindFingerDown, Finger: mouseFinger, Vec: pos})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if s.mouseJump {
			s.mouseJump = false
			return events
		}
		events = append(events, Event{Kind: KindFingerUp, Finger: mouseFinger, Vec: pos})
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !s.mouseJump:
		events = append(events, Event{Kind: KindFingerMove, Finger: mouseFinger, Vec: pos})
	}
	return events
}
