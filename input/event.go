// Package input turns device and scripted events into movement input.
package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/movement"
)

type Kind int

const (
	KindPress Kind = iota
	KindRelease
	KindAnalog
	KindAnalogCancel
	KindFingerDown
	KindFingerMove
	KindFingerUp
	KindJump
	// KindScreen reports a new screen size in Vec.
	KindScreen
)

var kindNames = map[Kind]string{
	KindPress:        "press",
	KindRelease:      "release",
	KindAnalog:       "analog",
	KindAnalogCancel: "analog_cancel",
	KindFingerDown:   "finger_down",
	KindFingerMove:   "finger_move",
	KindFingerUp:     "finger_up",
	KindJump:         "jump",
	KindScreen:       "screen",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("input: unknown event kind %q", s)
}

// Event is one raw input occurrence. Touch positions are in screen pixels
// with y pointing up.
type Event struct {
	Kind   Kind
	Dir    movement.Direction
	Vec    mgl64.Vec2
	Finger movement.FingerID
}

func (e Event) String() string {
	switch e.Kind {
	case KindPress, KindRelease:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Dir)
	case KindAnalog, KindScreen:
		return fmt.Sprintf("%s(%.3f,%.3f)", e.Kind, e.Vec[0], e.Vec[1])
	case KindFingerDown, KindFingerMove, KindFingerUp:
		return fmt.Sprintf("%s(#%d %.1f,%.1f)", e.Kind, e.Finger, e.Vec[0], e.Vec[1])
	default:
		return e.Kind.String()
	}
}

// Source supplies the events of one tick.
type Source interface {
	Poll() ([]Event, error)
}

// ParseDirection maps names like "forward" or "left" to a Direction.
func ParseDirection(s string) (movement.Direction, error) {
	switch s {
	case "forward", "up", "w":
		return movement.DirForward, nil
	case "back", "down", "s":
		return movement.DirBack, nil
	case "left", "a":
		return movement.DirLeft, nil
	case "right", "d":
		return movement.DirRight, nil
	}
	return 0, fmt.Errorf("input: unknown direction %q", s)
}

// Apply feeds events into an aggregator and reports whether a jump was
// requested.
func Apply(a *movement.InputAggregator, events []Event) bool {
	jump := false
	for _, e := range events {
		switch e.Kind {
		case KindPress:
			a.Press(e.Dir)
		case KindRelease:
			a.Release(e.Dir)
		case KindAnalog:
			a.SetAnalog(e.Vec)
		case KindAnalogCancel:
			a.ClearAnalog()
		case KindFingerDown:
			a.FingerDown(e.Finger, e.Vec)
		case KindFingerMove:
			a.FingerMove(e.Finger, e.Vec)
		case KindFingerUp:
			a.FingerUp(e.Finger, e.Vec)
		case KindJump:
			jump = true
		case KindScreen:
			a.SetScreen(e.Vec[0], e.Vec[1])
		}
	}
	return jump
}
