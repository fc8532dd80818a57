package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/movement"
)

func TestApply(t *testing.T) {
	cases := []struct {
		name     string
		events   []Event
		want     mgl64.Vec2
		wantJump bool
	}{
		{
			name:   "press_forward",
			events: []Event{{Kind: KindPress, Dir: movement.DirForward}},
			want:   mgl64.Vec2{0, 1},
		},
		{
			name: "press_then_release",
			events: []Event{
				{Kind: KindPress, Dir: movement.DirLeft},
				{Kind: KindRelease, Dir: movement.DirLeft},
			},
		},
		{
			name:   "analog",
			events: []Event{{Kind: KindAnalog, Vec: mgl64.Vec2{0.5, 0}}},
			want:   mgl64.Vec2{0.5, 0},
		},
		{
			name: "analog_cancel",
			events: []Event{
				{Kind: KindAnalog, Vec: mgl64.Vec2{0.5, 0}},
				{Kind: KindAnalogCancel},
			},
		},
		{
			name: "finger_drag",
			events: []Event{
				{Kind: KindScreen, Vec: mgl64.Vec2{2000, 1000}},
				{Kind: KindFingerDown, Finger: 4, Vec: mgl64.Vec2{200, 200}},
				{Kind: KindFingerMove, Finger: 4, Vec: mgl64.Vec2{200, 350}},
			},
			want: mgl64.Vec2{0, 1},
		},
		{
			name:     "jump",
			events:   []Event{{Kind: KindJump}},
			wantJump: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := movement.NewInputAggregator(movement.InputConfig{})
			jump := Apply(a, c.events)
			if jump != c.wantJump {
				t.Fatalf("jump = %v, want %v", jump, c.wantJump)
			}
			if got := a.CurrentMovementVector(); got.Sub(c.want).Len() > 1e-9 {
				t.Fatalf("vector = %v, want %v", got, c.want)
			}
		})
	}
}

func TestQueueDrains(t *testing.T) {
	var q Queue
	q.Press(movement.DirRight)
	q.Jump()
	if q.Len() != 2 {
		t.Fatalf("len = %d, want 2", q.Len())
	}
	events, err := q.Poll()
	if err != nil || len(events) != 2 {
		t.Fatalf("poll = %v, %v", events, err)
	}
	if events, _ := q.Poll(); len(events) != 0 {
		t.Fatalf("second poll returned %v", events)
	}
}

func TestMultiConcatenates(t *testing.T) {
	var a, b Queue
	a.Jump()
	b.Press(movement.DirBack)
	events, err := Multi{&a, nil, &b}.Poll()
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(events) != 2 || events[0].Kind != KindJump || events[1].Kind != KindPress {
		t.Fatalf("events = %v", events)
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for k := range kindNames {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("wiggle"); err == nil {
		t.Fatalf("unknown kind accepted")
	}
}

func TestJumpButton(t *testing.T) {
	b := JumpButton{Inset: 120, Radius: 80}
	if !b.Contains(mgl64.Vec2{1880, 120}, 2000, 1000) {
		t.Fatalf("center should hit")
	}
	if b.Contains(mgl64.Vec2{100, 120}, 2000, 1000) {
		t.Fatalf("left side should miss")
	}
	if got := FlipY(10, 100, 1000); got != (mgl64.Vec2{10, 900}) {
		t.Fatalf("FlipY = %v", got)
	}
}
