package movement

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/common"
)

type fakeNav struct {
	pos       mgl64.Vec3
	speed     float64
	dests     []mgl64.Vec3
	resets    int
	rejectAll bool
}

func (n *fakeNav) SetDestination(d mgl64.Vec3) bool {
	if n.rejectAll {
		return false
	}
	n.dests = append(n.dests, d)
	return true
}
func (n *fakeNav) ResetPath() { n.resets++ }
func (n *fakeNav) SetSpeed(s float64) { n.speed = s }
func (n *fakeNav) Speed() float64 { return n.speed }
func (n *fakeNav) Position() mgl64.Vec3 { return n.pos }

type fakeBody struct {
	pos mgl64.Vec3
	vel mgl64.Vec3
}

func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) { b.vel = v }
func (b *fakeBody) AddVelocity(dv mgl64.Vec3) { b.vel = b.vel.Add(dv) }
func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }

func kinematic() LocomotionConfig {
	c := DefaultConfig().Locomotion
	c.CameraRelative = false
	return c
}

func TestTinyInputDoesNotMove(t *testing.T) {
	inputs := []mgl64.Vec2{
		{},
		{0.01, 0.01},
		{0, -0.03},
		{math.NaN(), 1},
		{math.Inf(1), 0},
	}
	for _, in := range inputs {
		c := NewLocomotionController(kinematic(), Collaborators{})
		d := c.Tick(step, in, true)
		if d.LocomotionSpeed != 0 {
			t.Fatalf("input %v: speed = %v, want 0", in, d.LocomotionSpeed)
		}
		if d.Displacement != (mgl64.Vec3{}) {
			t.Fatalf("input %v: displacement = %v, want zero", in, d.Displacement)
		}
	}
}

func TestCameraRelativeMapping(t *testing.T) {
	cfg := DefaultConfig().Locomotion
	c := NewLocomotionController(cfg, Collaborators{})
	c.SetCamera(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0})

	got := c.WorldDirection(mgl64.Vec2{0, 1})
	want := mgl64.Vec3{0, 0, 1}
	for i := range want {
		near(t, got[i], want[i], "dir")
	}

	// A pitched camera is flattened before use.
	c.SetCamera(mgl64.Vec3{1, -1, 0}, mgl64.Vec3{0, 0, -1})
	got = c.WorldDirection(mgl64.Vec2{0, 1})
	near(t, got[0], 1, "pitched x")
	near(t, got[1], 0, "pitched y")
}

func TestCameraMissingFallsBackToWorldAxes(t *testing.T) {
	c := NewLocomotionController(DefaultConfig().Locomotion, Collaborators{})
	got := c.WorldDirection(mgl64.Vec2{1, 0})
	near(t, got[0], 1, "x")
	near(t, got[2], 0, "z")
}

func TestLegacyDiagonalMovesFaster(t *testing.T) {
	c := NewLocomotionController(kinematic(), Collaborators{})
	d := c.Tick(1, mgl64.Vec2{-1, 1}, true)
	near(t, math.Hypot(d.Displacement[0], d.Displacement[2]), c.Config().MoveSpeed*math.Sqrt2, "diagonal step")

	c = NewLocomotionController(kinematic(), Collaborators{})
	d = c.Tick(1, mgl64.Vec2{0.6, 0.8}, true)
	near(t, math.Hypot(d.Displacement[0], d.Displacement[2]), c.Config().MoveSpeed, "analog step")
}

func TestTurnModes(t *testing.T) {
	cfg := kinematic()
	cfg.Turn = TurnInstant
	c := NewLocomotionController(cfg, Collaborators{})
	d := c.Tick(step, mgl64.Vec2{1, 0}, true)
	near(t, common.Yaw(d.Rotation), math.Pi/2, "instant yaw")

	cfg.Turn = TurnSlerp
	cfg.RotationSpeed = 10
	c = NewLocomotionController(cfg, Collaborators{})
	d = c.Tick(step, mgl64.Vec2{1, 0}, true)
	yaw := common.Yaw(d.Rotation)
	if yaw <= 0 || yaw >= math.Pi/2 {
		t.Fatalf("slerp yaw = %v, want partial turn", yaw)
	}
}

func TestStoppedFiresOnce(t *testing.T) {
	c := NewLocomotionController(kinematic(), Collaborators{})
	c.Tick(step, mgl64.Vec2{0, 1}, true)

	stops := 0
	for i := 0; i < 5; i++ {
		if c.Tick(step, mgl64.Vec2{}, true).Stopped {
			stops++
		}
	}
	if stops != 1 {
		t.Fatalf("stopped edges = %d, want 1", stops)
	}
}

func TestForcedStop(t *testing.T) {
	c := NewLocomotionController(kinematic(), Collaborators{})
	c.Tick(step, mgl64.Vec2{0, 1}, true)
	c.Stop()
	d := c.Tick(step, mgl64.Vec2{0, 1}, true)
	if d.Moving || !d.Stopped {
		t.Fatalf("forced stop: moving=%v stopped=%v", d.Moving, d.Stopped)
	}
	if d := c.Tick(step, mgl64.Vec2{0, 1}, true); !d.Moving {
		t.Fatalf("stop should only last one tick")
	}
}

func TestNavAgentStrategy(t *testing.T) {
	cfg := kinematic()
	cfg.Integration = IntegrateNavAgent
	cfg.MoveSpeed = 3.5
	nav := &fakeNav{pos: mgl64.Vec3{1, 0, 1}}
	c := NewLocomotionController(cfg, Collaborators{Navigator: nav})

	d := c.Tick(0.5, mgl64.Vec2{0, 1}, true)
	if len(nav.dests) != 1 {
		t.Fatalf("destinations = %d, want 1", len(nav.dests))
	}
	near(t, nav.dests[0][2], 1+3.5*0.5, "dest z")
	if !d.HasDestination || d.LocomotionSpeed != 3.5 {
		t.Fatalf("delta = %+v", d)
	}

	d = c.Tick(0.5, mgl64.Vec2{}, true)
	if nav.resets != 1 || nav.speed != 0 {
		t.Fatalf("stop: resets=%d speed=%v", nav.resets, nav.speed)
	}
	if d.LocomotionSpeed != 0 {
		t.Fatalf("idle speed = %v", d.LocomotionSpeed)
	}

	nav.rejectAll = true
	if d := c.Tick(0.5, mgl64.Vec2{0, 1}, true); d.HasDestination {
		t.Fatalf("rejected destination reported")
	}
}

func TestNavAgentParkedDuringJump(t *testing.T) {
	cfg := kinematic()
	cfg.Integration = IntegrateNavAgent
	nav := &fakeNav{}
	jump := NewJumpStateMachine(JumpConfig{Strategy: JumpImpulse, Force: 5})
	c := NewLocomotionController(cfg, Collaborators{Navigator: nav, Jump: jump})

	jump.Tick(step, true)
	if !jump.TryJump() {
		t.Fatalf("jump refused on the ground")
	}
	for i := 0; i < 3; i++ {
		jump.Tick(step, false)
		d := c.Tick(step, mgl64.Vec2{1, 0}, false)
		if d.HasDestination || d.Velocity[0] != 0 {
			t.Fatalf("tick %d: agent steered mid-jump: %+v", i, d)
		}
	}
	if len(nav.dests) != 0 || nav.resets == 0 {
		t.Fatalf("dests=%d resets=%d, want path cleared while airborne", len(nav.dests), nav.resets)
	}
}

func TestOversizedInputIsCapped(t *testing.T) {
	cases := []struct {
		name  string
		input mgl64.Vec2
		speed float64
	}{
		{"unit", mgl64.Vec2{1, 0}, 1},
		{"legacy_diagonal", mgl64.Vec2{1, 1}, math.Sqrt2},
		{"huge", mgl64.Vec2{10, 0}, math.Sqrt2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := kinematic()
			c := NewLocomotionController(cfg, Collaborators{})
			d := c.Tick(1, tc.input, true)
			near(t, d.LocomotionSpeed, cfg.MoveSpeed*tc.speed, "speed")
			near(t, math.Hypot(d.Displacement[0], d.Displacement[2]), cfg.MoveSpeed*tc.speed, "step")
		})
	}
}

func TestNavAgentMissingFallsBack(t *testing.T) {
	cfg := kinematic()
	cfg.Integration = IntegrateNavAgent
	c := NewLocomotionController(cfg, Collaborators{})
	d := c.Tick(1, mgl64.Vec2{0, 1}, true)
	near(t, d.Displacement[2], cfg.MoveSpeed, "fallback step")
}

func TestRigidbodyStrategy(t *testing.T) {
	cfg := kinematic()
	cfg.Integration = IntegrateRigidbody
	cfg.MoveSpeed = 6
	body := &fakeBody{vel: mgl64.Vec3{0, -3, 0}}
	c := NewLocomotionController(cfg, Collaborators{Body: body})

	d := c.Tick(step, mgl64.Vec2{1, 0}, false)
	near(t, body.vel[0], 6, "vx")
	near(t, body.vel[1], -3, "vy kept")
	if d.LocomotionSpeed != 1 {
		t.Fatalf("speed feedback = %v, want 1", d.LocomotionSpeed)
	}

	d = c.Tick(step, mgl64.Vec2{}, false)
	if body.vel[0] != 0 || body.vel[2] != 0 || d.LocomotionSpeed != 0 {
		t.Fatalf("stop: vel=%v speed=%v", body.vel, d.LocomotionSpeed)
	}
}

func TestImpulseReachesBody(t *testing.T) {
	cfg := kinematic()
	cfg.Integration = IntegrateRigidbody
	body := &fakeBody{}
	jump := NewJumpStateMachine(JumpConfig{Strategy: JumpImpulse, Force: 5})
	c := NewLocomotionController(cfg, Collaborators{Body: body, Jump: jump})

	jump.Tick(step, true)
	jump.TryJump()
	d := c.Tick(step, mgl64.Vec2{}, true)
	near(t, body.vel[1], 5, "vy")
	if !d.Jumped || d.JumpImpulse != 5 {
		t.Fatalf("delta = %+v", d)
	}
}

func TestKinematicVertical(t *testing.T) {
	cfg := kinematic()
	jump := NewJumpStateMachine(JumpConfig{Strategy: JumpImpulse, Force: 5})
	c := NewLocomotionController(cfg, Collaborators{Jump: jump})

	jump.Tick(step, true)
	d := c.Tick(step, mgl64.Vec2{}, true)
	near(t, d.Velocity[1], cfg.GroundedBias, "grounded bias")
	near(t, d.Displacement[1], 0, "grounded dy")

	jump.TryJump()
	d = c.Tick(step, mgl64.Vec2{}, true)
	near(t, d.Velocity[1], 5, "impulse vy")

	// Airborne ticks only apply gravity.
	jump.Tick(step, false)
	d = c.Tick(step, mgl64.Vec2{}, false)
	near(t, d.Velocity[1], 5-cfg.Gravity*step, "gravity vy")
	if d.Displacement[1] <= 0 {
		t.Fatalf("rising dy = %v", d.Displacement[1])
	}
}

func TestNegativeDeltaTimeIsIgnored(t *testing.T) {
	c := NewLocomotionController(kinematic(), Collaborators{})
	d := c.Tick(-1, mgl64.Vec2{0, 1}, true)
	if d.Displacement != (mgl64.Vec3{}) {
		t.Fatalf("negative dt moved the pose: %v", d.Displacement)
	}
}
