package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const dt = 1.0 / 60

func TestAgentArrivesAtDestination(t *testing.T) {
	s := flatLevel()
	a := s.NewAgent(mgl64.Vec3{0, 0, 0}, 0.5)
	a.SetSpeed(4)
	if !a.SetDestination(mgl64.Vec3{2, 0, 0}) {
		t.Fatalf("destination on floor rejected")
	}
	for i := 0; i < 120; i++ {
		s.Step(dt)
	}
	approx(t, a.Position()[0], 2, 1e-3, "x")
	if a.Speed() > 1e-3 {
		t.Fatalf("agent still moving at %v after arriving", a.Speed())
	}
}

func TestAgentResetPathStops(t *testing.T) {
	s := flatLevel()
	a := s.NewAgent(mgl64.Vec3{}, 0.5)
	a.SetSpeed(4)
	a.SetDestination(mgl64.Vec3{5, 0, 0})
	s.Step(dt)
	s.Step(dt)
	if a.Speed() == 0 {
		t.Fatalf("agent did not start moving")
	}
	a.ResetPath()
	a.SetSpeed(0)
	x := a.Position()[0]
	s.Step(dt)
	approx(t, a.Position()[0], x, 1e-9, "x after reset")
	if a.HasPath() {
		t.Fatalf("path survived reset")
	}
}

func TestAgentBlockedByWall(t *testing.T) {
	s := flatLevel()
	s.AddWall(mgl64.Vec2{2, -5}, mgl64.Vec2{3, 5})
	a := s.NewAgent(mgl64.Vec3{0, 0, 0}, 0.5)
	a.SetVelocity(mgl64.Vec3{5, 0, 0})
	for i := 0; i < 120; i++ {
		s.Step(dt)
	}
	if x := a.Position()[0]; x > 2 {
		t.Fatalf("agent passed through wall, x=%v", x)
	}
}

func TestAgentJumpsAndLands(t *testing.T) {
	s := flatLevel()
	a := s.NewAgent(mgl64.Vec3{}, 0.5)
	s.Step(dt)
	if !a.Grounded() {
		t.Fatalf("agent should rest on the floor")
	}

	a.AddVelocity(mgl64.Vec3{0, 5, 0})
	s.Step(dt)
	if a.Grounded() || a.Position()[1] <= 0 {
		t.Fatalf("impulse did not lift the agent: y=%v", a.Position()[1])
	}

	peak := 0.0
	for i := 0; i < 180 && !a.Grounded(); i++ {
		s.Step(dt)
		if y := a.Position()[1]; y > peak {
			peak = y
		}
	}
	if !a.Grounded() {
		t.Fatalf("agent never landed")
	}
	approx(t, a.Position()[1], 0, 1e-9, "landed y")
	approx(t, peak, 25/(2*9.81), 0.1, "peak")
}

func TestAgentFallsOffLedge(t *testing.T) {
	s := NewSpace(9.81)
	s.AddPlatform(Platform{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}, Top: 2})
	a := s.NewAgent(mgl64.Vec3{0, 2, 0}, 0.25)
	a.SetVelocity(mgl64.Vec3{4, 0, 0})
	for i := 0; i < 60; i++ {
		s.Step(dt)
	}
	if a.Position()[1] >= 2 {
		t.Fatalf("agent should fall after leaving the platform, y=%v", a.Position()[1])
	}
}

func TestAgentRemove(t *testing.T) {
	s := flatLevel()
	a := s.NewAgent(mgl64.Vec3{}, 0.5)
	a.Remove()
	a.Remove()
	if len(s.agents) != 0 {
		t.Fatalf("agents = %d after remove", len(s.agents))
	}
}

func TestKinematicAgentSlidesWithoutGravity(t *testing.T) {
	s := flatLevel()
	s.AddWall(mgl64.Vec2{1, -5}, mgl64.Vec2{2, 5})
	a := s.NewAgent(mgl64.Vec3{0, 3, 0}, 0.5)
	a.SetKinematic(true)
	for i := 0; i < 60; i++ {
		a.Slide(0.1, 0, 3, dt)
		s.Step(dt)
	}
	approx(t, a.Position()[1], 3, 1e-9, "height")
	if x := a.Position()[0]; x > 1 {
		t.Fatalf("agent passed into the wall: x=%v", x)
	}
	if a.Grounded() {
		t.Fatalf("kinematic agent should not land")
	}
}
