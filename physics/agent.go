package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchmove/common"
)

// Agent is a circle that slides along walls. It serves as both a navigation
// agent and a velocity-driven body. Vertical motion and landing are
// integrated against the space's platforms.
type Agent struct {
	space *Space
	body  *cp.Body
	shape *cp.Shape

	radius float64
	lift   float64
	y      float64
	vy     float64

	dest    mgl64.Vec3
	hasPath bool
	speed   float64

	grounded  bool
	kinematic bool
}

// NewAgent adds an agent with its feet at pos.
func (s *Space) NewAgent(pos mgl64.Vec3, radius float64) *Agent {
	if radius <= 0 {
		radius = 0.5
	}
	pos = common.SanitizeVec3(pos)
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos[0], Y: pos[2]})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.ShapeFilter{Categories: CategoryAgent, Mask: CategoryWall})
	s.space.AddBody(body)
	s.space.AddShape(shape)

	a := &Agent{
		space:  s,
		body:   body,
		shape:  shape,
		radius: radius,
		lift:   0.1,
		y:      pos[1],
	}
	s.agents = append(s.agents, a)
	return a
}

// Remove detaches the agent from its space.
func (a *Agent) Remove() {
	s := a.space
	if s == nil {
		return
	}
	s.space.RemoveShape(a.shape)
	s.space.RemoveBody(a.body)
	for i, other := range s.agents {
		if other == a {
			s.agents = append(s.agents[:i], s.agents[i+1:]...)
			break
		}
	}
	a.space = nil
}

func (a *Agent) Radius() float64 {
	return a.radius
}

// Grounded reports whether the last step ended standing on a platform.
func (a *Agent) Grounded() bool {
	return a.grounded
}

func (a *Agent) Position() mgl64.Vec3 {
	p := a.body.Position()
	return mgl64.Vec3{p.X, a.y, p.Y}
}

// Teleport moves the agent and clears its motion.
func (a *Agent) Teleport(pos mgl64.Vec3) {
	pos = common.SanitizeVec3(pos)
	a.body.SetPosition(cp.Vector{X: pos[0], Y: pos[2]})
	a.body.SetVelocityVector(cp.Vector{})
	a.y = pos[1]
	a.vy = 0
	a.hasPath = false
}

// SetKinematic hands the agent's height to the host. A kinematic agent still
// slides against walls but skips gravity and landing.
func (a *Agent) SetKinematic(on bool) {
	a.kinematic = on
	if on {
		a.vy = 0
		a.grounded = false
	}
}

func (a *Agent) Kinematic() bool {
	return a.kinematic
}

// Slide drives a kinematic agent: it moves by (dx, dz) over dt, walls
// permitting, with its feet at y.
func (a *Agent) Slide(dx, dz, y, dt float64) {
	a.hasPath = false
	a.y = y
	if !common.Finite(dt) || dt <= 0 || !common.Finite(dx) || !common.Finite(dz) {
		a.body.SetVelocityVector(cp.Vector{})
		return
	}
	a.body.SetVelocityVector(cp.Vector{X: dx / dt, Y: dz / dt})
}

func (a *Agent) Velocity() mgl64.Vec3 {
	v := a.body.Velocity()
	return mgl64.Vec3{v.X, a.vy, v.Y}
}

// SetVelocity drives the agent directly and drops any path.
func (a *Agent) SetVelocity(v mgl64.Vec3) {
	v = common.SanitizeVec3(v)
	a.hasPath = false
	a.body.SetVelocityVector(cp.Vector{X: v[0], Y: v[2]})
	a.vy = v[1]
}

// AddVelocity keeps the current path.
func (a *Agent) AddVelocity(dv mgl64.Vec3) {
	dv = common.SanitizeVec3(dv)
	v := a.body.Velocity()
	a.body.SetVelocityVector(cp.Vector{X: v.X + dv[0], Y: v.Y + dv[2]})
	a.vy += dv[1]
}

// SetDestination accepts dest when it lies on or near walkable ground.
func (a *Agent) SetDestination(dest mgl64.Vec3) bool {
	if a.space == nil {
		return false
	}
	snapped, ok := a.space.SampleWalkable(dest, DefaultSampleDistance)
	if !ok {
		return false
	}
	a.dest = snapped
	a.hasPath = true
	return true
}

func (a *Agent) HasPath() bool {
	return a.hasPath
}

func (a *Agent) Destination() mgl64.Vec3 {
	return a.dest
}

func (a *Agent) ResetPath() {
	a.hasPath = false
	a.body.SetVelocityVector(cp.Vector{})
}

func (a *Agent) SetSpeed(speed float64) {
	if !common.Finite(speed) || speed < 0 {
		speed = 0
	}
	a.speed = speed
}

// Speed is the realized horizontal speed.
func (a *Agent) Speed() float64 {
	v := a.body.Velocity()
	return math.Hypot(v.X, v.Y)
}

func (a *Agent) steer(dt float64) {
	if !a.hasPath {
		return
	}
	p := a.body.Position()
	dx, dz := a.dest[0]-p.X, a.dest[2]-p.Y
	dist := math.Hypot(dx, dz)
	if dist < 1e-6 || a.speed == 0 {
		a.body.SetVelocityVector(cp.Vector{})
		return
	}
	// Arrive exactly instead of overshooting.
	speed := math.Min(a.speed, dist/dt)
	a.body.SetVelocityVector(cp.Vector{X: dx / dist * speed, Y: dz / dist * speed})
}

func (a *Agent) integrateVertical(dt float64) {
	if a.kinematic {
		return
	}
	s := a.space
	feet := a.Position()
	a.vy -= s.gravity * dt
	next := a.y + a.vy*dt

	top, ok := s.GroundBelow(feet, a.lift, CategoryGround)
	if ok && next <= top && a.vy <= 0 {
		a.y = top
		a.vy = 0
		a.grounded = true
		return
	}
	a.y = next
	a.grounded = false
}
