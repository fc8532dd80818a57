package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/common"
	"github.com/milk9111/touchmove/logger"
)

// Inputs with a smaller squared magnitude produce no direction.
const inputDeadZone = 0.001

var worldRight = mgl64.Vec3{1, 0, 0}

// LocomotionState is owned by one LocomotionController and changes once per
// tick.
type LocomotionState struct {
	Position         mgl64.Vec3
	Heading          mgl64.Quat
	VerticalVelocity float64
	IsGrounded       bool
}

// PoseDelta is the per-tick output applied by host adapters.
type PoseDelta struct {
	Displacement mgl64.Vec3
	// Position is the controller's pose after this tick.
	Position mgl64.Vec3
	Rotation mgl64.Quat
	// Destination is valid when HasDestination is set.
	Destination     mgl64.Vec3
	HasDestination  bool
	Velocity        mgl64.Vec3
	LocomotionSpeed float64
	Airborne        bool
	Moving          bool
	Stopped         bool

	JumpState        JumpState
	JumpImpulse      float64
	JumpTrigger      bool
	JumpTriggerReset bool
	Jumped           bool
	Landed           bool
}

// JumpSource is polled once per tick for jump edges.
type JumpSource interface {
	Poll() JumpPoll
}

// Collaborators are optional. A missing one degrades to a fallback.
type Collaborators struct {
	Navigator Navigator
	Body      Body
	Camera    CameraBasis
	Jump      JumpSource
}

// LocomotionController maps input to heading, speed and position.
type LocomotionController struct {
	cfg   LocomotionConfig
	state LocomotionState

	nav    Navigator
	body   Body
	camera CameraBasis
	jump   JumpSource

	moving      bool
	stopPending bool

	warnNav    logger.Sometimes
	warnBody   logger.Sometimes
	warnCamera logger.Sometimes
}

func NewLocomotionController(cfg LocomotionConfig, deps Collaborators) *LocomotionController {
	return &LocomotionController{
		cfg:    Config{Locomotion: cfg}.WithDefaults().Locomotion,
		state:  LocomotionState{Heading: mgl64.QuatIdent()},
		nav:    deps.Navigator,
		body:   deps.Body,
		camera: deps.Camera,
		jump:   deps.Jump,
	}
}

func (c *LocomotionController) SetConfig(cfg LocomotionConfig) {
	c.cfg = Config{Locomotion: cfg}.WithDefaults().Locomotion
}

func (c *LocomotionController) Config() LocomotionConfig {
	return c.cfg
}

func (c *LocomotionController) State() LocomotionState {
	return c.state
}

// SetPosition teleports the controller, used on spawn and ground snapping.
func (c *LocomotionController) SetPosition(p mgl64.Vec3) {
	c.state.Position = common.SanitizeVec3(p)
}

func (c *LocomotionController) SetHeading(q mgl64.Quat) {
	c.state.Heading = q.Normalize()
}

// SetVerticalVelocity overrides the integrated vertical speed, used when the
// host resolves a collision.
func (c *LocomotionController) SetVerticalVelocity(vy float64) {
	if common.Finite(vy) {
		c.state.VerticalVelocity = vy
	}
}

// SetCamera uses a fixed camera basis.
func (c *LocomotionController) SetCamera(forward, right mgl64.Vec3) {
	c.camera = FixedCamera{Fwd: forward, Rgt: right}
}

func (c *LocomotionController) SetCollaborators(deps Collaborators) {
	c.nav = deps.Navigator
	c.body = deps.Body
	c.camera = deps.Camera
	c.jump = deps.Jump
}

// Stop forces the next tick to be still.
func (c *LocomotionController) Stop() {
	c.stopPending = true
}

// WorldDirection maps input onto the ground plane. The result has unit
// length, or more only for unnormalized digital diagonals.
func (c *LocomotionController) WorldDirection(input mgl64.Vec2) mgl64.Vec3 {
	input = common.SanitizeVec2(input)
	sq := common.LenSq2(input)
	if sq < inputDeadZone {
		return mgl64.Vec3{}
	}

	fwd, right := common.Forward, worldRight
	if c.cfg.CameraRelative {
		if c.camera == nil {
			c.warnCamera.Warn("locomotion: camera missing, using world axes")
		} else {
			f, r := common.Flatten(c.camera.Forward()), common.Flatten(c.camera.Right())
			if f == (mgl64.Vec3{}) || r == (mgl64.Vec3{}) {
				c.warnCamera.Warn("locomotion: camera basis degenerate, using world axes")
			} else {
				fwd, right = f, r
			}
		}
	}

	dir := common.Normalize3(fwd.Mul(input[1]).Add(right.Mul(input[0])))
	if sq > 1 {
		// Legacy digital diagonals reach sqrt(2); nothing goes faster.
		dir = dir.Mul(math.Sqrt(min(sq, 2)))
	}
	return dir
}

// Tick advances one step and returns the pose delta for the host.
func (c *LocomotionController) Tick(dt float64, input mgl64.Vec2, grounded bool) PoseDelta {
	if !common.Finite(dt) || dt < 0 {
		dt = 0
	}
	poll := JumpPoll{State: Grounded}
	if c.jump != nil {
		poll = c.jump.Poll()
	}

	mode := c.integration()
	c.syncPosition(mode)
	c.state.IsGrounded = grounded

	dir := c.WorldDirection(input)
	if c.stopPending {
		dir = mgl64.Vec3{}
		c.stopPending = false
	}
	moving := dir != (mgl64.Vec3{}) && common.LenSq3(dir) > c.cfg.MoveThreshold

	var delta PoseDelta
	if moving {
		c.move(dt, dir, mode, poll.State != Grounded, &delta)
	} else {
		c.halt(mode, &delta)
	}
	c.moving = moving

	if c.ownsVertical(mode) {
		c.integrateVertical(dt, poll, grounded, &delta)
	} else {
		if poll.Impulse > 0 {
			c.body.AddVelocity(common.Up.Mul(poll.Impulse))
		}
		c.state.VerticalVelocity = c.body.Velocity()[1]
		delta.Velocity[1] = c.state.VerticalVelocity
	}

	delta.Position = c.state.Position
	delta.Rotation = c.state.Heading
	delta.Airborne = !grounded
	delta.Moving = moving
	delta.JumpState = poll.State
	delta.JumpImpulse = poll.Impulse
	delta.JumpTrigger = poll.Trigger
	delta.JumpTriggerReset = poll.TriggerReset
	delta.Jumped = poll.Jumped
	delta.Landed = poll.Landed
	return delta
}

func (c *LocomotionController) integration() Integration {
	switch c.cfg.Integration {
	case IntegrateNavAgent:
		if c.nav == nil {
			c.warnNav.Warn("locomotion: navigator missing, moving kinematically")
			return IntegrateKinematic
		}
	case IntegrateRigidbody:
		if c.body == nil {
			c.warnBody.Warn("locomotion: body missing, moving kinematically")
			return IntegrateKinematic
		}
	}
	return c.cfg.Integration
}

// ownsVertical reports whether the controller integrates vertical motion
// itself instead of leaving it to a body.
func (c *LocomotionController) ownsVertical(mode Integration) bool {
	return mode == IntegrateKinematic || c.body == nil
}

func (c *LocomotionController) syncPosition(mode Integration) {
	switch mode {
	case IntegrateNavAgent:
		c.state.Position = common.SanitizeVec3(c.nav.Position())
	case IntegrateRigidbody:
		c.state.Position = common.SanitizeVec3(c.body.Position())
	}
}

func (c *LocomotionController) move(dt float64, dir mgl64.Vec3, mode Integration, jumping bool, delta *PoseDelta) {
	vel := dir.Mul(c.cfg.MoveSpeed)
	step := vel.Mul(dt)

	switch mode {
	case IntegrateNavAgent:
		// The agent is parked while a jump is in flight and only turns.
		if jumping {
			c.nav.ResetPath()
			vel = mgl64.Vec3{}
			delta.LocomotionSpeed = c.nav.Speed()
			break
		}
		c.nav.SetSpeed(c.cfg.MoveSpeed)
		dest := c.state.Position.Add(mgl64.Vec3{step[0], 0, step[2]})
		if c.nav.SetDestination(dest) {
			delta.Destination = dest
			delta.HasDestination = true
		}
		delta.LocomotionSpeed = c.nav.Speed()
	case IntegrateRigidbody:
		v := c.body.Velocity()
		c.body.SetVelocity(mgl64.Vec3{vel[0], v[1], vel[2]})
		delta.LocomotionSpeed = 1
	default:
		delta.Displacement[0], delta.Displacement[2] = step[0], step[2]
		c.state.Position[0] += step[0]
		c.state.Position[2] += step[2]
		delta.LocomotionSpeed = vel.Len()
	}
	delta.Velocity = mgl64.Vec3{vel[0], 0, vel[2]}

	target := common.LookRotation(dir)
	if c.cfg.Turn == TurnInstant {
		c.state.Heading = target
	} else {
		c.state.Heading = common.Slerp(c.state.Heading, target, c.cfg.RotationSpeed*dt)
	}
}

func (c *LocomotionController) halt(mode Integration, delta *PoseDelta) {
	if c.moving {
		delta.Stopped = true
	}
	switch mode {
	case IntegrateNavAgent:
		c.nav.ResetPath()
		c.nav.SetSpeed(0)
	case IntegrateRigidbody:
		v := c.body.Velocity()
		c.body.SetVelocity(mgl64.Vec3{0, v[1], 0})
	}
}

// integrateVertical applies the jump impulse, gravity and the grounded bias.
// While a jump is in flight the velocity is only touched by gravity and by
// contact with the ground.
func (c *LocomotionController) integrateVertical(dt float64, poll JumpPoll, grounded bool, delta *PoseDelta) {
	vy := c.state.VerticalVelocity
	switch {
	case poll.Impulse > 0:
		vy = poll.Impulse
	case poll.State == Grounded && grounded:
		vy = c.cfg.GroundedBias
	case grounded && vy <= 0:
		vy = math.Max(vy, c.cfg.GroundedBias)
	default:
		vy -= c.cfg.Gravity * dt
	}

	dy := 0.0
	if !grounded || vy > 0 {
		dy = vy * dt
	}
	c.state.VerticalVelocity = vy
	c.state.Position[1] += dy
	delta.Displacement[1] = dy
	delta.Velocity[1] = vy
}
