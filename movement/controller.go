package movement

import "github.com/milk9111/touchmove/logger"

// Deps are the host collaborators of one controlled entity.
type Deps struct {
	Navigator Navigator
	Body      Body
	Camera    CameraBasis
	Probe     GroundProbe
	Animator  Animator
}

// Controller composes the input, jump and locomotion parts for one entity
// and runs them in a fixed order: probe, jump gating, locomotion.
type Controller struct {
	Input      *InputAggregator
	Jump       *JumpStateMachine
	Locomotion *LocomotionController

	cfg      Config
	probe    GroundProbe
	animator Animator

	jumpRequested bool
	grounded      bool

	warnProbe logger.Sometimes
}

func NewController(cfg Config, deps Deps) *Controller {
	cfg = cfg.WithDefaults()
	jump := NewJumpStateMachine(cfg.Jump)
	return &Controller{
		Input: NewInputAggregator(cfg.Input),
		Jump:  jump,
		Locomotion: NewLocomotionController(cfg.Locomotion, Collaborators{
			Navigator: deps.Navigator,
			Body:      deps.Body,
			Camera:    deps.Camera,
			Jump:      jump,
		}),
		cfg:      cfg,
		probe:    deps.Probe,
		animator: deps.Animator,
	}
}

func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig applies new tuning to every part, keeping their state.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg.WithDefaults()
	c.Input.SetConfig(c.cfg.Input)
	c.Jump.SetConfig(c.cfg.Jump)
	c.Locomotion.SetConfig(c.cfg.Locomotion)
}

func (c *Controller) SetProbe(p GroundProbe) {
	c.probe = p
}

func (c *Controller) SetAnimator(a Animator) {
	c.animator = a
}

func (c *Controller) Animator() Animator {
	return c.animator
}

// RequestJump asks for a jump on the next tick.
func (c *Controller) RequestJump() {
	c.jumpRequested = true
}

// Probe evaluates the ground probe once. Without a probe the entity is
// treated as standing on an infinite floor.
func (c *Controller) Probe() bool {
	if c.probe == nil {
		c.warnProbe.Warn("movement: ground probe missing, assuming grounded")
		c.grounded = true
		return true
	}
	c.grounded = c.probe.IsGrounded()
	return c.grounded
}

// Grounded is the result of the last Probe.
func (c *Controller) Grounded() bool {
	return c.grounded
}

// StepJump advances the jump machine with the tick's probe result and
// consumes a pending jump request.
func (c *Controller) StepJump(dt float64, grounded bool) bool {
	c.Jump.Tick(dt, grounded)
	if !c.jumpRequested {
		return false
	}
	c.jumpRequested = false
	return c.Jump.TryJump()
}

// StepLocomotion moves the entity and feeds the animator.
func (c *Controller) StepLocomotion(dt float64, grounded bool) PoseDelta {
	if c.Input.TakeStopRequest() {
		c.Locomotion.Stop()
	}
	delta := c.Locomotion.Tick(dt, c.Input.CurrentMovementVector(), grounded)
	FeedAnimator(c.animator, delta)
	return delta
}

// Tick runs one full step.
func (c *Controller) Tick(dt float64) PoseDelta {
	grounded := c.Probe()
	c.StepJump(dt, grounded)
	return c.StepLocomotion(dt, grounded)
}

// Destroy abandons any pending jump wait. It reports whether one was
// dropped.
func (c *Controller) Destroy() bool {
	canceled := c.Jump.Cancel()
	c.jumpRequested = false
	c.Input.Reset()
	return canceled
}
