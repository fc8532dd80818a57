package movement

import "github.com/go-gl/mathgl/mgl64"

// Animator parameter names.
const (
	ParamLocomotion = "Locomotion"
	ParamInAir      = "InAir"
	ParamJump       = "JumpUnarmed"
)

type Animator interface {
	SetFloat(name string, v float64)
	SetBool(name string, v bool)
	SetTrigger(name string)
	ResetTrigger(name string)
}

// Navigator moves an agent toward a destination on its own.
type Navigator interface {
	// SetDestination returns false when no reachable point is near dest.
	SetDestination(dest mgl64.Vec3) bool
	ResetPath()
	SetSpeed(speed float64)
	// Speed is the realized speed of the agent.
	Speed() float64
	Position() mgl64.Vec3
}

// Body is a physics body whose velocity the controller writes.
type Body interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddVelocity(dv mgl64.Vec3)
	Position() mgl64.Vec3
}

// GroundProbe answers whether the entity stands on ground. It must not have
// side effects.
type GroundProbe interface {
	IsGrounded() bool
}

type CameraBasis interface {
	Forward() mgl64.Vec3
	Right() mgl64.Vec3
}

// ProbeFunc adapts a function to GroundProbe.
type ProbeFunc func() bool

func (f ProbeFunc) IsGrounded() bool {
	if f == nil {
		return false
	}
	return f()
}

// FixedCamera is a CameraBasis with constant axes.
type FixedCamera struct {
	Fwd mgl64.Vec3
	Rgt mgl64.Vec3
}

func (c FixedCamera) Forward() mgl64.Vec3 { return c.Fwd }
func (c FixedCamera) Right() mgl64.Vec3 { return c.Rgt }

// FeedAnimator pushes one tick of pose output into a. A nil animator is a
// no-op.
func FeedAnimator(a Animator, d PoseDelta) {
	if a == nil {
		return
	}
	a.SetFloat(ParamLocomotion, d.LocomotionSpeed)
	a.SetBool(ParamInAir, d.Airborne)
	if d.JumpTrigger {
		a.SetTrigger(ParamJump)
	}
	if d.JumpTriggerReset {
		a.ResetTrigger(ParamJump)
	}
}

// ParamAnimator records animator parameters. The demo draws it and tests
// inspect it.
type ParamAnimator struct {
	Floats   map[string]float64
	Bools    map[string]bool
	Triggers map[string]bool
	// Fired counts SetTrigger calls per name.
	Fired map[string]int
}

func NewParamAnimator() *ParamAnimator {
	return &ParamAnimator{
		Floats:   map[string]float64{},
		Bools:    map[string]bool{},
		Triggers: map[string]bool{},
		Fired:    map[string]int{},
	}
}

func (p *ParamAnimator) SetFloat(name string, v float64) { p.Floats[name] = v }
func (p *ParamAnimator) SetBool(name string, v bool) { p.Bools[name] = v }

func (p *ParamAnimator) SetTrigger(name string) {
	p.Triggers[name] = true
	p.Fired[name]++
}

func (p *ParamAnimator) ResetTrigger(name string) {
	p.Triggers[name] = false
}
