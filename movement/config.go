package movement

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownPreset = errors.New("movement: unknown preset")

// Integration selects who moves the entity through the world.
type Integration int

const (
	// IntegrateKinematic translates the pose directly.
	IntegrateKinematic Integration = iota
	// IntegrateNavAgent hands a destination to a Navigator each tick.
	IntegrateNavAgent
	// IntegrateRigidbody writes horizontal velocity into a Body.
	IntegrateRigidbody
)

// JumpStrategy selects what an accepted jump emits.
type JumpStrategy int

const (
	JumpDisabled JumpStrategy = iota
	// JumpImpulse applies an instantaneous upward velocity change.
	JumpImpulse
	// JumpAnimationTrigger only fires the jump animation trigger.
	JumpAnimationTrigger
)

// ResetPolicy selects how a latched jump returns to Grounded.
type ResetPolicy int

const (
	ResetOnGround ResetPolicy = iota
	ResetAfterTimeout
)

// DiagonalMode controls digital-button diagonals.
type DiagonalMode int

const (
	// DiagonalLegacy keeps (±1, ±1) diagonals, so they are faster than
	// straight moves.
	DiagonalLegacy DiagonalMode = iota
	DiagonalNormalized
)

// TurnMode controls how the heading follows the movement direction.
type TurnMode int

const (
	TurnSlerp TurnMode = iota
	TurnInstant
)

// OutsideTouchPolicy decides what a non-claiming finger-down does.
type OutsideTouchPolicy int

const (
	OutsideTouchIgnore OutsideTouchPolicy = iota
	// OutsideTouchStop raises a one-shot stop request.
	OutsideTouchStop
)

type InputConfig struct {
	Diagonal     DiagonalMode
	OutsideTouch OutsideTouchPolicy
	// ClaimZone is the fraction of the screen width, from the left edge,
	// where a finger-down may claim the joystick.
	ClaimZone float64
	// Joystick size is clamp(screenWidth*JoystickScale, JoystickMin, JoystickMax).
	JoystickScale float64
	JoystickMin   float64
	JoystickMax   float64
}

type LocomotionConfig struct {
	Integration    Integration
	Turn           TurnMode
	MoveSpeed      float64
	RotationSpeed  float64
	MoveThreshold  float64
	CameraRelative bool
	Gravity        float64
	GroundedBias   float64
}

type JumpConfig struct {
	Strategy JumpStrategy
	Reset    ResetPolicy
	Force    float64
	// Duration is the timeout for ResetAfterTimeout, in seconds.
	Duration float64
	// LeaveGrace returns a ResetOnGround jump to Grounded when the probe never
	// reported leaving the ground within this many seconds.
	LeaveGrace          float64
	GroundCheckDistance float64
	ProbeLift           float64
}

type Config struct {
	Input      InputConfig
	Locomotion LocomotionConfig
	Jump       JumpConfig
}

func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Diagonal:      DiagonalLegacy,
			OutsideTouch:  OutsideTouchIgnore,
			ClaimZone:     0.5,
			JoystickScale: 0.15,
			JoystickMin:   200,
			JoystickMax:   400,
		},
		Locomotion: LocomotionConfig{
			Integration:    IntegrateKinematic,
			Turn:           TurnSlerp,
			MoveSpeed:      6,
			RotationSpeed:  10,
			MoveThreshold:  0.01,
			CameraRelative: true,
			Gravity:        9.81,
			GroundedBias:   -2,
		},
		Jump: JumpConfig{
			Strategy:            JumpImpulse,
			Reset:               ResetOnGround,
			Force:               5,
			Duration:            2.5,
			LeaveGrace:          0.5,
			GroundCheckDistance: 0.2,
			ProbeLift:           0.1,
		},
	}
}

var presets = map[string]func() Config{
	"default": DefaultConfig,
	// Four-button mover: world axes, instant facing, no jump.
	"biffo": func() Config {
		c := DefaultConfig()
		c.Locomotion.Integration = IntegrateKinematic
		c.Locomotion.Turn = TurnInstant
		c.Locomotion.MoveSpeed = 5
		c.Locomotion.MoveThreshold = 0
		c.Locomotion.CameraRelative = false
		c.Jump.Strategy = JumpDisabled
		c.Jump.GroundCheckDistance = 0.3
		return c
	},
	"touch": func() Config {
		c := DefaultConfig()
		c.Input.OutsideTouch = OutsideTouchStop
		c.Locomotion.Integration = IntegrateNavAgent
		c.Locomotion.MoveSpeed = 3.5
		c.Jump.Strategy = JumpImpulse
		c.Jump.Reset = ResetOnGround
		c.Jump.Force = 5
		c.Jump.GroundCheckDistance = 0.1
		return c
	},
	"touch_rb": func() Config {
		c := DefaultConfig()
		c.Locomotion.Integration = IntegrateRigidbody
		c.Locomotion.MoveSpeed = 6
		c.Jump.Strategy = JumpAnimationTrigger
		c.Jump.Reset = ResetAfterTimeout
		c.Jump.Force = 7
		c.Jump.Duration = 2.5
		c.Jump.GroundCheckDistance = 0.2
		return c
	},
}

// Preset returns a named configuration. An empty name is "default".
func Preset(name string) (Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "default"
	}
	build, ok := presets[key]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(), nil
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithDefaults fills zero-valued tuning fields from DefaultConfig. Enum
// fields are left alone since their zero values are meaningful. Zero
// MoveThreshold is meaningful too.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Input.ClaimZone <= 0 {
		c.Input.ClaimZone = d.Input.ClaimZone
	}
	if c.Input.JoystickScale <= 0 {
		c.Input.JoystickScale = d.Input.JoystickScale
	}
	if c.Input.JoystickMin <= 0 {
		c.Input.JoystickMin = d.Input.JoystickMin
	}
	if c.Input.JoystickMax < c.Input.JoystickMin {
		c.Input.JoystickMax = c.Input.JoystickMin
		if d.Input.JoystickMax > c.Input.JoystickMax {
			c.Input.JoystickMax = d.Input.JoystickMax
		}
	}
	if c.Locomotion.MoveSpeed <= 0 {
		c.Locomotion.MoveSpeed = d.Locomotion.MoveSpeed
	}
	if c.Locomotion.RotationSpeed <= 0 {
		c.Locomotion.RotationSpeed = d.Locomotion.RotationSpeed
	}
	if c.Locomotion.MoveThreshold < 0 {
		c.Locomotion.MoveThreshold = 0
	}
	if c.Locomotion.Gravity <= 0 {
		c.Locomotion.Gravity = d.Locomotion.Gravity
	}
	if c.Locomotion.GroundedBias > 0 {
		c.Locomotion.GroundedBias = -c.Locomotion.GroundedBias
	}
	if c.Jump.Force <= 0 {
		c.Jump.Force = d.Jump.Force
	}
	if c.Jump.Duration <= 0 {
		c.Jump.Duration = d.Jump.Duration
	}
	if c.Jump.LeaveGrace <= 0 {
		c.Jump.LeaveGrace = d.Jump.LeaveGrace
	}
	if c.Jump.GroundCheckDistance <= 0 {
		c.Jump.GroundCheckDistance = d.Jump.GroundCheckDistance
	}
	if c.Jump.ProbeLift <= 0 {
		c.Jump.ProbeLift = d.Jump.ProbeLift
	}
	return c
}

func (i Integration) String() string {
	switch i {
	case IntegrateKinematic:
		return "kinematic"
	case IntegrateNavAgent:
		return "nav_agent"
	case IntegrateRigidbody:
		return "rigidbody"
	default:
		return fmt.Sprintf("integration(%d)", int(i))
	}
}

func (s JumpStrategy) String() string {
	switch s {
	case JumpDisabled:
		return "none"
	case JumpImpulse:
		return "impulse"
	case JumpAnimationTrigger:
		return "animation_trigger"
	default:
		return fmt.Sprintf("jump_strategy(%d)", int(s))
	}
}

func (p ResetPolicy) String() string {
	switch p {
	case ResetOnGround:
		return "on_ground"
	case ResetAfterTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("reset_policy(%d)", int(p))
	}
}

func (m DiagonalMode) String() string {
	if m == DiagonalNormalized {
		return "normalized"
	}
	return "legacy"
}

func (m TurnMode) String() string {
	if m == TurnInstant {
		return "instant"
	}
	return "slerp"
}

func (p OutsideTouchPolicy) String() string {
	if p == OutsideTouchStop {
		return "stop"
	}
	return "ignore"
}

func ParseIntegration(s string) (Integration, error) {
	switch normalizeName(s) {
	case "", "kinematic", "transform":
		return IntegrateKinematic, nil
	case "nav_agent", "navagent", "navmesh", "navmesh_agent":
		return IntegrateNavAgent, nil
	case "rigidbody", "physics", "physics_rigidbody":
		return IntegrateRigidbody, nil
	}
	return 0, fmt.Errorf("movement: unknown integration %q", s)
}

func ParseJumpStrategy(s string) (JumpStrategy, error) {
	switch normalizeName(s) {
	case "none", "disabled":
		return JumpDisabled, nil
	case "", "impulse", "physics_impulse":
		return JumpImpulse, nil
	case "animation_trigger", "animation", "trigger":
		return JumpAnimationTrigger, nil
	}
	return 0, fmt.Errorf("movement: unknown jump strategy %q", s)
}

func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch normalizeName(s) {
	case "", "on_ground", "ground":
		return ResetOnGround, nil
	case "timeout", "timer", "after_timeout":
		return ResetAfterTimeout, nil
	}
	return 0, fmt.Errorf("movement: unknown reset policy %q", s)
}

func ParseDiagonalMode(s string) (DiagonalMode, error) {
	switch normalizeName(s) {
	case "", "legacy":
		return DiagonalLegacy, nil
	case "normalized", "normalised":
		return DiagonalNormalized, nil
	}
	return 0, fmt.Errorf("movement: unknown diagonal mode %q", s)
}

func ParseTurnMode(s string) (TurnMode, error) {
	switch normalizeName(s) {
	case "", "slerp", "smooth":
		return TurnSlerp, nil
	case "instant", "snap":
		return TurnInstant, nil
	}
	return 0, fmt.Errorf("movement: unknown turn mode %q", s)
}

func ParseOutsideTouchPolicy(s string) (OutsideTouchPolicy, error) {
	switch normalizeName(s) {
	case "", "ignore":
		return OutsideTouchIgnore, nil
	case "stop":
		return OutsideTouchStop, nil
	}
	return 0, fmt.Errorf("movement: unknown outside-touch policy %q", s)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "-", "_")
}
