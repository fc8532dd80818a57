package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/movement"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name      string        `yaml:"name"`
	Preset    string        `yaml:"preset"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Color     YAMLColor     `yaml:"color"`
	Movement  MovementSpec  `yaml:"movement"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// MovementConfig starts from the named preset and applies the overrides
// present in the player prefab.
func (s *PlayerSpec) MovementConfig() (movement.Config, error) {
	cfg, err := movement.Preset(s.Preset)
	if err != nil {
		return movement.Config{}, fmt.Errorf("prefabs: player %q: %w", s.Name, err)
	}
	if err := s.Movement.Apply(&cfg); err != nil {
		return movement.Config{}, fmt.Errorf("prefabs: player %q: %w", s.Name, err)
	}
	return cfg.WithDefaults(), nil
}

// MovementSpec overrides preset tuning. Empty strings and nil pointers keep
// the preset value.
type MovementSpec struct {
	Integration  string `yaml:"integration,omitempty"`
	Turn         string `yaml:"turn,omitempty"`
	Jump         string `yaml:"jump,omitempty"`
	Reset        string `yaml:"reset,omitempty"`
	Diagonal     string `yaml:"diagonal,omitempty"`
	OutsideTouch string `yaml:"outside_touch,omitempty"`

	MoveSpeed      *float64 `yaml:"move_speed,omitempty"`
	RotationSpeed  *float64 `yaml:"rotation_speed,omitempty"`
	MoveThreshold  *float64 `yaml:"move_threshold,omitempty"`
	CameraRelative *bool    `yaml:"camera_relative,omitempty"`
	Gravity        *float64 `yaml:"gravity,omitempty"`
	GroundedBias   *float64 `yaml:"grounded_bias,omitempty"`

	JumpForce           *float64 `yaml:"jump_force,omitempty"`
	JumpDuration        *float64 `yaml:"jump_duration,omitempty"`
	LeaveGrace          *float64 `yaml:"leave_grace,omitempty"`
	GroundCheckDistance *float64 `yaml:"ground_check_distance,omitempty"`
	ProbeLift           *float64 `yaml:"probe_lift,omitempty"`

	ClaimZone *float64      `yaml:"claim_zone,omitempty"`
	Joystick  *JoystickSpec `yaml:"joystick,omitempty"`
}

type JoystickSpec struct {
	Scale float64 `yaml:"scale"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// Apply writes the overrides into cfg.
func (m MovementSpec) Apply(cfg *movement.Config) error {
	var err error
	if m.Integration != "" {
		if cfg.Locomotion.Integration, err = movement.ParseIntegration(m.Integration); err != nil {
			return err
		}
	}
	if m.Turn != "" {
		if cfg.Locomotion.Turn, err = movement.ParseTurnMode(m.Turn); err != nil {
			return err
		}
	}
	if m.Jump != "" {
		if cfg.Jump.Strategy, err = movement.ParseJumpStrategy(m.Jump); err != nil {
			return err
		}
	}
	if m.Reset != "" {
		if cfg.Jump.Reset, err = movement.ParseResetPolicy(m.Reset); err != nil {
			return err
		}
	}
	if m.Diagonal != "" {
		if cfg.Input.Diagonal, err = movement.ParseDiagonalMode(m.Diagonal); err != nil {
			return err
		}
	}
	if m.OutsideTouch != "" {
		if cfg.Input.OutsideTouch, err = movement.ParseOutsideTouchPolicy(m.OutsideTouch); err != nil {
			return err
		}
	}

	setFloat(&cfg.Locomotion.MoveSpeed, m.MoveSpeed)
	setFloat(&cfg.Locomotion.RotationSpeed, m.RotationSpeed)
	setFloat(&cfg.Locomotion.MoveThreshold, m.MoveThreshold)
	setFloat(&cfg.Locomotion.Gravity, m.Gravity)
	setFloat(&cfg.Locomotion.GroundedBias, m.GroundedBias)
	if m.CameraRelative != nil {
		cfg.Locomotion.CameraRelative = *m.CameraRelative
	}
	setFloat(&cfg.Jump.Force, m.JumpForce)
	setFloat(&cfg.Jump.Duration, m.JumpDuration)
	setFloat(&cfg.Jump.LeaveGrace, m.LeaveGrace)
	setFloat(&cfg.Jump.GroundCheckDistance, m.GroundCheckDistance)
	setFloat(&cfg.Jump.ProbeLift, m.ProbeLift)
	setFloat(&cfg.Input.ClaimZone, m.ClaimZone)
	if m.Joystick != nil {
		cfg.Input.JoystickScale = m.Joystick.Scale
		cfg.Input.JoystickMin = m.Joystick.Min
		cfg.Input.JoystickMax = m.Joystick.Max
	}
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// MovementSpecFrom spells out every field of cfg.
func MovementSpecFrom(cfg movement.Config) MovementSpec {
	f := func(v float64) *float64 { return &v }
	camera := cfg.Locomotion.CameraRelative
	return MovementSpec{
		Integration:         cfg.Locomotion.Integration.String(),
		Turn:                cfg.Locomotion.Turn.String(),
		Jump:                cfg.Jump.Strategy.String(),
		Reset:               cfg.Jump.Reset.String(),
		Diagonal:            cfg.Input.Diagonal.String(),
		OutsideTouch:        cfg.Input.OutsideTouch.String(),
		MoveSpeed:           f(cfg.Locomotion.MoveSpeed),
		RotationSpeed:       f(cfg.Locomotion.RotationSpeed),
		MoveThreshold:       f(cfg.Locomotion.MoveThreshold),
		CameraRelative:      &camera,
		Gravity:             f(cfg.Locomotion.Gravity),
		GroundedBias:        f(cfg.Locomotion.GroundedBias),
		JumpForce:           f(cfg.Jump.Force),
		JumpDuration:        f(cfg.Jump.Duration),
		LeaveGrace:          f(cfg.Jump.LeaveGrace),
		GroundCheckDistance: f(cfg.Jump.GroundCheckDistance),
		ProbeLift:           f(cfg.Jump.ProbeLift),
		ClaimZone:           f(cfg.Input.ClaimZone),
		Joystick: &JoystickSpec{
			Scale: cfg.Input.JoystickScale,
			Min:   cfg.Input.JoystickMin,
			Max:   cfg.Input.JoystickMax,
		},
	}
}

// Snapshot is the pose and tuning export written to the clipboard.
type Snapshot struct {
	Preset    string        `yaml:"preset"`
	Transform TransformSpec `yaml:"transform"`
	JumpState string        `yaml:"jump_state"`
	Grounded  bool          `yaml:"grounded"`
	Movement  MovementSpec  `yaml:"movement"`
}

func MarshalSnapshot(s Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal snapshot: %w", err)
	}
	return data, nil
}

type CameraSpec struct {
	Name string `yaml:"name"`
	// Yaw and Pitch are in degrees. Yaw 0 looks along +Z.
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
	// Zoom is screen pixels per world unit in the debug view.
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type LevelSpec struct {
	Name      string         `yaml:"name"`
	Spawn     TransformSpec  `yaml:"spawn"`
	Platforms []PlatformSpec `yaml:"platforms"`
	Walls     []WallSpec     `yaml:"walls"`
	Banner    BannerSpec     `yaml:"banner"`
	// KillPlane defaults to 10 below the lowest platform.
	KillPlane *float64 `yaml:"kill_plane,omitempty"`
}

// FallLimit is the height below which movers respawn.
func (l *LevelSpec) FallLimit() float64 {
	if l.KillPlane != nil {
		return *l.KillPlane
	}
	lowest := 0.0
	for i, p := range l.Platforms {
		if i == 0 || p.Top < lowest {
			lowest = p.Top
		}
	}
	return lowest - 10
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	if name == "" {
		name = "level.yaml"
	}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	if len(spec.Platforms) == 0 {
		return nil, fmt.Errorf("prefabs: level %s: no platforms", name)
	}
	return &spec, nil
}

type PlatformSpec struct {
	Name  string    `yaml:"name"`
	Min   Vec2Spec  `yaml:"min"`
	Max   Vec2Spec  `yaml:"max"`
	Top   float64   `yaml:"top"`
	Layer uint      `yaml:"layer"`
	Color YAMLColor `yaml:"color"`
}

type WallSpec struct {
	Min Vec2Spec `yaml:"min"`
	Max Vec2Spec `yaml:"max"`
}

// BannerSpec is the timed text shown after a landing.
type BannerSpec struct {
	Text    string  `yaml:"text"`
	Seconds float64 `yaml:"seconds"`
}

// Vec2Spec is an X/Z pair on the ground plane.
type Vec2Spec struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

func (v Vec2Spec) Vec() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Z}
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	// Yaw is in degrees.
	Yaw float64 `yaml:"yaw"`
}

func (t TransformSpec) Position() mgl64.Vec3 {
	return mgl64.Vec3{t.X, t.Y, t.Z}
}

type ColliderSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when none was set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
