package movement

import "github.com/milk9111/touchmove/common"

type JumpState int

const (
	Grounded JumpState = iota
	JumpLatched
	Airborne
)

func (s JumpState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case JumpLatched:
		return "jump_latched"
	case Airborne:
		return "airborne"
	default:
		return "unknown"
	}
}

// JumpPoll carries the jump edges produced since the previous poll.
type JumpPoll struct {
	State JumpState
	// Impulse is the upward velocity change to apply this tick, if any.
	Impulse float64
	// Trigger fires the jump animation.
	Trigger bool
	// TriggerReset clears the jump animation trigger when the timer runs out.
	TriggerReset bool
	Jumped       bool
	Landed       bool
}

// JumpStateMachine gates jumps and returns them to Grounded by deadline or
// by landing. It owns no timers; all waits are deadlines checked in Tick.
type JumpStateMachine struct {
	cfg JumpConfig

	state    JumpState
	grounded bool
	clock    float64

	latchedAt   float64
	deadline    float64
	hasDeadline bool
	leftGround  bool

	pending JumpPoll
}

func NewJumpStateMachine(cfg JumpConfig) *JumpStateMachine {
	return &JumpStateMachine{cfg: Config{Jump: cfg}.WithDefaults().Jump}
}

func (m *JumpStateMachine) SetConfig(cfg JumpConfig) {
	m.cfg = Config{Jump: cfg}.WithDefaults().Jump
}

func (m *JumpStateMachine) Config() JumpConfig {
	return m.cfg
}

func (m *JumpStateMachine) State() JumpState {
	return m.state
}

// IsGrounded returns the probe result observed by the last Tick or Observe.
func (m *JumpStateMachine) IsGrounded() bool {
	return m.grounded
}

// Observe records a probe result without advancing time.
func (m *JumpStateMachine) Observe(grounded bool) {
	m.grounded = grounded
}

// Tick advances the clock, records the probe result and returns a jump to
// Grounded when its reset policy is satisfied.
func (m *JumpStateMachine) Tick(dt float64, grounded bool) {
	if !common.Finite(dt) || dt < 0 {
		dt = 0
	}
	m.clock += dt
	m.grounded = grounded

	switch m.state {
	case Grounded:
		return
	case JumpLatched:
		m.state = Airborne
	}

	if !grounded {
		m.leftGround = true
	}

	switch m.cfg.Reset {
	case ResetAfterTimeout:
		if m.hasDeadline && m.clock >= m.deadline {
			m.land()
			m.pending.TriggerReset = m.cfg.Strategy == JumpAnimationTrigger
		}
	default:
		if grounded && (m.leftGround || m.clock-m.latchedAt >= m.cfg.LeaveGrace) {
			m.land()
		}
	}
}

// TryJump accepts a jump only from Grounded while the probe reports ground.
func (m *JumpStateMachine) TryJump() bool {
	if m.cfg.Strategy == JumpDisabled || m.state != Grounded || !m.grounded {
		return false
	}
	m.state = JumpLatched
	m.latchedAt = m.clock
	m.leftGround = false
	m.hasDeadline = m.cfg.Reset == ResetAfterTimeout
	m.deadline = m.clock + m.cfg.Duration

	m.pending.Jumped = true
	switch m.cfg.Strategy {
	case JumpImpulse:
		m.pending.Impulse = m.cfg.Force
	case JumpAnimationTrigger:
		m.pending.Trigger = true
	}
	return true
}

// Cancel abandons an in-flight jump without emitting its landing or trigger
// reset. It reports whether anything was pending.
func (m *JumpStateMachine) Cancel() bool {
	if m.state == Grounded {
		return false
	}
	m.state = Grounded
	m.hasDeadline = false
	m.deadline = 0
	m.leftGround = false
	m.pending = JumpPoll{}
	return true
}

// Deadline returns the pending timeout, if one is armed.
func (m *JumpStateMachine) Deadline() (float64, bool) {
	return m.deadline, m.hasDeadline
}

// Poll returns and clears the edges gathered since the last poll.
func (m *JumpStateMachine) Poll() JumpPoll {
	p := m.pending
	p.State = m.state
	m.pending = JumpPoll{}
	return p
}

func (m *JumpStateMachine) land() {
	m.state = Grounded
	m.hasDeadline = false
	m.leftGround = false
	m.pending.Landed = true
}
