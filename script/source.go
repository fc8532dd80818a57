// Package script drives movement input from tengo scripts. A script defines
// tick(engine, n), which is called once per simulation tick and queues input
// through the engine functions.
package script

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/input"
	"github.com/milk9111/touchmove/movement"
	"github.com/milk9111/touchmove/prefabs"
)

const dispatchScript = `
if __phase == "tick" {
	tick(__engine, __tick)
}
`

// Limits on one script run. A tick that loops forever or allocates without
// bound fails its Poll instead of stalling the game loop.
const (
	MaxAllocs  = 1 << 20
	RunTimeout = 250 * time.Millisecond
)

// Source is an input.Source that runs a compiled script each poll.
type Source struct {
	name     string
	compiled *tengo.Compiled
	engine   *tengo.ImmutableMap

	tick     int64
	duration int64
	pending  []input.Event
	timeout  time.Duration
}

// Load compiles a script from the prefab scripts directory.
func Load(name string) (*Source, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return New(name, src)
}

// New compiles src. The optional global `duration` bounds the run in ticks.
func New(name string, src []byte) (*Source, error) {
	full := string(src) + "\n" + dispatchScript
	sc := tengo.NewScript([]byte(full))
	_ = sc.Add("__phase", "")
	_ = sc.Add("__tick", 0)
	_ = sc.Add("__engine", map[string]any{})
	sc.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	sc.SetMaxAllocs(MaxAllocs)

	compiled, err := sc.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	s := &Source{name: name, compiled: compiled, timeout: RunTimeout}
	s.engine = s.buildEngine()

	if err := s.run("noop"); err != nil {
		return nil, fmt.Errorf("script: init %s: %w", name, err)
	}
	if compiled.IsDefined("duration") {
		s.duration = compiled.Get("duration").Int64()
	}
	return s, nil
}

func (s *Source) Name() string {
	return s.name
}

// Duration is the script's declared length in ticks, or 0 when unbounded.
func (s *Source) Duration() int64 {
	return s.duration
}

// Tick is the number of polls so far.
func (s *Source) Tick() int64 {
	return s.tick
}

// Done reports whether a bounded script has run its course.
func (s *Source) Done() bool {
	return s.duration > 0 && s.tick >= s.duration
}

// Poll advances the script one tick and returns the events it queued.
func (s *Source) Poll() ([]input.Event, error) {
	s.tick++
	s.pending = s.pending[:0]
	if err := s.run("tick"); err != nil {
		return nil, fmt.Errorf("script: %s tick %d: %w", s.name, s.tick, err)
	}
	out := make([]input.Event, len(s.pending))
	copy(out, s.pending)
	return out, nil
}

func (s *Source) run(phase string) error {
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__tick", s.tick); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", s.engine); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.compiled.RunContext(ctx)
}

func (s *Source) emit(e input.Event) {
	s.pending = append(s.pending, e)
}

func (s *Source) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	direction := func(kind input.Kind) tengo.CallableFunc {
		return func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			name, ok := tengo.ToString(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "direction", Expected: "string", Found: args[0].TypeName()}
			}
			dir, err := input.ParseDirection(name)
			if err != nil {
				return nil, err
			}
			s.emit(input.Event{Kind: kind, Dir: dir})
			return tengo.TrueValue, nil
		}
	}
	values["press"] = &tengo.UserFunction{Name: "press", Value: direction(input.KindPress)}
	values["release"] = &tengo.UserFunction{Name: "release", Value: direction(input.KindRelease)}

	values["analog"] = &tengo.UserFunction{Name: "analog", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vec2(args, 0)
		if err != nil {
			return nil, err
		}
		s.emit(input.Event{Kind: input.KindAnalog, Vec: v})
		return tengo.TrueValue, nil
	}}
	values["cancel"] = &tengo.UserFunction{Name: "cancel", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.emit(input.Event{Kind: input.KindAnalogCancel})
		return tengo.TrueValue, nil
	}}
	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.emit(input.Event{Kind: input.KindJump})
		return tengo.TrueValue, nil
	}}
	values["screen"] = &tengo.UserFunction{Name: "screen", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vec2(args, 0)
		if err != nil {
			return nil, err
		}
		s.emit(input.Event{Kind: input.KindScreen, Vec: v})
		return tengo.TrueValue, nil
	}}

	finger := func(kind input.Kind) tengo.CallableFunc {
		return func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 3 {
				return nil, tengo.ErrWrongNumArguments
			}
			id, ok := tengo.ToInt(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "id", Expected: "int", Found: args[0].TypeName()}
			}
			pos, err := vec2(args, 1)
			if err != nil {
				return nil, err
			}
			s.emit(input.Event{Kind: kind, Finger: movement.FingerID(id), Vec: pos})
			return tengo.TrueValue, nil
		}
	}
	values["finger_down"] = &tengo.UserFunction{Name: "finger_down", Value: finger(input.KindFingerDown)}
	values["finger_move"] = &tengo.UserFunction{Name: "finger_move", Value: finger(input.KindFingerMove)}
	values["finger_up"] = &tengo.UserFunction{Name: "finger_up", Value: finger(input.KindFingerUp)}

	return &tengo.ImmutableMap{Value: values}
}

// vec2 reads two numbers starting at args[at].
func vec2(args []tengo.Object, at int) (mgl64.Vec2, error) {
	if len(args) != at+2 {
		return mgl64.Vec2{}, tengo.ErrWrongNumArguments
	}
	x, ok := tengo.ToFloat64(args[at])
	if !ok {
		return mgl64.Vec2{}, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[at].TypeName()}
	}
	y, ok := tengo.ToFloat64(args[at+1])
	if !ok {
		return mgl64.Vec2{}, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[at+1].TypeName()}
	}
	return mgl64.Vec2{x, y}, nil
}
