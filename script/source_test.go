package script

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/input"
	"github.com/milk9111/touchmove/movement"
)

func TestSourceEmitsPerTick(t *testing.T) {
	src := `
duration := 3
tick := func(engine, n) {
	if n == 1 {
		engine.press("left")
		engine.analog(0.5, -0.25)
	}
	if n == 2 {
		engine.finger_down(7, 100, 200)
		engine.jump()
	}
}
`
	s, err := New("inline", []byte(src))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Duration() != 3 {
		t.Fatalf("duration = %d", s.Duration())
	}

	first, err := s.Poll()
	if err != nil {
		t.Fatalf("poll 1: %v", err)
	}
	want := []input.Event{
		{Kind: input.KindPress, Dir: movement.DirLeft},
		{Kind: input.KindAnalog, Vec: mgl64.Vec2{0.5, -0.25}},
	}
	if len(first) != len(want) {
		t.Fatalf("tick 1 events = %v", first)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, first[i], want[i])
		}
	}

	second, err := s.Poll()
	if err != nil {
		t.Fatalf("poll 2: %v", err)
	}
	if len(second) != 2 || second[0].Kind != input.KindFingerDown || second[0].Finger != 7 || second[1].Kind != input.KindJump {
		t.Fatalf("tick 2 events = %v", second)
	}
	if second[0].Vec != (mgl64.Vec2{100, 200}) {
		t.Fatalf("finger pos = %v", second[0].Vec)
	}

	if third, _ := s.Poll(); len(third) != 0 {
		t.Fatalf("tick 3 events = %v", third)
	}
	if !s.Done() || s.Tick() != 3 {
		t.Fatalf("done=%v tick=%d", s.Done(), s.Tick())
	}
}

func TestSourceErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bad_direction", `tick := func(engine, n) { engine.press("sideways") }`},
		{"bad_arity", `tick := func(engine, n) { engine.analog(1) }`},
		{"bad_type", `tick := func(engine, n) { engine.finger_down("a", 1, 2) }`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := New(c.name, []byte(c.src))
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if _, err := s.Poll(); err == nil {
				t.Fatalf("poll should fail")
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	if _, err := New("broken", []byte(`tick := func(`)); err == nil {
		t.Fatalf("broken script compiled")
	}
}

func TestUnboundedScript(t *testing.T) {
	s, err := New("open", []byte(`tick := func(engine, n) {}`))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := s.Poll(); err != nil {
			t.Fatalf("poll: %v", err)
		}
	}
	if s.Done() || s.Duration() != 0 {
		t.Fatalf("unbounded script reports done")
	}
}

func TestRunawayScript(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want func(error) bool
	}{
		{"endless_loop", `tick := func(engine, n) { for { } }`, func(err error) bool {
			return errors.Is(err, context.DeadlineExceeded)
		}},
		{"endless_alloc", `tick := func(engine, n) { a := []; for { a = append(a, [n]) } }`, func(err error) bool {
			return strings.Contains(err.Error(), "allocation limit")
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := New(c.name, []byte(c.src))
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			s.timeout = 50 * time.Millisecond
			if c.name == "endless_alloc" {
				s.timeout = 10 * time.Second
			}

			done := make(chan error, 1)
			go func() {
				_, err := s.Poll()
				done <- err
			}()
			select {
			case err := <-done:
				if err == nil || !c.want(err) {
					t.Fatalf("poll err = %v", err)
				}
				if !strings.Contains(err.Error(), "script: "+c.name+" tick 1") {
					t.Fatalf("error not wrapped with script and tick: %v", err)
				}
			case <-time.After(15 * time.Second):
				t.Fatal("poll never returned")
			}
		})
	}
}

func TestEmbeddedScriptsLoad(t *testing.T) {
	for _, name := range []string{"walk_jump.tengo", "touch_drag.tengo"} {
		s, err := Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if s.Duration() <= 0 {
			t.Fatalf("%s has no duration", name)
		}
		q := input.Multi{s}
		if _, err := q.Poll(); err != nil {
			t.Fatalf("%s tick 1: %v", name, err)
		}
	}
}
