package ecs

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/touchmove/ecs/component"
)

type (
	testPos   struct{ X, Z float64 }
	testVel   struct{ X, Z float64 }
	testJump  struct{ Armed bool }
	testLabel struct{ Name string }
)

var (
	posKind   = component.NewComponentKind[testPos]()
	velKind   = component.NewComponentKind[testVel]()
	jumpKind  = component.NewComponentKind[testJump]()
	labelKind = component.NewComponentKind[testLabel]()
)

func intPtr(i int) *int { return &i }

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name    string
		create  int
		destroy []int
		alive   int
	}{
		{"single", 1, []int{0}, 0},
		{"destroy_middle", 3, []int{1}, 2},
		{"destroy_none", 2, nil, 2},
		{"destroy_twice", 2, []int{0, 0}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			var ents []Entity
			for range c.create {
				ents = append(ents, CreateEntity(w))
			}
			for i, idx := range c.destroy {
				ok := DestroyEntity(w, ents[idx])
				if first := !slices.Contains(c.destroy[:i], idx); ok != first {
					t.Fatalf("DestroyEntity(%v) = %v on call %d", ents[idx], ok, i)
				}
				if IsAlive(w, ents[idx]) {
					t.Fatalf("%v still alive", ents[idx])
				}
			}
			if got := len(Entities(w)); got != c.alive {
				t.Fatalf("alive = %d, want %d", got, c.alive)
			}
		})
	}
}

func TestStaleHandleAfterRecycle(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	if err := Add(w, old, posKind, &testPos{X: 1}); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("slot not reused: %v vs %v", fresh, old)
	}
	if fresh == old {
		t.Fatalf("recycled handle equals the stale one")
	}
	if _, ok := Get(w, fresh, posKind); ok {
		t.Fatal("recycled slot kept the old component")
	}
	if err := Add(w, old, posKind, &testPos{}); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("add to stale handle = %v", err)
	}
	if got := fresh.String(); !strings.HasSuffix(got, "#1") {
		t.Fatalf("String() = %q, want generation 1", got)
	}
}

func TestComponentsAreStoredByPointer(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	p := &testPos{X: 1}
	if err := Add(w, e, posKind, p); err != nil {
		t.Fatal(err)
	}
	p.X = 5
	got, ok := Get(w, e, posKind)
	if !ok || got.X != 5 {
		t.Fatalf("Get = %+v,%v; writes through the added pointer should be visible", got, ok)
	}
	if !Remove(w, e, posKind) || Has(w, e, posKind) {
		t.Fatal("remove failed")
	}
	if Remove(w, e, posKind) {
		t.Fatal("second remove reported success")
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	mover := CreateEntity(w)
	jumper := CreateEntity(w)
	prop := CreateEntity(w)
	cam := CreateEntity(w)

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []Entity{mover, jumper, prop} {
		must(Add(w, e, posKind, &testPos{}))
	}
	must(Add(w, mover, velKind, &testVel{X: 1}))
	must(Add(w, jumper, velKind, &testVel{Z: 1}))
	must(Add(w, jumper, jumpKind, &testJump{}))
	must(Add(w, jumper, labelKind, &testLabel{Name: "player"}))
	must(Add(w, cam, labelKind, &testLabel{Name: "camera"}))

	collect := func(run func(add func(Entity))) []Entity {
		var out []Entity
		run(func(e Entity) { out = append(out, e) })
		slices.Sort(out)
		return out
	}

	cases := []struct {
		name string
		got  []Entity
		want []Entity
	}{
		{"one", collect(func(add func(Entity)) {
			ForEach(w, posKind, func(e Entity, _ *testPos) { add(e) })
		}), []Entity{mover, jumper, prop}},
		{"two", collect(func(add func(Entity)) {
			ForEach2(w, posKind, velKind, func(e Entity, _ *testPos, _ *testVel) { add(e) })
		}), []Entity{mover, jumper}},
		{"three", collect(func(add func(Entity)) {
			ForEach3(w, posKind, velKind, jumpKind, func(e Entity, _ *testPos, _ *testVel, _ *testJump) { add(e) })
		}), []Entity{jumper}},
		{"four", collect(func(add func(Entity)) {
			ForEach4(w, posKind, velKind, jumpKind, labelKind, func(e Entity, _ *testPos, _ *testVel, _ *testJump, _ *testLabel) { add(e) })
		}), []Entity{jumper}},
		{"query", func() []Entity {
			out := w.Query(labelKind)
			slices.Sort(out)
			return out
		}(), []Entity{jumper, cam}},
		{"missing_store", collect(func(add func(Entity)) {
			ForEach2(w, posKind, component.NewComponentKind[testVel](), func(e Entity, _ *testPos, _ *testVel) { add(e) })
		}), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !slices.Equal(c.got, c.want) {
				t.Fatalf("got %v, want %v", c.got, c.want)
			}
		})
	}
}

func TestForEachToleratesDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	for range 4 {
		e := CreateEntity(w)
		if err := Add(w, e, posKind, &testPos{}); err != nil {
			t.Fatal(err)
		}
	}
	visited := 0
	ForEach(w, posKind, func(e Entity, _ *testPos) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 4 || len(w.Query(posKind)) != 0 {
		t.Fatalf("visited %d, left %d", visited, len(w.Query(posKind)))
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"nil_value", Add[testPos](w, e, posKind, nil), component.ErrNilComponent},
		{"zero_kind", Add(w, e, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind},
		{"dead_entity", Add(w, Entity(0), posKind, &testPos{}), component.ErrEntityNotAlive},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !errors.Is(c.err, c.want) {
				t.Fatalf("got %v, want %v", c.err, c.want)
			}
		})
	}

	err := Add[testPos](w, e, posKind, nil)
	if !strings.Contains(err.Error(), "testPos") {
		t.Fatalf("error %q does not name the component", err)
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(w *World) {
	*r.log = append(*r.log, r.name)
	w.Events().Push(Event{Type: EventType(r.name)})
}

func (r recordSystem) Name() string { return r.name }

func TestUpdateOrderAndEventLifetime(t *testing.T) {
	w := NewWorld()
	var order []string
	w.AddSystem(recordSystem{name: "probe", log: &order})
	w.AddSystem(nil)
	w.AddSystem(recordSystem{name: "jump", log: &order})
	w.AddSystem(recordSystem{name: "locomotion", log: &order})

	w.Update()
	if want := []string{"probe", "jump", "locomotion"}; !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	if got := len(w.Events().Pending()); got != 3 {
		t.Fatalf("pending = %d, want 3", got)
	}
	if w.Events().Len() != 3 {
		t.Fatal("Pending drained the queue")
	}

	w.Update()
	if got := len(w.Events().Drain()); got != 3 {
		t.Fatalf("undrained events should be replaced each tick, got %d", got)
	}
	if w.Tick() != 2 {
		t.Fatalf("tick = %d, want 2", w.Tick())
	}
}

func TestSchedulerTimings(t *testing.T) {
	var order []string
	s := NewScheduler(recordSystem{name: "jump", log: &order}, anonSystem{})

	clock := time.Unix(0, 0)
	s.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	s.Update(NewWorld())

	got := s.Timings()
	if len(got) != 2 || got[0].Name != "jump" || got[1].Name != "anonSystem" {
		t.Fatalf("timings = %+v", got)
	}
	for _, tm := range got {
		if tm.Last != time.Millisecond || tm.Max != time.Millisecond {
			t.Fatalf("%s timing = %+v", tm.Name, tm)
		}
	}
}

type anonSystem struct{}

func (anonSystem) Update(*World) {}

func TestTickRate(t *testing.T) {
	w := NewWorld()
	if w.Delta() != 1.0/DefaultTickRate {
		t.Fatalf("default delta = %v", w.Delta())
	}
	w.SetTickRate(50)
	if w.Delta() != 0.02 {
		t.Fatalf("delta = %v, want 0.02", w.Delta())
	}
	w.SetTickRate(0)
	if w.Delta() != 0.02 {
		t.Fatalf("non-positive rate should be ignored, got %v", w.Delta())
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	if _, ok := w.First(labelKind); ok {
		t.Fatal("empty world returned an entity")
	}
	CreateEntity(w)
	b := CreateEntity(w)
	if err := Add(w, b, labelKind, &testLabel{Name: "player"}); err != nil {
		t.Fatal(err)
	}
	got, ok := w.First(labelKind)
	if !ok || got != b {
		t.Fatalf("First = %v,%v want %v", got, ok, b)
	}
}

func TestNilWorldIsInert(t *testing.T) {
	var w *World
	w.Update()
	w.AddSystem(anonSystem{})
	if w.IsAlive(Entity(1)) || w.Tick() != 0 || w.Delta() != 0 || w.Timings() != nil {
		t.Fatal("nil world reported state")
	}
}
