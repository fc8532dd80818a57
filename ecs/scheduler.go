package ecs

import (
	"fmt"
	"time"
)

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// SystemTiming is how long one system took on the most recent tick.
type SystemTiming struct {
	Name string
	Last time.Duration
	Max  time.Duration
}

// Scheduler runs systems in insertion order and keeps per-system timings
// for the debug overlay.
type Scheduler struct {
	systems []System
	timings []SystemTiming
	now     func() time.Time
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{now: time.Now}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(sys System) {
	if sys == nil {
		return
	}
	s.systems = append(s.systems, sys)
	s.timings = append(s.timings, SystemTiming{Name: systemName(sys)})
}

func (s *Scheduler) Update(w *World) {
	for i, sys := range s.systems {
		start := s.now()
		sys.Update(w)
		d := s.now().Sub(start)
		s.timings[i].Last = d
		s.timings[i].Max = max(s.timings[i].Max, d)
	}
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}

// Timings returns a copy of the per-system timings in run order.
func (s *Scheduler) Timings() []SystemTiming {
	return append([]SystemTiming(nil), s.timings...)
}

func systemName(sys System) string {
	if named, ok := sys.(interface{ Name() string }); ok {
		return named.Name()
	}
	name := fmt.Sprintf("%T", sys)
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}
