package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/movement"
)

// Queue is a Source fed by hand. Push may be called from any goroutine.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

func (q *Queue) Press(d movement.Direction) {
	q.Push(Event{Kind: KindPress, Dir: d})
}

func (q *Queue) Release(d movement.Direction) {
	q.Push(Event{Kind: KindRelease, Dir: d})
}

func (q *Queue) Analog(v mgl64.Vec2) {
	q.Push(Event{Kind: KindAnalog, Vec: v})
}

func (q *Queue) Jump() {
	q.Push(Event{Kind: KindJump})
}

// Poll returns everything pushed since the last poll.
func (q *Queue) Poll() ([]Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out, nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Multi polls several sources in order and concatenates their events.
type Multi []Source

func (m Multi) Poll() ([]Event, error) {
	var out []Event
	for _, s := range m {
		if s == nil {
			continue
		}
		events, err := s.Poll()
		if err != nil {
			return out, err
		}
		out = append(out, events...)
	}
	return out, nil
}
