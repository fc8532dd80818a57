package system

import (
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
)

// TimerSystem counts banners down and hides them when their time is up. A
// banner whose owner is gone is dropped without finishing. Landing edges
// raise the level's banner, restarting the wait when one is showing.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.BannerComponent.Kind(), func(e ecs.Entity, b *component.Banner) {
		if b.Owner != 0 && !ecs.IsAlive(w, ecs.Entity(b.Owner)) {
			ecs.DestroyEntity(w, e)
			return
		}
		b.Remaining -= dt
		if b.Remaining <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})

	src := bannerSource(w)
	if src == nil {
		return
	}
	for _, evt := range w.Events().Pending() {
		if evt.Type == ecs.EventLanded {
			ShowBanner(w, src.Text, src.Seconds, evt.Entity)
		}
	}
}

// ShowBanner displays text for seconds, replacing any banner on screen.
func ShowBanner(w *ecs.World, text string, seconds float64, owner ecs.Entity) ecs.Entity {
	if text == "" || seconds <= 0 {
		return 0
	}
	banner := component.Banner{Text: text, Duration: seconds, Remaining: seconds, Owner: uint64(owner)}
	if e, ok := w.First(component.BannerComponent.Kind()); ok {
		_ = ecs.Add(w, e, component.BannerComponent.Kind(), &banner)
		return e
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.BannerComponent.Kind(), &banner)
	return e
}

func bannerSource(w *ecs.World) *component.BannerSource {
	e, ok := w.First(component.BannerSourceComponent.Kind())
	if !ok {
		return nil
	}
	src, ok := ecs.Get(w, e, component.BannerSourceComponent.Kind())
	if !ok || src.Text == "" {
		return nil
	}
	return src
}
