package system

import (
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/movement"
)

// AnimationSystem picks a clip from the animator parameters and advances
// its frame.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		if anim.Params == nil {
			return
		}

		clip, restart := pickClip(anim)
		if restart || clip != anim.Current {
			anim.Current = clip
			anim.Frame = 0
			anim.FrameTimer = 0
			anim.Playing = true
		}
		if !anim.Playing {
			return
		}

		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 || def.FPS <= 0 {
			return
		}

		// Advance one frame every N ticks.
		ticksPerFrame := int(1 / (def.FPS * dt))
		if ticksPerFrame < 1 {
			ticksPerFrame = 1
		}

		anim.FrameTimer++
		if anim.FrameTimer >= ticksPerFrame {
			anim.FrameTimer = 0
			anim.Frame++
			if anim.Frame >= def.FrameCount {
				if def.Loop {
					anim.Frame = 0
				} else {
					anim.Frame = def.FrameCount - 1
					anim.Playing = false
				}
			}
		}
	})
}

// pickClip consumes the jump trigger. A jump clip plays out before the
// air and ground clips take over.
func pickClip(anim *component.Animation) (string, bool) {
	p := anim.Params
	switch {
	case p.Triggers[movement.ParamJump]:
		p.ResetTrigger(movement.ParamJump)
		return component.ClipJump, true
	case anim.Current == component.ClipJump && anim.Playing:
		return component.ClipJump, false
	case p.Bools[movement.ParamInAir]:
		return component.ClipFall, false
	case p.Floats[movement.ParamLocomotion] > 0.01:
		return component.ClipRun, false
	default:
		return component.ClipIdle, false
	}
}
