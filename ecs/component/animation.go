package component

import "github.com/milk9111/touchmove/movement"

type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
}

// Animation picks a clip from the animator parameters the mover writes.
type Animation struct {
	Params     *movement.ParamAnimator
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()

// Clip names.
const (
	ClipIdle = "idle"
	ClipRun  = "run"
	ClipJump = "jump"
	ClipFall = "fall"
)

func DefaultAnimationDefs() map[string]AnimationDef {
	return map[string]AnimationDef{
		ClipIdle: {Name: ClipIdle, FrameCount: 4, FPS: 4, Loop: true},
		ClipRun:  {Name: ClipRun, FrameCount: 8, FPS: 12, Loop: true},
		ClipJump: {Name: ClipJump, FrameCount: 6, FPS: 12},
		ClipFall: {Name: ClipFall, FrameCount: 2, FPS: 6, Loop: true},
	}
}
