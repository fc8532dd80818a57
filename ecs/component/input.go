package component

import "github.com/milk9111/touchmove/input"

// Input feeds events from Source into the entity's Mover.
type Input struct {
	Source input.Source
	// Events are the ones applied this tick.
	Events []input.Event
	Err    error
}

var InputComponent = NewComponent[Input]()
