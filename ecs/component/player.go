package component

import "github.com/milk9111/touchmove/movement"

// Mover holds the movement controller of one entity and its output for the
// current tick.
type Mover struct {
	Controller *movement.Controller
	Preset     string
	// Grounded is this tick's probe result, shared by jump and locomotion.
	Grounded bool
	Delta    movement.PoseDelta
}

var MoverComponent = NewComponent[Mover]()
