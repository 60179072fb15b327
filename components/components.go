// Package components defines ECS components for the simulation.
package components

// Food marks a food item on the board.
type Food struct {
	Pos Position
}
