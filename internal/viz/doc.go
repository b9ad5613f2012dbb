// Package viz provides a terminal viewer for running fracture scenes.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps an experiment one frame per tick and renders it
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// Movable particles render as filled discs, boundary walls as single dots,
// and broken bonds as crack lines between their endpoints. A sidebar tracks
// the damage fraction, bond counts and kinetic energy while the scene runs.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Rebuild the scene from the config
//	Q     - Quit
//	?     - Show help overlay
package viz
