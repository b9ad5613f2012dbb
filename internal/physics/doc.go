// Package physics implements the bonded discrete element core.
//
// A solid is a contiguous slice of circular particles joined by elastic,
// breakable bonds. Advancing the simulation applies, per sub-step:
//
//   - pairwise penalty contact with velocity damping between any two
//     overlapping particles, bonded or not
//   - per-bond normal and tangential forces plus a bending torque, with an
//     irreversible breaking test
//   - a leapfrog kick from the accumulated forces, torques and gravity
//
// The core is single threaded. [World.Substep] runs each integrator phase
// over the whole particle slice before the next begins, so forces are always
// evaluated against fully drifted positions.
//
// # Layout
//
// Particles and bonds live in flat slices and are addressed by index. Nothing
// is ever deleted; a broken bond keeps its record and stops contributing.
// Fixed boundary particles carry zero inverse mass and never move.
//
// # Stepping
//
// [Stepper] turns a display rate and the material constants into a stable
// sub-step size and drives the world one frame batch at a time:
//
//	w := physics.NewWorld(1e7, physics.Vec2{Y: -9.8})
//	st, _ := physics.NewStepper(w, 60, 0.02, 1000)
//	st.Frame()
//	snap := st.Snapshot()
package physics
