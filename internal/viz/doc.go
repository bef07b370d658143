// Package viz provides a terminal diagnostics monitor for a running
// simulation.
//
// The monitor is a Bubble Tea program that owns the clock: every
// [TickMsg] advances the simulation by one tick. It shows conserved
// quantities, an energy history plot and a per-body table in each
// body's own color. It does not draw the bodies spatially.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Q     - Quit
package viz
