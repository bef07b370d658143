// Package physics provides the physics models consulted every tick.
//
// A [Model] is a named, stateless strategy that selects a force law,
// derives a per-body gamma factor and carries presentation hints for the
// rendering layer:
//
//   - newtonian (alias classical): softened inverse-square attraction
//   - relativistic (alias velocity-corrected): gamma-scaled masses
//   - quantum (alias stochastic): jittered separation with tunneling
//
// Exactly one instance per name exists for the process lifetime, so
// models may be shared by any number of concurrent simulations.
//
//	m := physics.Get("relativistic")
//	f := m.Force(a, b, g, softening, force.Params{RelativisticFactor: 0.0002}, nil)
//
// Unknown names resolve to the newtonian model; the model is a behaviour
// hint, not a correctness-critical input.
package physics
