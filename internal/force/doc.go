// Package force implements the pairwise force laws.
//
// Every law returns the force acting on the first body; the caller
// applies the negation to the second. All laws share one edge policy:
// coincident or non-finite separation, non-finite or non-positive G or
// softening, and any NaN/Inf produced along the way yield the zero
// vector. No law panics.
//
//   - [Classical]: softened inverse square, G·m1·m2 / (d² + S²)
//   - [VelocityCorrected]: classical law on Lorentz-like scaled masses
//     with speed-inflated softening
//   - [Stochastic]: separation jittered by an injected random source,
//     attenuated when the bodies overlap
package force
