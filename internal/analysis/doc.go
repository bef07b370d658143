// Package analysis characterizes trajectories beyond the conserved
// quantities tracked by the metrics package.
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates sensitive dependence
// on initial conditions:
//
//	lambda, err := analysis.LyapunovExponent(bodies, model, opts, analysis.DefaultLyapunovConfig())
//	if err == nil && lambda > 0 {
//	    // trajectory is chaotic
//	}
package analysis
