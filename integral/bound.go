// Package integral finds the upper bound of integration at which the
// running integral of a weight function first reaches a target value —
// the core subroutine the journey solver uses to determine how long it
// takes to cross a single time-varying edge.
//
// The bracket-then-bisect root finder is domain-specific and implemented
// here directly, but the quadrature itself — evaluating the definite
// integral of a sampled function — is delegated to gonum's
// integrate.Simpsons rather than hand-rolled, since gonum.org/v1/gonum
// carries exactly that routine.
package integral

import (
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/dabke-research/sumgraph/pkg/apperror"
)

// Func is a real-valued function of time, such as a dynamic edge weight.
type Func func(t float64) float64

// Config controls the bracket-then-bisect root finder.
type Config struct {
	MaxUpperBound float64 // doubling search gives up beyond this bound
	Tolerance     float64 // acceptable error in the target integral value
	MaxIterations int     // bisection iteration cap
}

// DefaultConfig suits edge-weight functions whose rates are O(1) and
// departures early in the time axis; raise MaxUpperBound for links that
// take much longer to cross or for departures near or past t=1000, since
// no crossing may end later than MaxUpperBound.
func DefaultConfig() Config {
	return Config{
		MaxUpperBound: 1000,
		Tolerance:     0.0001,
		MaxIterations: 1000,
	}
}

// FindBound returns the smallest b >= lower such that the integral of f
// from lower to b equals target, to within cfg.Tolerance. If no such b
// exists below cfg.MaxUpperBound (f integrates too slowly, or lower is
// already infinite), FindBound returns +Inf with no error — this is the
// recovered bracket-search failure case, which signals "unreachable"
// rather than a usable finite crossing time. If the bisection stage
// exhausts cfg.MaxIterations without reaching cfg.Tolerance, FindBound
// returns a CodeToleranceNotReached error.
func FindBound(f Func, lower, target float64, cfg Config) (float64, error) {
	if math.IsInf(lower, 1) {
		return math.Inf(1), nil
	}

	upperLo, upperHi, ok := bracket(f, lower, target, cfg.MaxUpperBound)
	if !ok {
		return math.Inf(1), nil
	}

	return bisect(f, lower, upperLo, upperHi, target, cfg)
}

// bracket doubles the search window starting at [lower, lower+1] until the
// accumulated integral first meets or exceeds target. maxUpperBound is an
// absolute time, not a window length: a test point past it is clamped to
// maxUpperBound, so the bound itself is the last point evaluated and
// nothing beyond it is ever evaluated or accepted as a bracket, even when
// the doubling step overshoots the bound. A lower at or past maxUpperBound
// yields no bracket.
func bracket(f Func, lower, target, maxUpperBound float64) (lo, hi float64, ok bool) {
	lo = lower
	step := 1.0
	hi = lower + step

	for lo < maxUpperBound {
		if hi > maxUpperBound {
			hi = maxUpperBound
		}
		val := definiteIntegral(f, lower, hi)
		if val >= target {
			return lo, hi, true
		}
		lo = hi
		step *= 2
		hi = lower + step
	}

	return 0, 0, false
}

// bisect narrows [lo, hi] until the integral from lower to the midpoint is
// within tolerance of target.
func bisect(f Func, lower, lo, hi, target float64, cfg Config) (float64, error) {
	for i := 0; i < cfg.MaxIterations; i++ {
		mid := (lo + hi) / 2
		val := definiteIntegral(f, lower, mid)
		diff := val - target

		if math.Abs(diff) <= cfg.Tolerance {
			return mid, nil
		}
		if diff < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0, apperror.New(apperror.CodeToleranceNotReached,
		"bisection did not converge within max_iterations")
}

// quadratureSamples is the number of evenly spaced abscissas fed to
// integrate.Simpsons per definiteIntegral call. Odd and comfortably above
// the package's n>=3 floor, it buys enough resolution for the smoothly
// varying edge-weight functions this package integrates without
// resampling adaptively.
const quadratureSamples = 65

// definiteIntegral evaluates the definite integral of f over [a, b] by
// sampling it on a uniform grid and handing the samples to
// integrate.Simpsons.
func definiteIntegral(f Func, a, b float64) float64 {
	if a == b {
		return 0
	}

	x := make([]float64, quadratureSamples)
	y := make([]float64, quadratureSamples)
	step := (b - a) / float64(quadratureSamples-1)
	for i := range x {
		x[i] = a + step*float64(i)
		y[i] = f(x[i])
	}

	return integrate.Simpsons(x, y)
}
