package astro

import (
	"errors"
	"fmt"
	"math"
)

// Solver limits.
const (
	// MaxIterations bounds both root finders.
	MaxIterations = 50

	// SolarSearchHalfWidth is the half width, in days, of the bisection
	// bracket around the caller's estimate.
	SolarSearchHalfWidth = 20.0

	// SolarTolerance is the largest residual, in degrees, accepted from
	// FindSolarLongitude.
	SolarTolerance = 1e-4

	// NewMoonTolerance is the Moon-Sun elongation, in degrees, at which
	// FindNewMoon stops.
	NewMoonTolerance = 1e-4

	// RelativeLunarSpeed is the mean Moon-minus-Sun angular speed in
	// degrees per day.
	RelativeLunarSpeed = 12.1908

	// bracketEpsilon stops bisection early once the bracket is narrower
	// than this many days (well under a millisecond).
	bracketEpsilon = 1e-9
)

// ErrDidNotConverge is wrapped by every ConvergenceError.
var ErrDidNotConverge = errors.New("root finder did not converge")

// ConvergenceError reports a root finder that ran out of iterations or
// whose final estimate misses the target by more than its tolerance.
type ConvergenceError struct {
	Solver     string  // "solar_longitude" or "new_moon"
	Target     float64 // target angle in degrees
	Seed       float64 // caller's JD estimate
	Estimate   float64 // last JD estimate
	Residual   float64 // wrapped angular miss in degrees
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: no root for %.4f° near JD %.4f after %d iterations (last JD %.6f, residual %.6f°)",
		e.Solver, e.Target, e.Seed, e.Iterations, e.Estimate, e.Residual)
}

func (e *ConvergenceError) Unwrap() error { return ErrDidNotConverge }

// FindSolarLongitude returns the JD at which the Sun's longitude equals
// target, searching [approxJD-20, approxJD+20] by bisection.
//
// The true crossing must lie inside the bracket. When it does not, the
// bisection collapses onto a bracket edge and a *ConvergenceError carrying
// that edge is returned.
func FindSolarLongitude(target, approxJD float64) (float64, error) {
	low := approxJD - SolarSearchHalfWidth
	high := approxJD + SolarSearchHalfWidth

	i := 0
	for ; i < MaxIterations && high-low > bracketEpsilon; i++ {
		mid := (low + high) / 2
		if WrapDegrees(SolarLongitude(mid)-target) > 0 {
			high = mid
		} else {
			low = mid
		}
	}

	jd := (low + high) / 2
	residual := WrapDegrees(SolarLongitude(jd) - target)
	if math.Abs(residual) > SolarTolerance {
		return jd, &ConvergenceError{
			Solver:     "solar_longitude",
			Target:     target,
			Seed:       approxJD,
			Estimate:   jd,
			Residual:   residual,
			Iterations: i,
		}
	}
	return jd, nil
}

// FindNewMoon returns the JD of the new moon (zero Moon-Sun elongation)
// nearest approxJD using Newton steps at the mean relative speed.
func FindNewMoon(approxJD float64) (float64, error) {
	t := approxJD
	var diff float64
	for i := 0; i < MaxIterations; i++ {
		diff = WrapDegrees(LunarLongitude(t) - SolarLongitude(t))
		if math.Abs(diff) < NewMoonTolerance {
			return t, nil
		}
		t -= diff / RelativeLunarSpeed
	}
	return t, &ConvergenceError{
		Solver:     "new_moon",
		Seed:       approxJD,
		Estimate:   t,
		Residual:   diff,
		Iterations: MaxIterations,
	}
}
