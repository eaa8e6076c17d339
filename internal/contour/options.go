package contour

// Options collects every threshold the tracer uses. Length thresholds are in
// the units of the domain; DefaultOptions returns values tuned for a domain
// measured in screen pixels.
type Options struct {
	// Tolerance is the accepted |potential-level| after refinement.
	Tolerance float64
	// MaxRefineSteps caps both the overshoot march and the bisection.
	MaxRefineSteps int
	// Overshoot scales the Newton step of the overshoot march so it
	// reliably crosses the level.
	Overshoot float64
	// MinGradient ends refinement or tracing when |grad| falls below it.
	MinGradient float64

	StepSize float64
	// DriftTolerance triggers a snap back onto the level.
	DriftTolerance float64
	SampleEvery    int
	MaxSteps       int
	// CloseTolerance and MinCloseSteps decide when a path has closed.
	CloseTolerance float64
	MinCloseSteps  int

	MaxContours int
	// ExcludeDistSq skips seed cells whose centroid is this close to a
	// charge (squared distance).
	ExcludeDistSq float64
	// KeepDistSq drops contours that never get further than this from
	// their nearest charge (squared distance).
	KeepDistSq float64
}

func DefaultOptions() Options {
	return Options{
		Tolerance:      1e-4,
		MaxRefineSteps: 200,
		Overshoot:      1.5,
		MinGradient:    1e-6,
		StepSize:       0.5,
		DriftTolerance: 0.1,
		SampleEvery:    10,
		MaxSteps:       10000,
		CloseTolerance: 0.5,
		MinCloseSteps:  20,
		MaxContours:    50,
		ExcludeDistSq:  100,
		KeepDistSq:     150,
	}
}

// Scale multiplies every length threshold by f. Potential tolerances are
// left alone.
func (o Options) Scale(f float64) Options {
	o.StepSize *= f
	o.CloseTolerance *= f
	o.ExcludeDistSq *= f * f
	o.KeepDistSq *= f * f
	return o
}
