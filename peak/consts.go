package peak

const (
	DefaultGridSize   = 2000
	DefaultSearchStep = 1.0
	DefaultRatio      = 0.75

	// The interval between a peak and its seed is scanned in this many steps.
	DefaultScanDivisions = 20
	// Seed-sized steps searched past the seed before giving up.
	DefaultMaxExpansions = 10
	DefaultMaxIterations = 100
	// relative x tolerance, the same as MINPACK's hybrd default
	DefaultTolerance = 1.49012e-08

	minGridSize = 3
)
