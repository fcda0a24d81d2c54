package kde

const (
	// DefaultGridSize is the number of points Kdensity evaluates when given a non-positive size.
	DefaultGridSize = 2000

	// quadrature points per bandwidth-wide segment in Mass
	massQuadPoints = 16
	// Mass never splits an interval into more segments than this
	massMaxSegments = 4096
)
