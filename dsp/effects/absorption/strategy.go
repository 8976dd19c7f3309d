package absorption

// FilterStrategy transforms an impulse response into a new one of the same
// length. Implementations must not modify the input.
type FilterStrategy interface {
	Name() string
	Apply(signal []float64) ([]float64, error)
}
