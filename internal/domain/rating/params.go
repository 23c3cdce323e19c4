package rating

// Params defines all configurable parameters for the rating engine.
type Params struct {
	// DefaultStrength is the strength assigned to items with no relations.
	DefaultStrength float64

	// KFactor controls rating change sensitivity per comparison.
	KFactor float64

	// LogisticScale is the divisor in the pairing-curve exponent. With the
	// standard value of 400, a 400-point gap predicts roughly a 10:1 win ratio.
	LogisticScale float64

	// IncubationLimit is the number of relations an item may accumulate
	// before its history collapses to a single equality.
	IncubationLimit int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	DefaultStrength float64
	KFactor         float64
	LogisticScale   float64
	IncubationLimit int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		DefaultStrength: 600,
		KFactor:         32,
		LogisticScale:   400,
		IncubationLimit: 4,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.DefaultStrength > 0 {
		params.DefaultStrength = config.DefaultStrength
	}
	if config.KFactor > 0 {
		params.KFactor = config.KFactor
	}
	if config.LogisticScale > 0 {
		params.LogisticScale = config.LogisticScale
	}
	if config.IncubationLimit > 0 {
		params.IncubationLimit = config.IncubationLimit
	}

	return params
}
