package category

type Option func(*Options)

type Options struct {
	Registry        *Registry
	Weights         Weights
	ConfidenceFloor float64
	ScoreFloor      float64
}

type Weights struct {
	Keyword  float64
	Pattern  float64
	Topic    float64
	Priority float64
}

func WithRegistry(registry *Registry) Option {
	return func(o *Options) {
		o.Registry = registry
	}
}

func WithWeights(weights Weights) Option {
	return func(o *Options) {
		o.Weights = weights
	}
}

func WithConfidenceFloor(floor float64) Option {
	return func(o *Options) {
		o.ConfidenceFloor = floor
	}
}

func WithScoreFloor(floor float64) Option {
	return func(o *Options) {
		o.ScoreFloor = floor
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Weights: Weights{
			Keyword:  1.0, // direct vocabulary hit
			Pattern:  1.2, // structural match is a stronger signal
			Topic:    0.8,
			Priority: 0.3, // mild urgency bias
		},
		ConfidenceFloor: 0.80,
		// above the largest possible priority-only contribution, so a
		// category needs at least one content signal to win
		ScoreFloor: 0.30,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Registry == nil {
		options.Registry = NewRegistry()
	}
	return options
}
