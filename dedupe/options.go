package dedupe

import "github.com/w-h-a/recall/storer"

type Option func(*Options)

type Options struct {
	Storer              storer.Storer
	RejectionSimilarity float64
}

func WithStorer(s storer.Storer) Option {
	return func(o *Options) {
		o.Storer = s
	}
}

func WithRejectionSimilarity(threshold float64) Option {
	return func(o *Options) {
		o.RejectionSimilarity = threshold
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		RejectionSimilarity: 0.97, // strong bias against duplicates
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
