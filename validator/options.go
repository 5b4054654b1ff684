package validator

import "github.com/w-h-a/recall/storer"

type Option func(*Options)

type Options struct {
	Storer storer.Storer
	// Limit bounds the direct storage queries. It is intentionally far
	// larger than any retrieval cap: validators must see the full
	// population of matching records.
	Limit int
}

func WithStorer(s storer.Storer) Option {
	return func(o *Options) {
		o.Storer = s
	}
}

func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Limit: 100,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
