package retriever

import (
	"time"

	"github.com/w-h-a/recall/category"
	"github.com/w-h-a/recall/embedder"
	"github.com/w-h-a/recall/storer"
)

type Option func(*Options)

type Options struct {
	Storer            storer.Storer
	Embedder          embedder.Embedder
	Router            *category.Router
	Weights           Weights
	Budget            int
	MaxCount          int
	Overflow          float64
	HalfLife          time.Duration
	MinPrimaryResults int
	EmbedTimeout      time.Duration
}

type Weights struct {
	Similarity float64
	Recency    float64
	Entity     float64
	Recall     float64
	Ordinal    float64
}

func WithStorer(s storer.Storer) Option {
	return func(o *Options) {
		o.Storer = s
	}
}

func WithEmbedder(e embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = e
	}
}

func WithRouter(r *category.Router) Option {
	return func(o *Options) {
		o.Router = r
	}
}

func WithWeights(weights Weights) Option {
	return func(o *Options) {
		o.Weights = weights
	}
}

func WithBudget(budget int) Option {
	return func(o *Options) {
		o.Budget = budget
	}
}

func WithMaxCount(n int) Option {
	return func(o *Options) {
		o.MaxCount = n
	}
}

func WithOverflow(fraction float64) Option {
	return func(o *Options) {
		o.Overflow = fraction
	}
}

func WithHalfLife(halfLife time.Duration) Option {
	return func(o *Options) {
		o.HalfLife = halfLife
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Weights: Weights{
			Similarity: 1.0, // semantic match is the base signal
			Recency:    0.3,
			Entity:     0.8,
			Recall:     0.6,
			Ordinal:    0.7,
		},
		Budget:            2400,
		MaxCount:          5,
		Overflow:          0.20, // keep semantically linked facts together
		HalfLife:          72 * time.Hour,
		MinPrimaryResults: 2,
		EmbedTimeout:      3 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Router == nil {
		options.Router = category.NewRouter()
	}
	return options
}

type RetrieveOption func(*RetrieveOptions)

type RetrieveOptions struct {
	Budget   int
	MaxCount int
}

func WithRetrieveBudget(budget int) RetrieveOption {
	return func(o *RetrieveOptions) {
		o.Budget = budget
	}
}

func WithRetrieveMaxCount(n int) RetrieveOption {
	return func(o *RetrieveOptions) {
		o.MaxCount = n
	}
}

func NewRetrieveOptions(defaults Options, opts ...RetrieveOption) RetrieveOptions {
	options := RetrieveOptions{
		Budget:   defaults.Budget,
		MaxCount: defaults.MaxCount,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
