package embedqueue

import (
	"context"
	"time"

	"github.com/w-h-a/recall/embedder"
	"github.com/w-h-a/recall/storer"
)

type Option func(*Options)

type Options struct {
	Embedder embedder.Embedder
	Storer   storer.Storer
	Workers  int
	Buffer   int
	Timeout  time.Duration
	Context  context.Context
}

func WithEmbedder(e embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = e
	}
}

func WithStorer(s storer.Storer) Option {
	return func(o *Options) {
		o.Storer = s
	}
}

func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

func WithBuffer(n int) Option {
	return func(o *Options) {
		o.Buffer = n
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Workers: 2,
		Buffer:  64,
		Timeout: 3 * time.Second,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
