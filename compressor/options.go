package compressor

import (
	"time"

	"github.com/w-h-a/recall/generator"
)

type Option func(*Options)

type Options struct {
	Generator generator.Generator
	Timeout   time.Duration
	MaxFacts  int
}

func WithGenerator(g generator.Generator) Option {
	return func(o *Options) {
		o.Generator = g
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithMaxFacts(n int) Option {
	return func(o *Options) {
		o.MaxFacts = n
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Timeout:  10 * time.Second,
		MaxFacts: 12,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
