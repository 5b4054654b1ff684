package sessioncache

import "time"

type Option func(*Options)

type Options struct {
	MaxEntries int64
	TTL        time.Duration
}

func WithMaxEntries(n int64) Option {
	return func(o *Options) {
		o.MaxEntries = n
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.TTL = ttl
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxEntries: 4096,
		TTL:        15 * time.Minute, // bounded idle period
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
