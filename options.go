package recall

import (
	"time"

	"github.com/w-h-a/recall/category"
	"github.com/w-h-a/recall/compressor"
	"github.com/w-h-a/recall/dedupe"
	embedqueue "github.com/w-h-a/recall/embed_queue"
	"github.com/w-h-a/recall/embedder"
	"github.com/w-h-a/recall/fingerprint"
	"github.com/w-h-a/recall/retriever"
	sessioncache "github.com/w-h-a/recall/session_cache"
	"github.com/w-h-a/recall/storer"
	"github.com/w-h-a/recall/validator"
)

type Option func(*Options)

type Options struct {
	Storer       storer.Storer
	Embedder     embedder.Embedder
	Compressor   compressor.Compressor
	Detector     *fingerprint.Detector
	Router       *category.Router
	Deduper      *dedupe.Deduper
	Retriever    *retriever.Retriever
	Validator    *validator.Validator
	Queue        *embedqueue.Queue
	Cache        *sessioncache.Cache
	EmbedTimeout time.Duration
	// DuplicateBoost is the relevance bump applied to an existing record
	// when a near-duplicate write lands on it.
	DuplicateBoost float64
	// AccessBoost is the relevance bump applied to records selected by
	// retrieval.
	AccessBoost float64
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

func WithCompressor(c compressor.Compressor) Option {
	return func(o *Options) {
		o.Compressor = c
	}
}

func WithDetector(d *fingerprint.Detector) Option {
	return func(o *Options) {
		o.Detector = d
	}
}

func WithRouter(r *category.Router) Option {
	return func(o *Options) {
		o.Router = r
	}
}

func WithDeduper(d *dedupe.Deduper) Option {
	return func(o *Options) {
		o.Deduper = d
	}
}

func WithRetriever(r *retriever.Retriever) Option {
	return func(o *Options) {
		o.Retriever = r
	}
}

func WithValidator(v *validator.Validator) Option {
	return func(o *Options) {
		o.Validator = v
	}
}

func WithQueue(q *embedqueue.Queue) Option {
	return func(o *Options) {
		o.Queue = q
	}
}

func WithCache(c *sessioncache.Cache) Option {
	return func(o *Options) {
		o.Cache = c
	}
}

func WithEmbedTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.EmbedTimeout = timeout
	}
}

func WithDuplicateBoost(boost float64) Option {
	return func(o *Options) {
		o.DuplicateBoost = boost
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		EmbedTimeout:   3 * time.Second,
		DuplicateBoost: 0.1,
		AccessBoost:    0.02,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Detector == nil {
		options.Detector = fingerprint.NewDetector()
	}

	if options.Router == nil {
		options.Router = category.NewRouter()
	}

	if options.Deduper == nil {
		options.Deduper = dedupe.NewDeduper(
			dedupe.WithStorer(options.Storer),
		)
	}

	if options.Retriever == nil {
		options.Retriever = retriever.NewRetriever(
			retriever.WithStorer(options.Storer),
			retriever.WithEmbedder(options.Embedder),
			retriever.WithRouter(options.Router),
		)
	}

	if options.Validator == nil {
		options.Validator = validator.NewValidator(
			validator.WithStorer(options.Storer),
		)
	}

	if options.Queue == nil && options.Embedder != nil {
		options.Queue = embedqueue.NewQueue(
			embedqueue.WithEmbedder(options.Embedder),
			embedqueue.WithStorer(options.Storer),
			embedqueue.WithTimeout(options.EmbedTimeout),
		)
	}

	if options.Cache == nil {
		options.Cache = sessioncache.NewCache()
	}

	return options
}
