package naive

import (
	"context"
	"regexp"
	"strings"

	"github.com/w-h-a/recall/compressor"
)

var (
	speakerPrefix = regexp.MustCompile(`(?i)^\s*(user|assistant|system|agent)\s*:\s*`)
	sentenceSplit = regexp.MustCompile(`(?m)[^.!?\n]+[.!?]?`)
)

// naiveCompressor splits an exchange into sentences without calling a
// model. It keeps every sentence verbatim, so nothing is lost — useful as
// a deterministic compressor for tests and offline runs.
type naiveCompressor struct {
	options compressor.Options
}

func (c *naiveCompressor) Compress(ctx context.Context, exchange string) ([]compressor.Fact, error) {
	var facts []compressor.Fact

	for _, line := range strings.Split(exchange, "\n") {
		line = speakerPrefix.ReplaceAllString(line, "")

		for _, sentence := range sentenceSplit.FindAllString(line, -1) {
			fact, ok := compressor.NewFact(sentence, exchange)
			if !ok {
				continue
			}

			facts = append(facts, fact)

			if len(facts) >= c.options.MaxFacts {
				return facts, nil
			}
		}
	}

	return facts, nil
}

func NewCompressor(opts ...compressor.Option) compressor.Compressor {
	options := compressor.NewOptions(opts...)

	return &naiveCompressor{
		options: options,
	}
}
