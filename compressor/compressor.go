package compressor

import (
	"context"
	"strings"

	"github.com/w-h-a/recall/util/extract"
	"github.com/w-h-a/recall/util/tokens"
)

// Compressor turns a raw user/assistant exchange into atomic fact lines:
// one self-contained sentence each, terminally punctuated.
type Compressor interface {
	Compress(ctx context.Context, exchange string) ([]Fact, error)
}

type Fact struct {
	Content         string
	Entities        []string
	TemporalAnchors []string
	Stats           Stats
}

type Stats struct {
	OriginalTokens   int
	CompressedTokens int
}

// Ratio is the original-to-compressed token ratio. Zero when either side
// is empty.
func (s Stats) Ratio() float64 {
	if s.CompressedTokens == 0 || s.OriginalTokens == 0 {
		return 0
	}
	return float64(s.OriginalTokens) / float64(s.CompressedTokens)
}

// NewFact normalizes a fact line against its source exchange: enforces
// terminal punctuation and captures entities, temporal anchors, and
// compression stats. Returns false for blank lines.
func NewFact(line string, exchange string) (Fact, bool) {
	content := strings.TrimSpace(line)
	if len(content) == 0 {
		return Fact{}, false
	}

	if !strings.ContainsAny(content[len(content)-1:], ".!?") {
		content += "."
	}

	return Fact{
		Content:         content,
		Entities:        extract.Entities(content),
		TemporalAnchors: extract.Dates(content),
		Stats: Stats{
			OriginalTokens:   tokens.Estimate(exchange),
			CompressedTokens: tokens.Estimate(content),
		},
	}, true
}
