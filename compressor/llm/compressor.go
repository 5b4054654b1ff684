package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/w-h-a/recall/compressor"
)

const promptTemplate = `Extract the durable facts from the exchange below as short atomic statements.

Rules:
- One fact per line, 3 to 8 words, ending with a period.
- Keep every number, price, date, and name exactly as written.
- State facts about the user in third person ("User's salary is $95k.").
- Skip greetings, filler, and anything with no lasting value.
- If there is nothing worth remembering, reply with NONE.

Exchange:
%s`

var listPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

type llmCompressor struct {
	options compressor.Options
}

func (c *llmCompressor) Compress(ctx context.Context, exchange string) ([]compressor.Fact, error) {
	if c.options.Generator == nil {
		return nil, errors.New("generator is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(promptTemplate, exchange)

	result, err := c.options.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("fact extraction: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(result), "NONE") {
		return nil, nil
	}

	var facts []compressor.Fact

	for _, line := range strings.Split(result, "\n") {
		line = listPrefix.ReplaceAllString(line, "")

		fact, ok := compressor.NewFact(line, exchange)
		if !ok {
			continue
		}

		facts = append(facts, fact)

		if len(facts) >= c.options.MaxFacts {
			break
		}
	}

	if len(facts) == 0 {
		return nil, errors.New("no facts parsed from extraction response")
	}

	return facts, nil
}

func NewCompressor(opts ...compressor.Option) compressor.Compressor {
	options := compressor.NewOptions(opts...)

	return &llmCompressor{
		options: options,
	}
}
