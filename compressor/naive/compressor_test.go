package naive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w-h-a/recall/compressor"
)

func TestCompressSplitsSentences(t *testing.T) {
	c := NewCompressor()

	facts, err := c.Compress(context.Background(), "User: My name is Dana. I work at Initech.\nAssistant: Noted!")

	require.NoError(t, err)
	require.Len(t, facts, 3)
	assert.Equal(t, "My name is Dana.", facts[0].Content)
	assert.Equal(t, "I work at Initech.", facts[1].Content)
	assert.Equal(t, "Noted!", facts[2].Content)
}

func TestCompressRespectsMaxFacts(t *testing.T) {
	c := NewCompressor(compressor.WithMaxFacts(2))

	facts, err := c.Compress(context.Background(), "One. Two. Three. Four.")

	require.NoError(t, err)
	assert.Len(t, facts, 2)
}

func TestCompressEmptyExchange(t *testing.T) {
	c := NewCompressor()

	facts, err := c.Compress(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, facts)
}
