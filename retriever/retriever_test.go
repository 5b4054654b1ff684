package retriever

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w-h-a/recall/storer"
	"github.com/w-h-a/recall/storer/memory"
)

type stubEmbedder struct {
	vec []float32
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vec, nil
}

func TestRetrieveRespectsMaxCount(t *testing.T) {
	ctx := context.Background()

	for _, maxCount := range []int{1, 5} {
		for _, volume := range []int{0, 1, 5, 50} {
			t.Run(fmt.Sprintf("max %d volume %d", maxCount, volume), func(t *testing.T) {
				s := memory.NewStorer()
				for i := range volume {
					_, err := s.Insert(ctx, storer.Record{
						UserId:   "u1",
						Category: "work",
						Content:  fmt.Sprintf("Project update %d is on track.", i),
					})
					require.NoError(t, err)
				}

				r := NewRetriever(WithStorer(s), WithMaxCount(maxCount))

				result, err := r.Retrieve(ctx, "u1", "project updates")
				require.NoError(t, err)

				expected := volume
				if expected > maxCount {
					expected = maxCount
				}
				assert.Len(t, result.Records, expected)
			})
		}
	}
}

func TestRetrieveRespectsBudget(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	for i := range 4 {
		_, err := s.Insert(ctx, storer.Record{
			UserId:     "u1",
			Category:   "work",
			Content:    fmt.Sprintf("Project update %d is on track.", i),
			TokenCount: 6,
		})
		require.NoError(t, err)
	}

	r := NewRetriever(WithStorer(s))

	result, err := r.Retrieve(ctx, "u1", "project status", WithRetrieveBudget(10))
	require.NoError(t, err)

	assert.Len(t, result.Records, 1)
	assert.LessOrEqual(t, result.Telemetry.TokensUsed, 10)
}

func TestRetrieveOverflowForBoostedCandidates(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	for _, content := range []string{
		"Marcus runs the infrastructure team.",
		"Marcus is allergic to shellfish.",
		"Marcus moved to Lisbon last spring.",
	} {
		_, err := s.Insert(ctx, storer.Record{
			UserId:     "u1",
			Category:   "general",
			Content:    content,
			TokenCount: 60,
		})
		require.NoError(t, err)
	}

	r := NewRetriever(WithStorer(s))

	// entity-boosted candidates may exceed the budget by the overflow
	// fraction: 100 * 1.2 admits two 60-token records, not one
	result, err := r.Retrieve(ctx, "u1", "Tell me about Marcus", WithRetrieveBudget(100))
	require.NoError(t, err)

	assert.Len(t, result.Records, 2)
	assert.Greater(t, result.Telemetry.TokensUsed, 100)
	assert.LessOrEqual(t, result.Telemetry.TokensUsed, 120)
}

func TestRetrieveOrdinalReference(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	_, err := s.Insert(ctx, storer.Record{UserId: "u1", Category: "technical", Content: "The access code is 1111."})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = s.Insert(ctx, storer.Record{UserId: "u1", Category: "technical", Content: "The backup code is 2222."})
	require.NoError(t, err)

	r := NewRetriever(WithStorer(s))

	result, err := r.Retrieve(ctx, "u1", "what was the second code I gave you")
	require.NoError(t, err)

	require.NotEmpty(t, result.Records)
	assert.Contains(t, result.Records[0].Content, "2222")
}

func TestRetrieveEntityRelationGroup(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	vec := []float32{1, 0}

	_, err := s.Insert(ctx, storer.Record{
		UserId:     "u1",
		Category:   "general",
		Content:    "Marcus works at Acme.",
		TokenCount: 60,
		Embedding:  vec,
		Metadata:   map[string]any{storer.MetaEntities: []string{"Marcus", "Acme"}},
	})
	require.NoError(t, err)
	_, err = s.Insert(ctx, storer.Record{
		UserId:     "u1",
		Category:   "general",
		Content:    "Acme is headquartered in Berlin.",
		TokenCount: 60,
		Embedding:  vec,
		Metadata:   map[string]any{storer.MetaEntities: []string{"Acme", "Berlin"}},
	})
	require.NoError(t, err)
	_, err = s.Insert(ctx, storer.Record{
		UserId:     "u1",
		Category:   "general",
		Content:    "The garden needs watering on weekends.",
		TokenCount: 60,
		Embedding:  vec,
	})
	require.NoError(t, err)

	r := NewRetriever(WithStorer(s), WithEmbedder(&stubEmbedder{vec: vec}))

	// the Acme record shares an entity with the boosted Marcus record, so
	// both ride the overflow allowance; the unrelated record does not
	result, err := r.Retrieve(ctx, "u1", "Tell me about Marcus", WithRetrieveBudget(100))
	require.NoError(t, err)

	require.Len(t, result.Records, 2)

	var contents []string
	for _, rec := range result.Records {
		contents = append(contents, rec.Content)
	}
	assert.Contains(t, contents, "Marcus works at Acme.")
	assert.Contains(t, contents, "Acme is headquartered in Berlin.")
}

func TestRetrieveFindsUnembeddedRecords(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	// embedding still pending in the background queue
	_, err := s.Insert(ctx, storer.Record{
		UserId:   "u1",
		Category: "technical",
		Content:  "The wifi password is swordfish42.",
	})
	require.NoError(t, err)

	r := NewRetriever(WithStorer(s))

	result, err := r.Retrieve(ctx, "u1", "what is the wifi password")
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Contains(t, result.Records[0].Content, "swordfish42")
}

func TestRetrieveCrossCategoryFallback(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	_, err := s.Insert(ctx, storer.Record{
		UserId:   "u1",
		Category: "general",
		Content:  "User adopted a parrot named Kiwi.",
	})
	require.NoError(t, err)

	r := NewRetriever(WithStorer(s))

	// nothing in the query routes confidently, so retrieval widens
	result, err := r.Retrieve(ctx, "u1", "tell me about Kiwi")
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Contains(t, result.Records[0].Content, "Kiwi")
	assert.True(t, result.Telemetry.Fallback)
}

func TestRetrieveTelemetryRanks(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	_, err := s.Insert(ctx, storer.Record{UserId: "u1", Category: "work", Content: "Project kickoff went well."})
	require.NoError(t, err)

	r := NewRetriever(WithStorer(s))

	result, err := r.Retrieve(ctx, "u1", "project kickoff")
	require.NoError(t, err)

	require.Len(t, result.Telemetry.SelectedIds, 1)
	assert.Equal(t, 1, result.Telemetry.Ranks[result.Telemetry.SelectedIds[0]])
	assert.Equal(t, 1, result.Telemetry.CandidateCount)
}
