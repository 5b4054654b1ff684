package dedupe

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w-h-a/recall/storer"
	"github.com/w-h-a/recall/storer/memory"
)

func TestCheckDetectsNearDuplicate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	id, err := s.Insert(ctx, storer.Record{
		UserId:    "u1",
		Category:  "preferences",
		Content:   "User loves hiking.",
		Embedding: []float32{0.6, 0.8, 0},
	})
	require.NoError(t, err)

	d := NewDeduper(WithStorer(s))

	dup := d.Check(ctx, "u1", "preferences", "", []float32{0.6, 0.8, 0})

	require.NotNil(t, dup)
	assert.Equal(t, id, dup.Id)
}

func TestCheckBelowThresholdIsNotDuplicate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	_, err := s.Insert(ctx, storer.Record{
		UserId:    "u1",
		Category:  "preferences",
		Content:   "User loves hiking.",
		Embedding: []float32{1, 0, 0},
	})
	require.NoError(t, err)

	d := NewDeduper(WithStorer(s))

	// similar but well under the rejection threshold
	assert.Nil(t, d.Check(ctx, "u1", "preferences", "", []float32{0.8, 0.6, 0}))
}

func TestCheckDifferentFingerprintIsNotDuplicate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorer()

	_, err := s.Insert(ctx, storer.Record{
		UserId:    "u1",
		Category:  "work",
		Content:   "Salary is $95k.",
		Embedding: []float32{1, 0},
		Metadata:  map[string]any{storer.MetaFingerprint: "salary"},
	})
	require.NoError(t, err)

	d := NewDeduper(WithStorer(s))

	// identical vector, but the fingerprint differs, so it is an update
	// for supersession to resolve, not a duplicate
	assert.Nil(t, d.Check(ctx, "u1", "work", "employer", []float32{1, 0}))
}

func TestCheckFailsOpen(t *testing.T) {
	ctx := context.Background()

	d := NewDeduper(WithStorer(&failingStorer{}))

	// storage errors must not block the write path
	assert.Nil(t, d.Check(ctx, "u1", "work", "", []float32{1, 0}))

	// no vector means nothing to compare
	healthy := NewDeduper(WithStorer(memory.NewStorer()))
	assert.Nil(t, healthy.Check(ctx, "u1", "work", "", nil))
}

type failingStorer struct{}

func (s *failingStorer) Insert(ctx context.Context, rec storer.Record) (string, error) {
	return "", fmt.Errorf("storage down")
}

func (s *failingStorer) Get(ctx context.Context, id string) (*storer.Record, error) {
	return nil, fmt.Errorf("storage down")
}

func (s *failingStorer) Search(ctx context.Context, userId string, categories []string, vector []float32, limit int) ([]storer.Record, error) {
	return nil, fmt.Errorf("storage down")
}

func (s *failingStorer) SearchKeyword(ctx context.Context, userId string, categories []string, terms []string, limit int) ([]storer.Record, error) {
	return nil, fmt.Errorf("storage down")
}

func (s *failingStorer) FindByFingerprint(ctx context.Context, userId string, fingerprintId string) ([]storer.Record, error) {
	return nil, fmt.Errorf("storage down")
}

func (s *failingStorer) Supersede(ctx context.Context, userId string, fingerprintId string, keepId string) error {
	return fmt.Errorf("storage down")
}

func (s *failingStorer) Boost(ctx context.Context, id string, relevanceDelta float64) error {
	return fmt.Errorf("storage down")
}

func (s *failingStorer) SetEmbedding(ctx context.Context, id string, vector []float32) error {
	return fmt.Errorf("storage down")
}
