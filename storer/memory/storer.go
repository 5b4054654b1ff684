package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/w-h-a/recall/storer"
)

type memoryStorer struct {
	options storer.Options
	records map[string]storer.Record
	nextId  int64
	mtx     sync.RWMutex
}

func (s *memoryStorer) Insert(ctx context.Context, rec storer.Record) (string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.nextId++
	id := strconv.FormatInt(s.nextId, 10)

	now := time.Now().UTC()

	rec.Id = id
	rec.Current = true
	rec.CreatedAt = now
	rec.LastAccessedAt = now

	if rec.Embedding != nil {
		cpy := make([]float32, len(rec.Embedding))
		copy(cpy, rec.Embedding)
		rec.Embedding = cpy
	}

	if rec.Metadata != nil {
		metaCopy := make(map[string]any, len(rec.Metadata))
		maps.Copy(metaCopy, rec.Metadata)
		rec.Metadata = metaCopy
	}

	s.records[id] = rec

	return id, nil
}

func (s *memoryStorer) Get(ctx context.Context, id string) (*storer.Record, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	rec, exists := s.records[id]
	if !exists {
		return nil, fmt.Errorf("record %s not found", id)
	}

	return &rec, nil
}

func (s *memoryStorer) Search(ctx context.Context, userId string, categories []string, vector []float32, limit int) ([]storer.Record, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	candidates := make([]storer.Record, 0, len(s.records))

	for _, rec := range s.records {
		if rec.UserId != userId || !rec.Current || len(rec.Embedding) == 0 {
			continue
		}
		if !storer.InCategories(rec.Category, categories) {
			continue
		}
		score := storer.CosineSimilarity(vector, rec.Embedding)
		rec.Score = float32(score)
		candidates = append(candidates, rec)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func (s *memoryStorer) SearchKeyword(ctx context.Context, userId string, categories []string, terms []string, limit int) ([]storer.Record, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var matches []storer.Record

	for _, rec := range s.records {
		if rec.UserId != userId || !rec.Current {
			continue
		}
		if !storer.InCategories(rec.Category, categories) {
			continue
		}
		if !storer.MatchesTerms(rec.Content, terms) {
			continue
		}
		matches = append(matches, rec)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

func (s *memoryStorer) FindByFingerprint(ctx context.Context, userId string, fingerprintId string) ([]storer.Record, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var matches []storer.Record

	for _, rec := range s.records {
		if rec.UserId != userId || !rec.Current {
			continue
		}
		if rec.Fingerprint() != fingerprintId {
			continue
		}
		matches = append(matches, rec)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})

	return matches, nil
}

func (s *memoryStorer) Supersede(ctx context.Context, userId string, fingerprintId string, keepId string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for id, rec := range s.records {
		if rec.UserId != userId || !rec.Current || id == keepId {
			continue
		}
		if rec.Fingerprint() != fingerprintId {
			continue
		}
		rec.Current = false
		s.records[id] = rec
	}

	return nil
}

func (s *memoryStorer) Boost(ctx context.Context, id string, relevanceDelta float64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	rec, exists := s.records[id]
	if !exists {
		return fmt.Errorf("record %s not found", id)
	}

	rec.UsageFrequency++
	rec.RelevanceScore += relevanceDelta
	rec.LastAccessedAt = time.Now().UTC()
	s.records[id] = rec

	return nil
}

func (s *memoryStorer) SetEmbedding(ctx context.Context, id string, vector []float32) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	rec, exists := s.records[id]
	if !exists {
		return fmt.Errorf("record %s not found", id)
	}

	cpy := make([]float32, len(vector))
	copy(cpy, vector)

	rec.Embedding = cpy
	s.records[id] = rec

	return nil
}

func NewStorer(opts ...storer.Option) *memoryStorer {
	options := storer.NewOptions(opts...)

	s := &memoryStorer{
		options: options,
		records: map[string]storer.Record{},
		mtx:     sync.RWMutex{},
	}

	return s
}
