package embedqueue

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

type task struct {
	id       string
	recordId string
	content  string
}

// Queue generates embeddings in the background so the write path never
// blocks on the embedding service. Each enqueued record is an explicit
// task with a trackable status, letting retrieval make principled
// decisions about records whose embedding is still pending.
type Queue struct {
	options  Options
	tasks    chan task
	statuses map[string]Status
	closed   bool
	wg       sync.WaitGroup
	mtx      sync.RWMutex
	once     sync.Once
}

// Enqueue schedules embedding generation for a record and returns the
// task id. It never blocks: when the backlog is full or the queue is
// closed, the task is marked failed immediately and the record stays on
// the keyword fallback path.
func (q *Queue) Enqueue(recordId string, content string) string {
	id := uuid.New().String()

	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.closed {
		slog.Warn("queue closed, record remains keyword-only", "record_id", recordId)
		q.statuses[id] = StatusFailed
		return id
	}

	select {
	case q.tasks <- task{id: id, recordId: recordId, content: content}:
		q.statuses[id] = StatusPending
	default:
		slog.Warn("embedding backlog full, record remains keyword-only", "record_id", recordId)
		q.statuses[id] = StatusFailed
	}

	return id
}

func (q *Queue) Status(taskId string) (Status, bool) {
	q.mtx.RLock()
	defer q.mtx.RUnlock()

	status, exists := q.statuses[taskId]
	return status, exists
}

// Close stops accepting tasks and waits for in-flight work to finish.
// Enqueue calls after Close mark their task failed instead of panicking.
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mtx.Lock()
		q.closed = true
		close(q.tasks)
		q.mtx.Unlock()
	})
	q.wg.Wait()
}

func (q *Queue) work() {
	defer q.wg.Done()

	for t := range q.tasks {
		q.process(t)
	}
}

func (q *Queue) process(t task) {
	ctx := q.options.Context

	vec, err := q.embed(ctx, t.content)
	if err != nil {
		// one retry within budget, then the record stays on the keyword
		// fallback path
		vec, err = q.embed(ctx, t.content)
	}

	if err != nil {
		slog.WarnContext(ctx, "embedding failed, record remains keyword-only", "record_id", t.recordId, "error", err)
		q.setStatus(t.id, StatusFailed)
		return
	}

	if err := q.options.Storer.SetEmbedding(ctx, t.recordId, vec); err != nil {
		slog.WarnContext(ctx, "failed to persist embedding", "record_id", t.recordId, "error", err)
		q.setStatus(t.id, StatusFailed)
		return
	}

	q.setStatus(t.id, StatusReady)
}

func (q *Queue) embed(ctx context.Context, content string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, q.options.Timeout)
	defer cancel()

	return q.options.Embedder.Embed(ctx, content)
}

func (q *Queue) setStatus(taskId string, status Status) {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.statuses[taskId] = status
}

func NewQueue(opts ...Option) *Queue {
	options := NewOptions(opts...)

	q := &Queue{
		options:  options,
		tasks:    make(chan task, options.Buffer),
		statuses: map[string]Status{},
	}

	for range options.Workers {
		q.wg.Add(1)
		go q.work()
	}

	return q
}
