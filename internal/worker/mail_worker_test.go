package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQueue struct {
	mu   sync.Mutex
	jobs []model.AdmissionMailJob
}

func (q *memQueue) Push(_ context.Context, job model.AdmissionMailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memQueue) Pop(ctx context.Context, timeout time.Duration) (model.AdmissionMailJob, error) {
	q.mu.Lock()
	if len(q.jobs) > 0 {
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		q.mu.Unlock()
		return job, nil
	}
	q.mu.Unlock()
	if timeout > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(10 * time.Millisecond):
		}
	}
	return model.AdmissionMailJob{}, ErrQueueEmpty
}

func (q *memQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

type recordingSender struct {
	mu    sync.Mutex
	fails int
	sent  []int
	calls int
}

func (s *recordingSender) NotifyAdmission(_ context.Context, job model.AdmissionMailJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.fails {
		return errors.New("smtp timeout")
	}
	s.sent = append(s.sent, job.Admission.ID)
	return nil
}

func newTestWorker(q JobQueue, s Sender) *MailWorker {
	w := NewMailWorker(q, s, zerolog.Nop())
	w.retryDelay = 0
	return w
}

func job(id int) model.AdmissionMailJob {
	return model.AdmissionMailJob{Admission: model.Admission{ID: id}}
}

func TestMailWorkerRetriesByRequeue(t *testing.T) {
	q := &memQueue{}
	require.NoError(t, q.Push(context.Background(), job(1)))
	s := &recordingSender{fails: 2}
	w := newTestWorker(q, s)

	ctx := context.Background()
	w.processNext(ctx)
	w.processNext(ctx)
	w.processNext(ctx)

	assert.Equal(t, 3, s.calls)
	assert.Equal(t, []int{1}, s.sent)
	assert.Equal(t, 0, q.len())
}

func TestMailWorkerGivesUpAfterMaxAttempts(t *testing.T) {
	q := &memQueue{}
	j := job(9)
	j.Attempt = MaxMailAttempts - 1
	require.NoError(t, q.Push(context.Background(), j))
	w := newTestWorker(q, &recordingSender{fails: 100})

	w.processNext(context.Background())
	assert.Equal(t, 0, q.len())
}

func TestMailWorkerDrainsOnShutdown(t *testing.T) {
	q := &memQueue{}
	s := &recordingSender{}
	w := newTestWorker(q, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 1; i <= 3; i++ {
		require.NoError(t, q.Push(context.Background(), job(i)))
	}

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, []int{1, 2, 3}, s.sent)
}

func TestMailWorkerDrainStopsOnFailure(t *testing.T) {
	q := &memQueue{}
	for i := 1; i <= 2; i++ {
		require.NoError(t, q.Push(context.Background(), job(i)))
	}
	w := newTestWorker(q, &recordingSender{fails: 1})

	w.drain(context.Background())
	assert.Equal(t, 2, q.len())
}
