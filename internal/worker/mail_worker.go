package worker

import (
	"context"
	"errors"
	"time"

	"github.com/ptit-edu/portal-backend/internal/model"
	"github.com/rs/zerolog"
)

// MaxMailAttempts bounds how often a job is pushed back after a failure.
const MaxMailAttempts = 5

// JobQueue is the subset of MailQueue used by the worker.
type JobQueue interface {
	Push(ctx context.Context, job model.AdmissionMailJob) error
	Pop(ctx context.Context, timeout time.Duration) (model.AdmissionMailJob, error)
}

// Sender delivers one notification, normally the SMTP mailer.
type Sender interface {
	NotifyAdmission(ctx context.Context, job model.AdmissionMailJob) error
}

// MailWorker consumes the admission mail queue and sends each job.
type MailWorker struct {
	queue      JobQueue
	sender     Sender
	retryDelay time.Duration
	log        zerolog.Logger
}

func NewMailWorker(queue JobQueue, sender Sender, log zerolog.Logger) *MailWorker {
	return &MailWorker{
		queue:      queue,
		sender:     sender,
		retryDelay: 5 * time.Second,
		log:        log.With().Str("component", "mail_worker").Logger(),
	}
}

// Start runs until ctx is cancelled, then drains what is left. Call in a goroutine.
func (w *MailWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *MailWorker) processNext(ctx context.Context) {
	job, err := w.queue.Pop(ctx, time.Second)
	if err != nil {
		if !errors.Is(err, ErrQueueEmpty) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Pop error")
		}
		return
	}

	if err := w.send(ctx, job); err != nil {
		w.sleep(ctx)
	}
}

// send delivers job and re-queues it on failure. It returns the delivery
// error so callers can back off.
func (w *MailWorker) send(ctx context.Context, job model.AdmissionMailJob) error {
	err := w.sender.NotifyAdmission(ctx, job)
	if err == nil {
		return nil
	}

	job.Attempt++
	log := w.log.With().
		Int("admission_id", job.Admission.ID).
		Int("attempt", job.Attempt).
		Logger()

	if job.Attempt >= MaxMailAttempts {
		log.Error().Err(err).Msg("Mail failed, giving up")
		return err
	}

	log.Warn().Err(err).Msg("Mail failed, re-queued")
	if pushErr := w.queue.Push(context.WithoutCancel(ctx), job); pushErr != nil {
		log.Error().Err(pushErr).Msg("Re-queue failed, job lost")
	}
	return err
}

func (w *MailWorker) sleep(ctx context.Context) {
	if w.retryDelay <= 0 {
		return
	}
	t := time.NewTimer(w.retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// drain sends every queued job once; the first failure stops the drain so
// the job stays queued for the next start.
func (w *MailWorker) drain(ctx context.Context) {
	drained := 0
	for {
		job, err := w.queue.Pop(ctx, 0)
		if err != nil {
			if !errors.Is(err, ErrQueueEmpty) {
				w.log.Error().Err(err).Msg("Drain pop error")
			}
			break
		}
		if err := w.send(ctx, job); err != nil {
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
