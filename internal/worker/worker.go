// Package worker runs the background task loop: it drains the task queue
// and keeps the announcement cache slot fresh on a timer.
package worker

import (
	"context"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
)

// dequeueTimeout bounds each blocking pop so the loop can observe
// context cancellation.
const dequeueTimeout = 5 * time.Second

// Worker consumes queued tasks and periodically recomputes the
// announcement. One Worker per process is enough; handlers are idempotent
// so running more is safe.
type Worker struct {
	consumer        domain.TaskConsumer
	cacheRefresh    domain.CacheRefreshService
	emailService    domain.EmailService
	logger          *slog.Logger
	refreshInterval time.Duration
}

func New(
	consumer domain.TaskConsumer,
	cacheRefresh domain.CacheRefreshService,
	emailService domain.EmailService,
	logger *slog.Logger,
	refreshInterval time.Duration,
) *Worker {
	return &Worker{
		consumer:        consumer,
		cacheRefresh:    cacheRefresh,
		emailService:    emailService,
		logger:          logger,
		refreshInterval: refreshInterval,
	}
}

// Run blocks until ctx is canceled. A failed task is logged and dropped;
// the loop itself only stops on cancellation.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.cacheRefresh.RefreshAnnouncement(ctx); err != nil {
				w.logger.Error("scheduled announcement refresh failed", "err", err)
			}
		default:
		}

		task, err := w.consumer.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("failed to dequeue task", "err", err)
			continue
		}
		if task == nil {
			continue
		}
		w.handle(ctx, task)
	}
}

func (w *Worker) handle(ctx context.Context, task *domain.Task) {
	switch task.Type {
	case domain.TaskSendConfirmationEmail:
		data := &domain.ConferenceConfirmationEmailData{
			Email:          task.Params[domain.TaskParamEmail],
			ConferenceInfo: task.Params[domain.TaskParamConferenceInfo],
		}
		if err := w.emailService.SendConferenceConfirmation(ctx, data); err != nil {
			w.logger.Error("confirmation email task failed", "email", data.Email, "err", err)
		}
	case domain.TaskSetFeaturedSpeaker:
		speaker := task.Params[domain.TaskParamSpeaker]
		conferenceID := task.Params[domain.TaskParamConferenceID]
		if err := w.cacheRefresh.RefreshFeaturedSpeaker(ctx, speaker, conferenceID); err != nil {
			w.logger.Error("featured speaker task failed", "conference_id", conferenceID, "err", err)
		}
	case domain.TaskSetAnnouncement:
		if _, err := w.cacheRefresh.RefreshAnnouncement(ctx); err != nil {
			w.logger.Error("announcement task failed", "err", err)
		}
	default:
		w.logger.Warn("unknown task type", "type", task.Type)
	}
}
