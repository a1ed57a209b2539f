package workers

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/habitloop/streakboard/internal/core/domain"
	"github.com/habitloop/streakboard/internal/logger"
)

// MetricsRecomputer is the slice of MetricsService the worker needs.
type MetricsRecomputer interface {
	Recompute(ctx context.Context, challengeID, userID string) (*domain.Metrics, error)
}

type ReconcileJob struct {
	ChallengeID string
	UserID      string
}

// ReconcileWorker recomputes metrics rows in the background. Its main
// customer is the nightly sweep: a streak must decay when a user simply
// stops checking in, and without the sweep that would only happen on the
// user's next write.
type ReconcileWorker struct {
	metrics        MetricsRecomputer
	membershipRepo domain.MembershipRepository
	jobs           chan ReconcileJob
	scheduler      gocron.Scheduler
}

func NewReconcileWorker(metrics MetricsRecomputer, membershipRepo domain.MembershipRepository) *ReconcileWorker {
	return &ReconcileWorker{
		metrics:        metrics,
		membershipRepo: membershipRepo,
		jobs:           make(chan ReconcileJob, 256),
	}
}

// Start launches the job consumer and schedules the daily sweep shortly
// after UTC midnight, once the previous day has become final.
func (w *ReconcileWorker) Start(ctx context.Context) error {
	go func() {
		logger.S.Info("metrics reconcile worker started")
		for {
			select {
			case job := <-w.jobs:
				w.process(ctx, job)
			case <-ctx.Done():
				logger.S.Info("metrics reconcile worker shutting down")
				return
			}
		}
	}()

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 10, 0))),
		gocron.NewTask(func() { w.Sweep(ctx) }),
	)
	if err != nil {
		return err
	}

	scheduler.Start()
	w.scheduler = scheduler
	return nil
}

func (w *ReconcileWorker) Stop() {
	if w.scheduler != nil {
		_ = w.scheduler.Shutdown()
	}
}

// Enqueue schedules a recompute without blocking the caller. When the
// queue is full the job is dropped; the nightly sweep will catch up.
func (w *ReconcileWorker) Enqueue(challengeID, userID string) {
	select {
	case w.jobs <- ReconcileJob{ChallengeID: challengeID, UserID: userID}:
	default:
		logger.S.Warnw("reconcile queue full, dropping job",
			"challenge_id", challengeID,
			"user_id", userID,
		)
	}
}

// Sweep enqueues a recompute for every membership in the system.
func (w *ReconcileWorker) Sweep(ctx context.Context) {
	memberships, err := w.membershipRepo.ListAll(ctx)
	if err != nil {
		logger.S.Errorw("reconcile sweep failed to list memberships", "error", err)
		return
	}

	for _, m := range memberships {
		w.Enqueue(m.ChallengeID, m.UserID)
	}

	logger.S.Infow("reconcile sweep enqueued", "memberships", len(memberships))
}

func (w *ReconcileWorker) process(ctx context.Context, job ReconcileJob) {
	if _, err := w.metrics.Recompute(ctx, job.ChallengeID, job.UserID); err != nil {
		logger.S.Errorw("reconcile recompute failed",
			"challenge_id", job.ChallengeID,
			"user_id", job.UserID,
			"error", err,
		)
	}
}
