package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// Reconciler is the part of the schedule service the worker drives.
type Reconciler interface {
	LoadAndReconcile(ctx context.Context) error
	TodaysAssignment() domain.TodaysAssignment
}

type ReconcileJob struct {
	Reason string
}

// ReconcileWorker reloads the schedule on demand and on a fixed interval,
// so writes made by other processes sharing the store become visible. It
// logs today's assignment whenever the day changes.
type ReconcileWorker struct {
	schedule Reconciler
	interval time.Duration
	logger   *slog.Logger
	jobs     chan ReconcileJob
	done     chan struct{}

	lastDay domain.Day
}

func NewReconcileWorker(schedule Reconciler, interval time.Duration, logger *slog.Logger) *ReconcileWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileWorker{
		schedule: schedule,
		interval: interval,
		logger:   logger.With("component", "reconcile_worker"),
		jobs:     make(chan ReconcileJob, 100),
		done:     make(chan struct{}),
	}
}

// Start runs the worker loop until ctx is cancelled. A non-positive
// interval disables the periodic reload.
func (w *ReconcileWorker) Start(ctx context.Context) {
	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		tick = ticker.C
		go func() {
			<-w.done
			ticker.Stop()
		}()
	}

	w.lastDay = w.schedule.TodaysAssignment().Day

	go func() {
		defer close(w.done)
		w.logger.Info("reconcile worker started", "interval", w.interval)
		for {
			select {
			case job := <-w.jobs:
				w.process(ctx, job)
			case <-tick:
				w.process(ctx, ReconcileJob{Reason: "interval"})
			case <-ctx.Done():
				w.logger.Info("reconcile worker shutting down")
				return
			}
		}
	}()
}

// Done is closed once the worker loop has exited.
func (w *ReconcileWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue asks for a reload. It never blocks; a full queue drops the job.
func (w *ReconcileWorker) Enqueue(reason string) bool {
	select {
	case w.jobs <- ReconcileJob{Reason: reason}:
		return true
	default:
		w.logger.Warn("reconcile queue full, dropping job", "reason", reason)
		return false
	}
}

func (w *ReconcileWorker) process(ctx context.Context, job ReconcileJob) {
	if err := w.schedule.LoadAndReconcile(ctx); err != nil {
		w.logger.Error("reconcile failed", "reason", job.Reason, "error", err)
		return
	}
	w.logger.Debug("schedule reconciled", "reason", job.Reason)

	today := w.schedule.TodaysAssignment()
	if today.Day == w.lastDay {
		return
	}
	w.lastDay = today.Day

	if today.List == nil {
		w.logger.Info("new day, nothing scheduled", "day", today.Day)
		return
	}
	w.logger.Info("new day", "day", today.Day, "list_id", today.List.ID, "list", today.List.Name)
}
