package inbound

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/config"
	"github.com/shandysiswandi/astra/internal/pkg/goroutine"
	"github.com/shandysiswandi/astra/internal/pkg/idempotency"
	"go.uber.org/atomic"
)

type JobDependency struct {
	Config      config.Config
	Goroutine   *goroutine.Manager
	Idempotency idempotency.Idempotency
	Clock       clock.Clocker
}

// CleanupJob runs the retention sweep on a fixed interval. The Redis lock is
// keyed by the tick window so only one replica sweeps per interval.
type CleanupJob struct {
	uc       ucJob
	idem     idempotency.Idempotency
	clock    clock.Clocker
	interval time.Duration
	running  *atomic.Bool
}

func newCleanupJob(dep JobDependency, uc ucJob, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		uc:       uc,
		idem:     dep.Idempotency,
		clock:    dep.Clock,
		interval: interval,
		running:  atomic.NewBool(false),
	}
}

func RegisterCleanupJob(ctx context.Context, dep JobDependency, uc ucJob) {
	interval := dep.Config.GetSecond("modules.otp.cleanup.interval")
	if interval <= 0 {
		slog.InfoContext(ctx, "otp cleanup job disabled")
		return
	}

	job := newCleanupJob(dep, uc, interval)
	err := dep.Goroutine.Go(ctx, func(pCtx context.Context) error {
		slog.InfoContext(ctx, "Running job for otp cleanup", "interval", interval.String())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-pCtx.Done():
				return nil
			case <-ticker.C:
				job.tick(pCtx)
			}
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to start otp cleanup job", "error", err)
	}
}

func (j *CleanupJob) windowKey() string {
	window := j.clock.Now().Truncate(j.interval).Unix()
	return "otp:cleanup:" + strconv.FormatInt(window, 10)
}

func (j *CleanupJob) tick(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		slog.WarnContext(ctx, "skip otp cleanup, previous run still in progress")
		return
	}
	defer j.running.Store(false)

	run := func(ctx context.Context) error {
		_, err := j.uc.Cleanup(ctx, usecase.CleanupInput{})
		return err
	}

	if j.idem == nil {
		if err := run(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to run otp cleanup", "error", err)
		}
		return
	}

	key := j.windowKey()
	err := j.idem.Exec(ctx, key, run,
		idempotency.WithLockDuration(j.interval),
		idempotency.WithStateTTL(j.interval),
	)
	switch {
	case err == nil:
	case errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		slog.DebugContext(ctx, "skip otp cleanup, window handled by another replica", "key", key)
	default:
		slog.ErrorContext(ctx, "failed to run otp cleanup", "key", key, "error", err)
	}
}
