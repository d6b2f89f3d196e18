package fetch

import (
	"context"
	"time"

	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/model"
	"go.uber.org/zap"
)

// Scheduler re-runs the commercial-catalog sweep at a fixed wall-clock
// interval. Subjects within a sweep run strictly one at a time, which bounds
// upstream concurrency and keeps each task's resume offset stable.
//
// There is no overlap guard: a sweep that outlives the interval would overlap
// the next one. Sweeps are expected to finish well inside the interval.
type Scheduler struct {
	orchestrator     *Orchestrator
	subjects         []string
	perSubjectTarget int
	interval         time.Duration
}

func NewScheduler(o *Orchestrator, subjects []string, perSubjectTarget int, interval time.Duration) *Scheduler {
	return &Scheduler{
		orchestrator:     o,
		subjects:         subjects,
		perSubjectTarget: perSubjectTarget,
		interval:         interval,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info("Catalog sweep scheduled",
		zap.Int("subjects", len(s.subjects)),
		zap.Duration("interval", s.interval))

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	log.Info("Catalog sweep starting", zap.Time("at", time.Now()))
	s.orchestrator.RunSweep(ctx, model.ProviderGoogleBooks, s.subjects, s.perSubjectTarget)
}
