package jobs

import (
	"context"
	"fmt"
	"time"

	"fitness-app-go/pkg/logger"
	"github.com/robfig/cron"
)

const sweepTimeout = time.Minute

type SessionSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Scheduler runs periodic maintenance for the API process.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

func NewScheduler(log logger.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), log: log}
}

// ScheduleSessionSweep removes expired sessions on the given cron spec,
// e.g. "@every 1h".
func (s *Scheduler) ScheduleSessionSweep(spec string, sweeper SessionSweeper) error {
	if err := s.cron.AddFunc(spec, func() { s.sweepSessions(sweeper) }); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) sweepSessions(sweeper SessionSweeper) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := sweeper.SweepExpired(ctx)
	if err != nil {
		s.log.Error("jobs: session sweep failed", "err", err)
		return
	}
	if removed > 0 {
		s.log.Info("jobs: expired sessions removed", "count", removed)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
