package services

import (
	"fmt"
	"time"

	"sportify-backend/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

// StartDeadlineSweep closes open tournaments whose registration deadline has
// passed. The caller owns the returned scheduler and must shut it down.
func (s *TournamentService) StartDeadlineSweep(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	log := logger.WithComponent("deadline-sweep")

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			closed, err := s.CloseExpired(time.Now())
			if err != nil {
				log.WithError(err).Error("failed to close expired tournaments")
				return
			}
			if closed > 0 {
				log.WithField("closed", closed).Info("closed tournaments past registration deadline")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule deadline sweep: %w", err)
	}

	sched.Start()
	return sched, nil
}
