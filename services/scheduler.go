package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSweepScheduler runs the invitation expiry sweep on a fixed cadence.
// The returned scheduler can be shut down by the caller on exit.
func (s *InvitationService) StartSweepScheduler(interval time.Duration) gocron.Scheduler {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			swept, err := s.SweepExpired(context.Background())
			if err != nil {
				log.Printf("[Scheduler] invitation sweep failed: %v", err)
				return
			}
			if swept > 0 {
				log.Printf("[Scheduler] invalidated %d expired invitations", swept)
			}
		}),
	)

	return sched
}
