package workers

import (
	"context"
	"log"
	"time"

	"gift-exchange-system/services"
)

// PollExpiredEvents completes active events whose end date has passed. It
// runs until the context is cancelled; each tick is independent so a failed
// sweep just waits for the next one.
func PollExpiredEvents(ctx context.Context, events *services.EventService, interval time.Duration) {
	log.Printf("Starting event expiry worker (every %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// run once at startup so a restart doesn't leave stale events around
	runExpirySweep(ctx, events)

	for {
		select {
		case <-ctx.Done():
			log.Println("Event expiry worker stopped")
			return
		case <-ticker.C:
			runExpirySweep(ctx, events)
		}
	}
}

func runExpirySweep(ctx context.Context, events *services.EventService) {
	completed, err := events.CompleteExpired(ctx)
	if err != nil {
		log.Printf("[ExpiryWorker] sweep failed: %v", err)
		return
	}
	if completed > 0 {
		log.Printf("[ExpiryWorker] completed %d expired events", completed)
	}
}
