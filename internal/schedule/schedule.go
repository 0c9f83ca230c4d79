package schedule

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2/log"
)

// FeedbackCounter reports how many records the store holds.
type FeedbackCounter interface {
	CountFeedback(ctx context.Context) (int, error)
}

// Start runs a store check every interval. The returned scheduler must be shut down by the caller.
func Start(ctx context.Context, counter FeedbackCounter, interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Error("Error while creating scheduler:", err)
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { CheckStore(ctx, counter) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error("Error while creating job:", err)
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	return s, nil
}

// CheckStore loads the store once and logs its size, or the reason it cannot be read.
func CheckStore(ctx context.Context, counter FeedbackCounter) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := counter.CountFeedback(ctx)
	if err != nil {
		log.Errorf("Feedback store check failed: %s", err)
		return
	}
	log.Infof("Feedback store check: %d records", count)
}
