package feedback

import (
	"Feedback_Backend/internal/model"
	repoFeedback "Feedback_Backend/internal/repository/feedback"
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// Notifier is told about every record that reached the store.
type Notifier interface {
	FeedbackAdded(feedback model.Feedback)
}

// Notifiers fans a record out to several notifiers.
type Notifiers []Notifier

func (n Notifiers) FeedbackAdded(feedback model.Feedback) {
	for _, notifier := range n {
		notifier.FeedbackAdded(feedback)
	}
}

type FeedbackService struct {
	feedbackRepo repoFeedback.Repository
	notifier     Notifier

	// mu serialises load-append-save so concurrent submissions are never lost.
	mu sync.RWMutex
}

func NewFeedbackService(feedbackRepo repoFeedback.Repository, notifier Notifier) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		notifier:     notifier,
	}
}

func (s *FeedbackService) AddFeedback(ctx context.Context, feedback model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	feedbackList, err := s.feedbackRepo.Load(ctx)
	if err != nil {
		log.Error("Error while loading feedback:", err)
		return err
	}

	feedbackList = append(feedbackList, feedback)

	if err := s.feedbackRepo.Save(ctx, feedbackList); err != nil {
		log.Error("Error while saving feedback:", err)
		return err
	}

	log.Debugf("Feedback stored, %d records total", len(feedbackList))

	if s.notifier != nil {
		s.notifier.FeedbackAdded(feedback)
	}
	return nil
}

func (s *FeedbackService) GetFeedback(ctx context.Context) ([]model.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.feedbackRepo.Load(ctx)
}

func (s *FeedbackService) CountFeedback(ctx context.Context) (int, error) {
	feedbackList, err := s.GetFeedback(ctx)
	if err != nil {
		return 0, err
	}
	return len(feedbackList), nil
}
