package feedback

import (
	"Feedback_Backend/internal/model"
	"context"
	"errors"
)

var (
	// ErrDataCorruption means the store exists but does not hold a JSON array.
	ErrDataCorruption = errors.New("feedback store is corrupt")
	// ErrIOFailure means the store could not be read or written.
	ErrIOFailure = errors.New("feedback store i/o failure")
)

// Repository persists the whole ordered feedback list.
// Save always replaces the stored list with the given one.
type Repository interface {
	Load(ctx context.Context) ([]model.Feedback, error)
	Save(ctx context.Context, feedback []model.Feedback) error
}
