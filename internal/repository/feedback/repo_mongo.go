package feedback

import (
	"Feedback_Backend/internal/model"
	"Feedback_Backend/internal/mongodb"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// feedbackDocument keeps a record at its position in the list.
type feedbackDocument struct {
	Position int      `bson:"_id"`
	Record   bson.Raw `bson:"record"`
}

type feedbackRepository struct {
	col *mongo.Collection
}

func NewFeedbackRepository(client *mongodb.Client) Repository {
	return &feedbackRepository{
		col: client.GetCollection(mongodb.Feedback),
	}
}

func (r *feedbackRepository) Load(ctx context.Context) ([]model.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("Error while finding feedback:", err)
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer cursor.Close(ctx)

	feedback := []model.Feedback{}
	for cursor.Next(ctx) {
		var doc feedbackDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataCorruption, err)
		}
		record, err := bson.MarshalExtJSON(doc.Record, false, false)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrDataCorruption, doc.Position, err)
		}
		feedback = append(feedback, model.Feedback(record))
	}

	if err := cursor.Err(); err != nil {
		log.Error("Error iterating over cursor:", err)
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	return feedback, nil
}

func (r *feedbackRepository) Save(ctx context.Context, feedback []model.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(feedback))
	for i, f := range feedback {
		var record bson.D
		if err := bson.UnmarshalExtJSON([]byte(f), false, &record); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrDataCorruption, i, err)
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": i}).
			SetReplacement(bson.M{"_id": i, "record": record}).
			SetUpsert(true))
	}

	if len(writes) > 0 {
		if _, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
			log.Error("Error while saving feedback:", err)
			return fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
	}

	_, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$gte": len(feedback)}})
	if err != nil {
		log.Error("Error while trimming feedback:", err)
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}
