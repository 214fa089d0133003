package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	db "scholarhub/database"
)

// ReviewSweeper repairs applications whose review was persisted but whose
// reviewed flag was not. The review-submission handler writes the review and
// the flag in two steps; a crash in between leaves the flag stale.
type ReviewSweeper struct {
	db *mongo.Database
}

func NewReviewSweeper(database *mongo.Database) *ReviewSweeper {
	return &ReviewSweeper{db: database}
}

// Start schedules an hourly sweep and returns the running scheduler so the
// caller can stop it on shutdown.
func (s *ReviewSweeper) Start() *cron.Cron {
	c := cron.New()
	c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Sweep(ctx); err != nil {
			log.Println("review sweep failed:", err)
		}
	})
	c.Start()
	return c
}

// Sweep flips reviewed to true on every application that has a persisted
// review pointing at it.
func (s *ReviewSweeper) Sweep(ctx context.Context) error {
	ids, err := s.db.Collection(db.ReviewsCollection).Distinct(ctx, "applicationId",
		bson.M{"applicationId": bson.M{"$exists": true, "$ne": ""}})
	if err != nil {
		return err
	}

	appIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		hex, ok := id.(string)
		if !ok {
			continue
		}
		objID, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			continue
		}
		appIDs = append(appIDs, objID)
	}
	if len(appIDs) == 0 {
		return nil
	}

	result, err := s.db.Collection(db.ApplicationsCollection).UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": appIDs}, "reviewed": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"reviewed": true}},
	)
	if err != nil {
		return err
	}
	if result.ModifiedCount > 0 {
		log.Printf("review sweep repaired %d application(s)", result.ModifiedCount)
	}
	return nil
}
