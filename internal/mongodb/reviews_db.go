package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

type ReviewDb struct {
	Id           string    `json:"id" bson:"_id"`
	UserId       string    `json:"userId" bson:"userId"`
	MediaType    string    `json:"mediaType" bson:"mediaType"`
	MediaId      int64     `json:"mediaId" bson:"mediaId"`
	Category     string    `json:"category" bson:"category"`
	Text         string    `json:"text" bson:"text"`
	HasSpoilers  bool      `json:"hasSpoilers" bson:"hasSpoilers"`
	ModerationDb `bson:",inline"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ----- Methods for the database -----

// AddReview returns ErrDuplicateRecord when the user already reviewed the
// title. The unique index decides, not a prior read.
func (db *DB) AddReview(ctx context.Context, review ReviewDb) (ReviewDb, error) {
	coll := db.Collection(ReviewsCollection)

	review.Id = newId()
	review.ModerationDb = newModeration()
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ReviewDb{}, ErrDuplicateRecord
		}
		return ReviewDb{}, err
	}

	return review, nil
}

func (db *DB) GetReviewById(ctx context.Context, reviewId string) (ReviewDb, error) {
	return findOne[ReviewDb](ctx, db.Collection(ReviewsCollection), bson.M{"_id": reviewId})
}

// GetReviewsByTitle returns every review of a title, hidden ones included,
// newest first.
func (db *DB) GetReviewsByTitle(ctx context.Context, mediaType string, mediaId int64) ([]ReviewDb, error) {
	coll := db.Collection(ReviewsCollection)

	filter := bson.M{"mediaType": mediaType, "mediaId": mediaId}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	return findMany[ReviewDb](ctx, coll, filter, opts)
}

func (db *DB) GetReportedReviews(ctx context.Context) ([]ReviewDb, error) {
	coll := db.Collection(ReviewsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	return findMany[ReviewDb](ctx, coll, reportedFilter, opts)
}

func (db *DB) DeleteReview(ctx context.Context, reviewId string) (int64, error) {
	coll := db.Collection(ReviewsCollection)

	result, err := coll.DeleteOne(ctx, bson.M{"_id": reviewId})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
