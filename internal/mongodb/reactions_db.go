package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reaction and report operations shared by the comments and reviews
// collections. Both embed ModerationDb inline.

type ReportDb struct {
	UserId    string    `json:"userId" bson:"userId"`
	Reason    string    `json:"reason" bson:"reason"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type ModerationDb struct {
	Likes    []string   `json:"likes" bson:"likes"`
	Dislikes []string   `json:"dislikes" bson:"dislikes"`
	Reports  []ReportDb `json:"reports" bson:"reports"`
	IsHidden bool       `json:"isHidden" bson:"isHidden"`
}

func newModeration() ModerationDb {
	return ModerationDb{Likes: []string{}, Dislikes: []string{}, Reports: []ReportDb{}}
}

// ReactionStateDb is the projection returned by reaction updates.
type ReactionStateDb struct {
	Id           string `bson:"_id"`
	ModerationDb `bson:",inline"`
}

var reactionProjection = bson.M{"likes": 1, "dislikes": 1, "reports": 1, "isHidden": 1}

// reactionUpdate pulls the user from the opposite set and adds it to the
// target set in the same update.
func reactionUpdate(userId string, like bool, now time.Time) bson.M {
	target, opposite := "likes", "dislikes"
	if !like {
		target, opposite = opposite, target
	}
	return bson.M{
		"$pull":     bson.M{opposite: userId},
		"$addToSet": bson.M{target: userId},
		"$set":      bson.M{"updatedAt": now},
	}
}

func (db *DB) SetReaction(ctx context.Context, collection, entityId, userId string, like bool) (ReactionStateDb, error) {
	coll := db.Collection(collection)

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(reactionProjection)

	var state ReactionStateDb
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": entityId}, reactionUpdate(userId, like, time.Now().UTC()), opts).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ReactionStateDb{}, ErrRecordNotFound
		}
		return ReactionStateDb{}, err
	}

	return state, nil
}

// AddReport appends report unless report.UserId already reported the entity.
// The check and the push are one conditional update.
func (db *DB) AddReport(ctx context.Context, collection, entityId string, report ReportDb) error {
	coll := db.Collection(collection)

	filter := bson.M{
		"_id":            entityId,
		"reports.userId": bson.M{"$ne": report.UserId},
	}
	update := bson.M{
		"$push": bson.M{"reports": report},
		"$set":  bson.M{"updatedAt": report.CreatedAt},
	}

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	exists, err := db.entityExists(ctx, collection, entityId)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecordNotFound
	}
	return ErrAlreadyReported
}

// ToggleHidden flips isHidden atomically and returns the new value.
func (db *DB) ToggleHidden(ctx context.Context, collection, entityId string) (bool, error) {
	coll := db.Collection(collection)

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"isHidden":  bson.M{"$not": bson.A{bson.M{"$ifNull": bson.A{"$isHidden", false}}}},
			"updatedAt": "$$NOW",
		}}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"isHidden": 1})

	var state struct {
		IsHidden bool `bson:"isHidden"`
	}
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": entityId}, update, opts).Decode(&state); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, ErrRecordNotFound
		}
		return false, err
	}

	return state.IsHidden, nil
}

func (db *DB) entityExists(ctx context.Context, collection, entityId string) (bool, error) {
	coll := db.Collection(collection)

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := coll.FindOne(ctx, bson.M{"_id": entityId}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// reportedFilter matches entities with at least one report.
var reportedFilter = bson.M{"reports.0": bson.M{"$exists": true}}
