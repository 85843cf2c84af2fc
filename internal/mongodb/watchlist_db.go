package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

type WatchlistDb struct {
	Id        string    `json:"id" bson:"_id"`
	UserId    string    `json:"userId" bson:"userId"`
	MediaType string    `json:"mediaType" bson:"mediaType"`
	MediaId   int64     `json:"mediaId" bson:"mediaId"`
	ListType  string    `json:"listType" bson:"listType"`
	Title     string    `json:"title" bson:"title"`
	Poster    *string   `json:"poster" bson:"poster"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func watchlistUpsertUpdate(entry WatchlistDb, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"listType":  entry.ListType,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":       newId(),
			"title":     entry.Title,
			"poster":    entry.Poster,
			"createdAt": now,
		},
	}
}

// ----- Methods for the database -----

// UpsertWatchlistEntry moves an existing entry to entry.ListType or creates
// it. The boolean reports whether a new entry was inserted.
func (db *DB) UpsertWatchlistEntry(ctx context.Context, entry WatchlistDb) (WatchlistDb, bool, error) {
	coll := db.Collection(WatchlistCollection)

	filter := bson.M{"userId": entry.UserId, "mediaId": entry.MediaId, "mediaType": entry.MediaType}
	opts := options.Update().SetUpsert(true)

	created := false
	err := retryOnDuplicate(func() error {
		result, err := coll.UpdateOne(ctx, filter, watchlistUpsertUpdate(entry, time.Now().UTC()), opts)
		if err != nil {
			return err
		}
		created = result.UpsertedCount > 0
		return nil
	})
	if err != nil {
		return WatchlistDb{}, false, err
	}

	stored, err := findOne[WatchlistDb](ctx, coll, filter)
	if err != nil {
		return WatchlistDb{}, false, err
	}

	return stored, created, nil
}

// DeleteWatchlistEntry only removes entries owned by userId.
func (db *DB) DeleteWatchlistEntry(ctx context.Context, entryId, userId string) (int64, error) {
	coll := db.Collection(WatchlistCollection)

	result, err := coll.DeleteOne(ctx, bson.M{"_id": entryId, "userId": userId})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (db *DB) GetWatchlist(ctx context.Context, userId, listType string) ([]WatchlistDb, error) {
	coll := db.Collection(WatchlistCollection)

	filter := bson.M{"userId": userId}
	if listType != "" {
		filter["listType"] = listType
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	return findMany[WatchlistDb](ctx, coll, filter, opts)
}
