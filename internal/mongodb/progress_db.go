package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

type ProgressDb struct {
	Id        string    `json:"id" bson:"_id"`
	UserId    string    `json:"userId" bson:"userId"`
	MediaType string    `json:"mediaType" bson:"mediaType"`
	MediaId   int64     `json:"mediaId" bson:"mediaId"`
	Title     string    `json:"title" bson:"title"`
	Poster    *string   `json:"poster" bson:"poster"`
	Season    *int      `json:"season" bson:"season"`
	Episode   *int      `json:"episode" bson:"episode"`
	Progress  float64   `json:"progress" bson:"progress"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func progressFilter(userId, mediaType string, mediaId int64) bson.M {
	return bson.M{"userId": userId, "mediaType": mediaType, "mediaId": mediaId}
}

// progressUpsertUpdate sets the descriptive fields only when the document is
// created; progress and updatedAt are written on every call.
func progressUpsertUpdate(doc ProgressDb, now time.Time) bson.M {
	return bson.M{
		"$setOnInsert": bson.M{
			"_id":       newId(),
			"title":     doc.Title,
			"poster":    doc.Poster,
			"season":    doc.Season,
			"episode":   doc.Episode,
			"createdAt": now,
		},
		"$set": bson.M{
			"progress":  doc.Progress,
			"updatedAt": now,
		},
	}
}

// ----- Methods for the database -----

// UpsertProgress finds the record for the identity in doc, creating it when
// absent, and returns the stored document.
func (db *DB) UpsertProgress(ctx context.Context, doc ProgressDb) (ProgressDb, error) {
	coll := db.Collection(ProgressCollection)

	filter := progressFilter(doc.UserId, doc.MediaType, doc.MediaId)
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored ProgressDb
	err := retryOnDuplicate(func() error {
		update := progressUpsertUpdate(doc, time.Now().UTC())
		return coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	})
	if err != nil {
		return ProgressDb{}, err
	}

	return stored, nil
}

func (db *DB) GetProgressByUser(ctx context.Context, userId string, limit int64) ([]ProgressDb, error) {
	coll := db.Collection(ProgressCollection)

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	return findMany[ProgressDb](ctx, coll, bson.M{"userId": userId}, opts)
}

func (db *DB) DeleteProgress(ctx context.Context, userId, mediaType string, mediaId int64) (int64, error) {
	coll := db.Collection(ProgressCollection)

	result, err := coll.DeleteOne(ctx, progressFilter(userId, mediaType, mediaId))
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
