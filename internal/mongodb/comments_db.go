package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

type CommentDb struct {
	Id           string    `json:"id" bson:"_id"`
	UserId       string    `json:"userId" bson:"userId"`
	MediaType    string    `json:"mediaType" bson:"mediaType"`
	MediaId      int64     `json:"mediaId" bson:"mediaId"`
	Text         string    `json:"text" bson:"text"`
	ModerationDb `bson:",inline"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ----- Methods for the database -----

func (db *DB) AddComment(ctx context.Context, comment CommentDb) (CommentDb, error) {
	coll := db.Collection(CommentsCollection)

	comment.Id = newId()
	comment.ModerationDb = newModeration()
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, comment); err != nil {
		return CommentDb{}, err
	}

	return comment, nil
}

func (db *DB) GetCommentById(ctx context.Context, commentId string) (CommentDb, error) {
	return findOne[CommentDb](ctx, db.Collection(CommentsCollection), bson.M{"_id": commentId})
}

// GetVisibleComments lists the comments of a title, newest first, leaving
// out hidden ones.
func (db *DB) GetVisibleComments(ctx context.Context, mediaType string, mediaId int64) ([]CommentDb, error) {
	coll := db.Collection(CommentsCollection)

	filter := bson.M{
		"mediaType": mediaType,
		"mediaId":   mediaId,
		"isHidden":  bson.M{"$ne": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	return findMany[CommentDb](ctx, coll, filter, opts)
}

func (db *DB) GetReportedComments(ctx context.Context) ([]CommentDb, error) {
	coll := db.Collection(CommentsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	return findMany[CommentDb](ctx, coll, reportedFilter, opts)
}

func (db *DB) DeleteComment(ctx context.Context, commentId string) (int64, error) {
	coll := db.Collection(CommentsCollection)

	result, err := coll.DeleteOne(ctx, bson.M{"_id": commentId})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
