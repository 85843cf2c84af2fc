package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newId() string {
	return primitive.NewObjectID().Hex()
}

// findMany runs a find and decodes every document. It never returns a nil
// slice so empty listings encode as [].
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return []T{}, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return []T{}, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOneOptions) (T, error) {
	var out T
	if err := coll.FindOne(ctx, filter, opts...).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return out, ErrRecordNotFound
		}
		return out, err
	}
	return out, nil
}

// retryOnDuplicate runs op and, when a concurrent upsert won the race for the
// same unique key, runs it once more so it matches the winner's document.
func retryOnDuplicate(op func() error) error {
	err := op()
	if err != nil && mongo.IsDuplicateKeyError(err) {
		err = op()
	}
	return err
}
