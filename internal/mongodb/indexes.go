package mongodb

import (
	"context"
	"fmt"

	"github.com/lealre/reelstate/internal/logx"
	"github.com/sourcegraph/conc/pool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexSpec struct {
	collection string
	name       string
	model      mongo.IndexModel
}

func uniqueIndex(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(true).SetName(name),
	}
}

func plainIndex(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}
}

// indexSpecs lists every index the stores rely on. The unique ones enforce
// the one-record-per-identity rules.
func indexSpecs() []indexSpec {
	return []indexSpec{
		{
			collection: UsersCollection,
			name:       "email_unique",
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "email", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("email_unique").
					SetCollation(emailCollation).
					SetPartialFilterExpression(bson.M{
						"$and": []bson.M{
							{"email": bson.M{"$type": "string"}},
							{"email": bson.M{"$gt": ""}},
						},
					}),
			},
		},
		{
			collection: ProgressCollection,
			name:       "userId_mediaType_mediaId_unique",
			model: uniqueIndex("userId_mediaType_mediaId_unique", bson.D{
				{Key: "userId", Value: 1}, {Key: "mediaType", Value: 1}, {Key: "mediaId", Value: 1},
			}),
		},
		{
			collection: ProgressCollection,
			name:       "userId_updatedAt",
			model:      plainIndex("userId_updatedAt", bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}}),
		},
		{
			collection: WatchlistCollection,
			name:       "userId_mediaId_mediaType_unique",
			model: uniqueIndex("userId_mediaId_mediaType_unique", bson.D{
				{Key: "userId", Value: 1}, {Key: "mediaId", Value: 1}, {Key: "mediaType", Value: 1},
			}),
		},
		{
			collection: WatchlistCollection,
			name:       "userId_createdAt",
			model:      plainIndex("userId_createdAt", bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}),
		},
		{
			collection: ReviewsCollection,
			name:       "userId_mediaId_mediaType_unique",
			model: uniqueIndex("userId_mediaId_mediaType_unique", bson.D{
				{Key: "userId", Value: 1}, {Key: "mediaId", Value: 1}, {Key: "mediaType", Value: 1},
			}),
		},
		{
			collection: ReviewsCollection,
			name:       "mediaType_mediaId_createdAt",
			model: plainIndex("mediaType_mediaId_createdAt", bson.D{
				{Key: "mediaType", Value: 1}, {Key: "mediaId", Value: 1}, {Key: "createdAt", Value: -1},
			}),
		},
		{
			collection: CommentsCollection,
			name:       "mediaType_mediaId_createdAt",
			model: plainIndex("mediaType_mediaId_createdAt", bson.D{
				{Key: "mediaType", Value: 1}, {Key: "mediaId", Value: 1}, {Key: "createdAt", Value: -1},
			}),
		},
	}
}

// CreateAllIndexes creates every index, one goroutine per collection. When
// reset is true existing indexes with the same name are dropped first.
func CreateAllIndexes(ctx context.Context, db *DB, reset bool) error {
	byCollection := map[string][]indexSpec{}
	for _, spec := range indexSpecs() {
		byCollection[spec.collection] = append(byCollection[spec.collection], spec)
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for name, specs := range byCollection {
		coll := db.Collection(name)
		p.Go(func(ctx context.Context) error {
			for _, spec := range specs {
				if err := createIndexIfNotExists(ctx, coll, spec.model, spec.name, reset); err != nil {
					return fmt.Errorf("collection '%s': %w", coll.Name(), err)
				}
			}
			return nil
		})
	}

	return p.Wait()
}

// DeleteAllIndexes drops every index except _id_ on every collection.
func DeleteAllIndexes(ctx context.Context, db *DB) error {
	logger := logx.FromContext(ctx)

	collections, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, collName := range collections {
		coll := db.Collection(collName)

		names, err := indexNames(ctx, coll)
		if err != nil {
			return fmt.Errorf("failed to list indexes for collection '%s': %w", collName, err)
		}

		for _, indexName := range names {
			if indexName == "_id_" {
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, indexName); err != nil {
				return fmt.Errorf("failed to delete index '%s' from collection '%s': %w", indexName, collName, err)
			}
			logger.Info().Str("collection", collName).Str("index", indexName).Msg("Deleted index")
		}
	}

	return nil
}

func indexNames(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			return nil, fmt.Errorf("failed to decode index: %w", err)
		}
		if name, ok := index["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, cursor.Err()
}

// createIndexIfNotExists checks if an index exists and creates it if it doesn't
// If reset is true, it will delete the existing index and recreate it
func createIndexIfNotExists(ctx context.Context, coll *mongo.Collection, indexModel mongo.IndexModel, indexName string, reset bool) error {
	logger := logx.FromContext(ctx).With().Str("collection", coll.Name()).Str("index", indexName).Logger()

	names, err := indexNames(ctx, coll)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}

	indexExists := false
	for _, name := range names {
		if name == indexName {
			indexExists = true
			break
		}
	}

	if indexExists {
		if !reset {
			logger.Debug().Msg("Index already exists, skipping")
			return nil
		}
		if _, err := coll.Indexes().DropOne(ctx, indexName); err != nil {
			return fmt.Errorf("failed to delete index '%s': %w", indexName, err)
		}
		logger.Info().Msg("Deleted index")
	}

	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index '%s': %w", indexName, err)
	}

	logger.Info().Msg("Created index")
	return nil
}
