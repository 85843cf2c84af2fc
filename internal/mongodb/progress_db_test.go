package mongodb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestProgressUpsertUpdate(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	update := progressUpsertUpdate(ProgressDb{
		Title: "Dark", Poster: strPtr("/p.jpg"), Season: intPtr(1), Episode: intPtr(2), Progress: 33.5,
	}, now)

	onInsert := update["$setOnInsert"].(bson.M)
	set := update["$set"].(bson.M)

	require.Equal(t, "Dark", onInsert["title"])
	require.Equal(t, intPtr(1), onInsert["season"])
	require.NotEmpty(t, onInsert["_id"])
	require.NotContains(t, set, "title")
	require.NotContains(t, set, "season")
	require.Equal(t, 33.5, set["progress"])
	require.Equal(t, now, set["updatedAt"])
}

func TestUpsertProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("Repeated saves keep one record with the last progress", func(t *testing.T) {
		db := newTestDB(t)

		for _, p := range []float64{5, 40, 80} {
			_, err := db.UpsertProgress(ctx, ProgressDb{UserId: "u1", MediaType: "movie", MediaId: 42, Title: "Alien", Progress: p})
			require.NoError(t, err)
		}

		records, err := db.GetProgressByUser(ctx, "u1", 20)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, float64(80), records[0].Progress)
	})

	t.Run("Descriptive fields are set only on creation", func(t *testing.T) {
		db := newTestDB(t)

		first, err := db.UpsertProgress(ctx, ProgressDb{
			UserId: "u1", MediaType: "series", MediaId: 1399, Title: "Got",
			Poster: strPtr("/a.jpg"), Season: intPtr(1), Episode: intPtr(1), Progress: 10,
		})
		require.NoError(t, err)

		second, err := db.UpsertProgress(ctx, ProgressDb{
			UserId: "u1", MediaType: "series", MediaId: 1399, Title: "Game of Thrones",
			Poster: strPtr("/b.jpg"), Season: intPtr(3), Episode: intPtr(7), Progress: 55,
		})
		require.NoError(t, err)

		require.Equal(t, first.Id, second.Id)
		require.Equal(t, "Got", second.Title)
		require.Equal(t, "/a.jpg", *second.Poster)
		require.Equal(t, 1, *second.Season)
		require.Equal(t, 1, *second.Episode)
		require.Equal(t, float64(55), second.Progress)
		require.True(t, !second.UpdatedAt.Before(first.UpdatedAt))
	})

	t.Run("Concurrent first saves produce a single record", func(t *testing.T) {
		db := newTestDB(t)

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(p float64) {
				defer wg.Done()
				_, err := db.UpsertProgress(ctx, ProgressDb{UserId: "u1", MediaType: "movie", MediaId: 7, Title: "Heat", Progress: p})
				errs <- err
			}(float64(i))
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		count, err := db.Collection(ProgressCollection).CountDocuments(ctx, bson.M{"userId": "u1", "mediaId": 7})
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
	})
}

func TestGetProgressByUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	for id := int64(1); id <= 25; id++ {
		_, err := db.UpsertProgress(ctx, ProgressDb{UserId: "u1", MediaType: "movie", MediaId: id, Progress: 1})
		require.NoError(t, err)
	}
	_, err := db.UpsertProgress(ctx, ProgressDb{UserId: "u2", MediaType: "movie", MediaId: 1, Progress: 1})
	require.NoError(t, err)

	records, err := db.GetProgressByUser(ctx, "u1", 20)
	require.NoError(t, err)
	require.Len(t, records, 20)
	require.Equal(t, int64(25), records[0].MediaId)
	for i := 1; i < len(records); i++ {
		require.False(t, records[i].UpdatedAt.After(records[i-1].UpdatedAt))
	}

	deleted, err := db.DeleteProgress(ctx, "u1", "movie", 25)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}
