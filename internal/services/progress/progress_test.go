package progress

import (
	"context"
	"testing"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/testinfra"
	"github.com/stretchr/testify/require"
)

var testMongo *testinfra.Mongo

func TestMain(m *testing.M) {
	testinfra.Main(m, &testMongo)
}

func newTestDB(t *testing.T) *mongodb.DB {
	t.Helper()
	testinfra.SkipIfNoMongo(t, testMongo)

	db := mongodb.NewDB(testMongo.Client, "progressTestDb")
	testinfra.ResetDB(t, db.Database)
	require.NoError(t, mongodb.CreateAllIndexes(context.Background(), db, false))
	return db
}

var u1 = auth.Session{UserId: "u1", Role: auth.RoleUser}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestSaveProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("Movie progress is overwritten, never duplicated", func(t *testing.T) {
		db := newTestDB(t)

		for _, p := range []float64{5, 80} {
			res, err := SaveProgress(db, ctx, u1, SaveProgressRequest{
				MediaId: 42, Title: "Alien", MediaType: "movie", Progress: floatPtr(p),
			})
			require.NoError(t, err)
			require.False(t, res.Skipped)
			require.IsType(t, MovieProgress{}, res.Record)
		}

		records, err := ListContinueWatching(db, ctx, u1, 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, int64(42), records[0].Base().MediaId)
		require.Equal(t, float64(80), records[0].Base().Progress)
	})

	t.Run("Series save without position is skipped and stores nothing", func(t *testing.T) {
		db := newTestDB(t)

		res, err := SaveProgress(db, ctx, u1, SaveProgressRequest{
			MediaId: 1399, Title: "Dark", MediaType: "series", Progress: floatPtr(12),
		})
		require.NoError(t, err)
		require.True(t, res.Skipped)
		require.Nil(t, res.Record)

		records, err := ListContinueWatching(db, ctx, u1, 0)
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("Series save without position leaves an existing record alone", func(t *testing.T) {
		db := newTestDB(t)

		first, err := SaveProgress(db, ctx, u1, SaveProgressRequest{
			MediaId: 1399, Title: "Dark", MediaType: "series", Progress: floatPtr(12),
			Season: intPtr(1), Episode: intPtr(2),
		})
		require.NoError(t, err)

		res, err := SaveProgress(db, ctx, u1, SaveProgressRequest{
			MediaId: 1399, Title: "Dark", MediaType: "tv", Progress: floatPtr(0),
		})
		require.NoError(t, err)
		require.True(t, res.Skipped)
		require.Nil(t, res.Record)

		res, err = SaveProgress(db, ctx, u1, SaveProgressRequest{
			MediaId: 1399, Title: "Dark", MediaType: "series", Progress: floatPtr(5), Season: intPtr(2),
		})
		require.NoError(t, err)
		require.True(t, res.Skipped)

		records, err := ListContinueWatching(db, ctx, u1, 0)
		require.NoError(t, err)
		require.Len(t, records, 1)

		series := records[0].(SeriesProgress)
		require.Equal(t, float64(12), series.Progress)
		require.Equal(t, 1, series.Season)
		require.Equal(t, 2, series.Episode)
		require.True(t, first.Record.Base().UpdatedAt.Equal(series.UpdatedAt))
	})

	t.Run("Title poster season and episode keep their first values", func(t *testing.T) {
		db := newTestDB(t)

		_, err := SaveProgress(db, ctx, u1, SaveProgressRequest{
			MediaId: 66732, Title: "Stranger Things", Poster: strPtr("/first.jpg"), MediaType: "series",
			Progress: floatPtr(10), Season: intPtr(1), Episode: intPtr(1),
		})
		require.NoError(t, err)

		res, err := SaveProgress(db, ctx, u1, SaveProgressRequest{
			MediaId: 66732, Title: "Stranger Things 4", Poster: strPtr("/second.jpg"), MediaType: "series",
			Progress: floatPtr(90), Season: intPtr(4), Episode: intPtr(9),
		})
		require.NoError(t, err)

		series := res.Record.(SeriesProgress)
		require.Equal(t, "Stranger Things", series.Title)
		require.Equal(t, "/first.jpg", *series.Poster)
		require.Equal(t, 1, series.Season)
		require.Equal(t, 1, series.Episode)
		require.Equal(t, float64(90), series.Progress)
	})

	t.Run("Different users do not share records", func(t *testing.T) {
		db := newTestDB(t)
		u2 := auth.Session{UserId: "u2", Role: auth.RoleUser}

		for _, s := range []auth.Session{u1, u2} {
			_, err := SaveProgress(db, ctx, s, SaveProgressRequest{MediaId: 42, Title: "Alien", MediaType: "movie", Progress: floatPtr(1)})
			require.NoError(t, err)
		}

		records, err := ListContinueWatching(db, ctx, u2, 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})
}

func TestSaveProgressRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		session auth.Session
		req     SaveProgressRequest
		kind    errs.Kind
		field   string
	}{
		{
			name:    "no session",
			session: auth.Session{},
			req:     SaveProgressRequest{MediaId: 1, Title: "x", MediaType: "movie", Progress: floatPtr(1)},
			kind:    errs.KindUnauthorized,
		},
		{
			name:    "missing progress",
			session: u1,
			req:     SaveProgressRequest{MediaId: 1, Title: "x", MediaType: "movie"},
			kind:    errs.KindValidation,
			field:   "progress",
		},
		{
			name:    "missing title",
			session: u1,
			req:     SaveProgressRequest{MediaId: 1, MediaType: "movie", Progress: floatPtr(1)},
			kind:    errs.KindValidation,
			field:   "title",
		},
		{
			name:    "zero media id",
			session: u1,
			req:     SaveProgressRequest{Title: "x", MediaType: "movie", Progress: floatPtr(1)},
			kind:    errs.KindValidation,
			field:   "mediaId",
		},
		{
			name:    "unknown media type",
			session: u1,
			req:     SaveProgressRequest{MediaId: 1, Title: "x", MediaType: "anime", Progress: floatPtr(1)},
			kind:    errs.KindValidation,
			field:   "mediaType",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Validation happens before any storage access.
			_, err := SaveProgress(nil, ctx, tc.session, tc.req)
			require.Equal(t, tc.kind, errs.KindOf(err))
			require.Equal(t, tc.field, errs.FieldOf(err))
		})
	}
}

func TestDeleteProgress(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := SaveProgress(db, ctx, u1, SaveProgressRequest{MediaId: 42, Title: "Alien", MediaType: "movie", Progress: floatPtr(3)})
	require.NoError(t, err)

	require.ErrorIs(t, DeleteProgress(db, ctx, auth.Session{UserId: "u2"}, "movie", 42), ErrProgressNotFound)
	require.NoError(t, DeleteProgress(db, ctx, u1, "movie", 42))
	require.ErrorIs(t, DeleteProgress(db, ctx, u1, "movie", 42), ErrProgressNotFound)
}

func TestMapDbProgressToRecord(t *testing.T) {
	movie := MapDbProgressToRecord(mongodb.ProgressDb{Id: "a", MediaType: "movie", MediaId: 1, Season: intPtr(3)})
	require.IsType(t, MovieProgress{}, movie)

	series := MapDbProgressToRecord(mongodb.ProgressDb{Id: "b", MediaType: string(identity.Series), MediaId: 2, Season: intPtr(3), Episode: intPtr(4)})
	require.Equal(t, SeriesProgress{
		Common:  Common{Id: "b", MediaType: identity.Series, MediaId: 2},
		Season:  3,
		Episode: 4,
	}, series)
}
