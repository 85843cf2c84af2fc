package reviews

import (
	"context"
	"testing"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/errs"
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

	db := mongodb.NewDB(testMongo.Client, "reviewsTestDb")
	testinfra.ResetDB(t, db.Database)
	require.NoError(t, mongodb.CreateAllIndexes(context.Background(), db, false))
	return db
}

var (
	u1    = auth.Session{UserId: "u1", Role: auth.RoleUser}
	u2    = auth.Session{UserId: "u2", Role: auth.RoleUser}
	admin = auth.Session{UserId: "a1", Role: auth.RoleAdmin}
)

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	first, err := AddReview(db, ctx, u1, AddReviewRequest{MediaId: 42, MediaType: "movie", Category: Skip})
	require.NoError(t, err)
	require.Equal(t, Skip, first.Category)
	require.Equal(t, "u1", first.User.Id)
	require.Equal(t, "Deleted user", first.User.Name)

	t.Run("Second review of the same title conflicts", func(t *testing.T) {
		_, err := AddReview(db, ctx, u1, AddReviewRequest{MediaId: 42, MediaType: "movie", Category: Perfection})
		require.ErrorIs(t, err, ErrAlreadyReviewed)
		require.Equal(t, errs.KindConflict, errs.KindOf(err))

		res, err := GetReviews(db, ctx, u1, "movie", 42)
		require.NoError(t, err)
		require.Len(t, res.Reviews, 1)
		require.Equal(t, Skip, res.Reviews[0].Category)
	})

	t.Run("Unknown category fails validation", func(t *testing.T) {
		_, err := AddReview(db, ctx, u2, AddReviewRequest{MediaId: 42, MediaType: "movie", Category: "Meh"})
		require.Equal(t, "category", errs.FieldOf(err))
	})

	t.Run("Anonymous callers are rejected", func(t *testing.T) {
		_, err := AddReview(db, ctx, auth.Session{}, AddReviewRequest{MediaId: 42, MediaType: "movie", Category: Skip})
		require.ErrorIs(t, err, ErrNoSession)
	})
}

func TestGetReviews(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := AddReview(db, ctx, u1, AddReviewRequest{MediaId: 7, MediaType: "series", Category: GoForIt})
	require.NoError(t, err)
	hidden, err := AddReview(db, ctx, u2, AddReviewRequest{MediaId: 7, MediaType: "series", Category: Skip})
	require.NoError(t, err)

	_, err = db.ToggleHidden(ctx, mongodb.ReviewsCollection, hidden.Id)
	require.NoError(t, err)

	res, err := GetReviews(db, ctx, auth.Session{}, "tv", 7)
	require.NoError(t, err)

	require.Len(t, res.Reviews, 1)
	require.Equal(t, GoForIt, res.Reviews[0].Category)
	require.Equal(t, 2, res.Stats.Total)
	require.Equal(t, 50, res.Stats.Percentage)
	require.Equal(t, CategoryCounts{Skip: 1, GoForIt: 1}, res.Stats.Counts)

	t.Run("Title without reviews", func(t *testing.T) {
		res, err := GetReviews(db, ctx, u1, "movie", 999)
		require.NoError(t, err)
		require.Empty(t, res.Reviews)
		require.Equal(t, Stats{}, res.Stats)
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	review, err := AddReview(db, ctx, u1, AddReviewRequest{MediaId: 42, MediaType: "movie", Category: Timepass})
	require.NoError(t, err)

	err = DeleteReview(db, ctx, u2, review.Id)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, DeleteReview(db, ctx, admin, review.Id))

	err = DeleteReview(db, ctx, u1, review.Id)
	require.ErrorIs(t, err, ErrReviewNotFound)
}

func TestGetReported(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	review, err := AddReview(db, ctx, u1, AddReviewRequest{MediaId: 42, MediaType: "movie", Category: Timepass})
	require.NoError(t, err)
	_, err = AddReview(db, ctx, u2, AddReviewRequest{MediaId: 42, MediaType: "movie", Category: Skip})
	require.NoError(t, err)

	require.NoError(t, db.AddReport(ctx, mongodb.ReviewsCollection, review.Id, mongodb.ReportDb{UserId: "u2", Reason: "spoilers"}))

	_, err = GetReported(db, ctx, u1)
	require.ErrorIs(t, err, ErrForbidden)

	reported, err := GetReported(db, ctx, admin)
	require.NoError(t, err)
	require.Len(t, reported, 1)
	require.Equal(t, review.Id, reported[0].Id)
	require.Equal(t, "spoilers", reported[0].Reports[0].Reason)
}
