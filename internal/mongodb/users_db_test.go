package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	user, err := db.CreateUser(ctx, UserDb{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: "user"})
	require.NoError(t, err)

	t.Run("Emails are unique regardless of case", func(t *testing.T) {
		_, err := db.CreateUser(ctx, UserDb{Name: "Ana 2", Email: "ANA@example.com", PasswordHash: "x", Role: "user"})
		require.ErrorIs(t, err, ErrDuplicateRecord)

		found, err := db.GetUserByEmail(ctx, "Ana@Example.com")
		require.NoError(t, err)
		require.Equal(t, user.Id, found.Id)
	})

	t.Run("Ban toggles for regular users", func(t *testing.T) {
		banned, err := db.ToggleUserBan(ctx, user.Id)
		require.NoError(t, err)
		require.True(t, banned.IsBanned)

		unbanned, err := db.ToggleUserBan(ctx, user.Id)
		require.NoError(t, err)
		require.False(t, unbanned.IsBanned)
	})

	t.Run("Admins never match the ban update", func(t *testing.T) {
		admin, err := db.CreateUser(ctx, UserDb{Name: "Root", Email: "root@example.com", PasswordHash: "x", Role: "admin"})
		require.NoError(t, err)

		_, err = db.ToggleUserBan(ctx, admin.Id)
		require.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestAddReviewDuplicate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := db.AddReview(ctx, ReviewDb{UserId: "u1", MediaType: "movie", MediaId: 42, Category: "Skip"})
	require.NoError(t, err)

	_, err = db.AddReview(ctx, ReviewDb{UserId: "u1", MediaType: "movie", MediaId: 42, Category: "Perfection"})
	require.ErrorIs(t, err, ErrDuplicateRecord)

	reviews, err := db.GetReviewsByTitle(ctx, "movie", 42)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.Equal(t, "Skip", reviews[0].Category)
}
