package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "a-very-long-test-secret"

func TestJWT(t *testing.T) {
	t.Run("Round trips the user id and role", func(t *testing.T) {
		token, err := MakeJWT("u1", RoleAdmin, testSecret, time.Minute)
		require.NoError(t, err)

		session, err := ValidateJWT(token, testSecret)
		require.NoError(t, err)
		require.Equal(t, Session{UserId: "u1", Role: RoleAdmin}, session)
		require.True(t, session.IsAdmin())
	})

	t.Run("Expired tokens are rejected", func(t *testing.T) {
		token, err := MakeJWT("u1", RoleUser, testSecret, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateJWT(token, testSecret)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := MakeJWT("u1", RoleUser, testSecret, time.Minute)
		require.NoError(t, err)

		_, err = ValidateJWT(token, "another-long-test-secret")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGetBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		err    error
	}{
		{"", "", ErrNoAuthorizationHeader},
		{"Token abc", "", ErrMalformedAuthHeader},
		{"Bearer   ", "", ErrNoTokenInAuthHeader},
		{"Bearer abc.def", "abc.def", nil},
	}

	for _, tc := range cases {
		h := http.Header{}
		if tc.header != "" {
			h.Set("Authorization", tc.header)
		}
		token, err := GetBearerToken(h)
		require.Equal(t, tc.token, token)
		if tc.err != nil {
			require.ErrorIs(t, err, tc.err)
		} else {
			require.NoError(t, err)
		}
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NoError(t, CheckPasswordHash(hash, "hunter22"))
	require.Error(t, CheckPasswordHash(hash, "hunter23"))
}

func TestSessionFromContext(t *testing.T) {
	require.False(t, SessionFromContext(context.Background()).Authenticated())

	ctx := WithSession(context.Background(), Session{UserId: "u1", Role: RoleUser})
	require.Equal(t, "u1", SessionFromContext(ctx).UserId)
}
