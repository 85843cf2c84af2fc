package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	alreadyReported := Conflict("you have already reported this")

	t.Run("Sentinel errors keep their kind when wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("report comment: %w", alreadyReported)
		require.Equal(t, KindConflict, KindOf(wrapped))
		require.True(t, errors.Is(wrapped, alreadyReported))
	})

	t.Run("Foreign errors are unknown and map to 500", func(t *testing.T) {
		err := errors.New("boom")
		require.Equal(t, KindUnknown, KindOf(err))
		require.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	})

	t.Run("Validation errors carry the field", func(t *testing.T) {
		err := Validation("mediaId", "mediaId must be a number")
		require.Equal(t, "mediaId", FieldOf(err))
		require.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	})
}

func TestStorage(t *testing.T) {
	t.Run("Driver errors are hidden behind a generic message", func(t *testing.T) {
		driverErr := errors.New("connection reset by peer")
		err := Storage(driverErr)

		require.Equal(t, KindStorage, err.Kind)
		require.Equal(t, "storage failure", err.Error())
		require.ErrorIs(t, err, driverErr)
	})

	t.Run("Already classified errors pass through unchanged", func(t *testing.T) {
		notFound := NotFound("comment not found")
		require.Same(t, notFound, Storage(notFound))
	})

	t.Run("Nil stays nil", func(t *testing.T) {
		require.Nil(t, Storage(nil))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Unauthorized("no session"), http.StatusUnauthorized},
		{Forbidden("admins only"), http.StatusForbidden},
		{Conflict("already reviewed"), http.StatusConflict},
		{NotFound("missing"), http.StatusNotFound},
		{Storage(errors.New("io")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		require.Equal(t, tc.status, HTTPStatus(tc.err), tc.err.Error())
	}
}
