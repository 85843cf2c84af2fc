package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/stretchr/testify/require"
)

type saveBody struct {
	MediaId int64   `json:"mediaId"`
	Title   string  `json:"title"`
	Poster  *string `json:"poster"`
}

func TestDecodeJSON(t *testing.T) {
	newRequest := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/continue", strings.NewReader(body))
	}

	t.Run("Valid body", func(t *testing.T) {
		var dst saveBody
		require.NoError(t, decodeJSON(newRequest(`{"mediaId":42,"title":"Heat","poster":null}`), &dst))
		require.Equal(t, int64(42), dst.MediaId)
		require.Nil(t, dst.Poster)
	})

	t.Run("Type mismatch names the field", func(t *testing.T) {
		var dst saveBody
		err := decodeJSON(newRequest(`{"mediaId":"abc","title":"Heat"}`), &dst)
		require.Equal(t, errs.KindValidation, errs.KindOf(err))
		require.Equal(t, "mediaId", errs.FieldOf(err))
		require.Equal(t, "mediaId must be a number", err.Error())
	})

	t.Run("Broken JSON", func(t *testing.T) {
		var dst saveBody
		err := decodeJSON(newRequest(`{"mediaId":`), &dst)
		require.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestRespondWithServiceError(t *testing.T) {
	t.Run("Known kinds keep their message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondWithServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errs.Conflict("you have already reviewed this title"))

		require.Equal(t, http.StatusConflict, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "You have already reviewed this title", body.ErrorMessage)
	})

	t.Run("Storage failures are hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondWithServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errs.Storage(errors.New("connection reset")))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "connection reset")
	})
}

func TestParseMediaId(t *testing.T) {
	id, err := parseMediaId("1399")
	require.NoError(t, err)
	require.Equal(t, int64(1399), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := parseMediaId(raw)
		require.Equal(t, "mediaId", errs.FieldOf(err), raw)
	}
}
