package api

import (
	"fmt"
	"net/http"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/services/watchlist"
)

func (api *API) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	entries, err := watchlist.List(api.Db, r.Context(), session, r.URL.Query().Get("type"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, watchlist.AllEntriesResponse{Entries: entries})
}

// UpsertWatchlist answers 201 when the title was added and 200 when it was
// moved between lists.
func (api *API) UpsertWatchlist(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	var req watchlist.UpsertRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	result, err := watchlist.UpsertMembership(api.Db, r.Context(), session, req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	code := http.StatusOK
	if result.Created {
		code = http.StatusCreated
	}
	respondWithJSON(w, code, result.Entry)
}

func (api *API) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	entryId := r.PathValue("id")

	if err := watchlist.Remove(api.Db, r.Context(), session, entryId); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, DefaultResponse{Message: fmt.Sprintf("Entry with id %s removed successfully", entryId)})
}
