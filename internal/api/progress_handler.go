package api

import (
	"net/http"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/services/progress"
)

// SaveProgress answers with the stored record, or {"skipped":true} when a
// series save without season/episode had nothing to refresh.
func (api *API) SaveProgress(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	var req progress.SaveProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	result, err := progress.SaveProgress(api.Db, r.Context(), session, req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (api *API) ListContinueWatching(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	items, err := progress.ListContinueWatching(api.Db, r.Context(), session, parseLimit(r.URL.Query().Get("limit")))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, progress.ContinueWatchingResponse{Items: items})
}

func (api *API) DeleteProgress(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	mediaId, err := parseMediaId(r.PathValue("mediaId"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := progress.DeleteProgress(api.Db, r.Context(), session, r.PathValue("mediaType"), mediaId); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, DefaultResponse{Message: "Progress removed successfully"})
}
