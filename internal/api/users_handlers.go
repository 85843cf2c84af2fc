package api

import (
	"net/http"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/logx"
	"github.com/lealre/reelstate/internal/services/comments"
	"github.com/lealre/reelstate/internal/services/reactions"
	"github.com/lealre/reelstate/internal/services/reviews"
	"github.com/lealre/reelstate/internal/services/users"
)

func (api *API) GetUsers(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	allUsers, err := users.GetAllUsers(api.Db, r.Context(), session)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, users.AllUsersResponse{Users: allUsers})
}

func (api *API) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	var req users.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	user, err := users.UpdateProfile(api.Db, r.Context(), session, req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, users.ProfileResponse{User: user})
}

func (api *API) ToggleUserBan(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	session := auth.SessionFromContext(r.Context())

	user, err := users.ToggleBan(api.Db, r.Context(), session, r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	logger.Info().Str("target_id", user.Id).Bool("banned", user.IsBanned).Msg("ban toggled")
	respondWithJSON(w, http.StatusOK, user)
}

func (api *API) GetReportedComments(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	reported, err := comments.GetReported(api.Db, r.Context(), session)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, comments.ReportedCommentsResponse{Comments: reported})
}

func (api *API) GetReportedReviews(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	reported, err := reviews.GetReported(api.Db, r.Context(), session)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reviews.ReportedReviewsResponse{Reviews: reported})
}

func (api *API) HideComment(w http.ResponseWriter, r *http.Request) {
	api.toggleHidden(w, r, reactions.KindComment)
}

func (api *API) HideReview(w http.ResponseWriter, r *http.Request) {
	api.toggleHidden(w, r, reactions.KindReview)
}

func (api *API) toggleHidden(w http.ResponseWriter, r *http.Request, kind reactions.Kind) {
	logger := logx.FromContext(r.Context())
	session := auth.SessionFromContext(r.Context())

	resp, err := reactions.ToggleHidden(api.Db, r.Context(), session, kind, r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	logger.Info().Str("kind", string(kind)).Str("entity_id", resp.Id).Bool("hidden", resp.IsHidden).Msg("visibility toggled")
	respondWithJSON(w, http.StatusOK, resp)
}
