package api

import (
	"fmt"
	"net/http"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/services/reactions"
	"github.com/lealre/reelstate/internal/services/reviews"
)

func (api *API) GetTitleReviews(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	mediaId, err := parseMediaId(r.PathValue("mediaId"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	resp, err := reviews.GetReviews(api.Db, r.Context(), session, r.PathValue("mediaType"), mediaId)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (api *API) AddReview(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	var req reviews.AddReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	review, err := reviews.AddReview(api.Db, r.Context(), session, req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

func (api *API) DeleteReview(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	reviewId := r.PathValue("id")

	if err := reviews.DeleteReview(api.Db, r.Context(), session, reviewId); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, DefaultResponse{Message: fmt.Sprintf("Review with id %s deleted successfully", reviewId)})
}

func (api *API) LikeReview(w http.ResponseWriter, r *http.Request) {
	api.reactToReview(w, r, reactions.Like)
}

func (api *API) DislikeReview(w http.ResponseWriter, r *http.Request) {
	api.reactToReview(w, r, reactions.Dislike)
}

func (api *API) reactToReview(w http.ResponseWriter, r *http.Request, direction reactions.Direction) {
	session := auth.SessionFromContext(r.Context())

	resp, err := reactions.SetReaction(api.Db, r.Context(), session, reactions.KindReview, r.PathValue("id"), direction)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (api *API) ReportReview(w http.ResponseWriter, r *http.Request) {
	api.report(w, r, reactions.KindReview)
}

// report is shared by the review and comment report routes.
func (api *API) report(w http.ResponseWriter, r *http.Request, kind reactions.Kind) {
	session := auth.SessionFromContext(r.Context())

	var req reactions.ReportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := reactions.Report(api.Db, r.Context(), session, kind, r.PathValue("id"), req.Reason); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, DefaultResponse{Message: "Report submitted successfully"})
}
