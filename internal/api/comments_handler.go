package api

import (
	"fmt"
	"net/http"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/services/comments"
	"github.com/lealre/reelstate/internal/services/reactions"
)

func (api *API) GetTitleComments(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	query := r.URL.Query()

	mediaId, err := parseMediaId(query.Get("mediaId"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	commentsList, err := comments.GetComments(api.Db, r.Context(), session, query.Get("mediaType"), mediaId)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, comments.AllCommentsFromTitle{Comments: commentsList})
}

func (api *API) AddComment(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	var newComment comments.NewComment
	if err := decodeJSON(r, &newComment); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	createdComment, err := comments.AddComment(api.Db, r.Context(), session, newComment)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, createdComment)
}

func (api *API) DeleteComment(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	commentId := r.PathValue("id")

	if err := comments.DeleteComment(api.Db, r.Context(), session, commentId); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, DefaultResponse{Message: fmt.Sprintf("Comment with id %s deleted successfully", commentId)})
}

// ReactToComment takes the direction from the body: {"type": "like"}.
func (api *API) ReactToComment(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	var req reactions.ReactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	resp, err := reactions.SetReaction(api.Db, r.Context(), session, reactions.KindComment, r.PathValue("id"), req.Type)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (api *API) ReportComment(w http.ResponseWriter, r *http.Request) {
	api.report(w, r, reactions.KindComment)
}
