package api

import (
	"net/http"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/logx"
	"github.com/lealre/reelstate/internal/services/users"
)

func (api *API) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	var req users.NewUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	user, err := users.CreateUser(api.Db, r.Context(), req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	logger.Info().Str("user_id", user.Id).Msg("user created")
	respondWithJSON(w, http.StatusCreated, user)
}

func (api *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var authReq auth.LoginRequest
	if err := decodeJSON(r, &authReq); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	resp, err := users.Login(api.Db, r.Context(), authReq, api.Secret, api.TokenTTL)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
