package api

import (
	"time"

	"github.com/lealre/reelstate/internal/mongodb"
)

type API struct {
	Db       *mongodb.DB
	Secret   string
	TokenTTL time.Duration
}

func NewAPI(db *mongodb.DB, secret string, tokenTTL time.Duration) *API {
	return &API{Db: db, Secret: secret, TokenTTL: tokenTTL}
}

type ErrorResponse struct {
	StatusCode   int    `json:"statusCode"`
	ErrorMessage string `json:"errorMessage"`
	Field        string `json:"field,omitempty"`
}

type DefaultResponse struct {
	Message string `json:"message"`
}
