package api

import (
	"context"
	"net/http"
	"time"

	"github.com/lealre/reelstate/internal/logx"
)

func (api *API) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := api.Db.Ping(ctx); err != nil {
		logger := logx.FromContext(r.Context())
		logger.Warn().Err(err).Msg("health check failed")
		respondWithError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
