package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lealre/reelstate/internal/api"
	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/logx"
	"github.com/lealre/reelstate/internal/metrics"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/services/users"
	"github.com/patrickmn/go-cache"
)

type contextKey string

const requestIdKey contextKey = "requestId"

const requestIdHeader = "X-Request-Id"

////////////////////////////////////////////////////////////////////////////
//  LOGGER MIDDLEWARE
////////////////////////////////////////////////////////////////////////////

// responseRecorder wraps http.ResponseWriter to capture status code
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

/*
RequestIdMiddleware gives each request an id, taken from the X-Request-Id
header when the client sent one, and stores a child logger carrying it in
the context.
  - Logs when it receives a request
  - Logs the status code and how long the request took

Handlers can retrieve the logger using logx.FromContext(r.Context()).
*/
func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		startTime := time.Now()

		logger := logx.Logger().With().
			Str("request_id", requestId).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		logger.Debug().Msg("Request received...")

		ctx := context.WithValue(r.Context(), requestIdKey, requestId)
		ctx = logx.WithLogger(ctx, logger)
		r = r.WithContext(ctx)

		w.Header().Set(requestIdHeader, requestId)
		recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(startTime)
		event := logger.Info()
		if recorder.statusCode >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Int("status", recorder.statusCode).
			Dur("duration", duration).
			Msg(fmt.Sprintf("Request completed in %dms (status %d)", duration.Milliseconds(), recorder.statusCode))
	})
}

// MetricsMiddleware records request count and latency by route pattern, so
// ids in the path do not explode label cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.RecordHTTPRequest(r.Method, route, recorder.statusCode, time.Since(startTime))
	})
}

////////////////////////////////////////////////////////////////////////////
//  AUTHENTICATION MIDDLEWARE
////////////////////////////////////////////////////////////////////////////

// AuthMiddleware resolves the bearer token into an auth.Session. Requests
// without an Authorization header continue anonymously; routes that need a
// user are wrapped in RequireSession. A nil sessions cache makes every
// request hit the users collection.
func AuthMiddleware(tokenSecret string, db *mongodb.DB, sessions *cache.Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, err := auth.GetBearerToken(r.Header)
			if err != nil {
				api.RespondWithUnauthorized(w, err)
				return
			}

			tokenSession, err := auth.ValidateJWT(tokenString, tokenSecret)
			if err != nil {
				api.RespondWithUnauthorized(w, err)
				return
			}

			session, err := resolveSession(r.Context(), db, sessions, tokenSession.UserId)
			if err != nil {
				if errs.KindOf(err) == errs.KindUnauthorized {
					api.RespondWithUnauthorized(w, err)
					return
				}
				logger := logx.FromContext(r.Context())
				logger.Error().Err(err).Str("user_id", tokenSession.UserId).Msg("session lookup failed")
				http.Error(w, "Unexpected error occurred", http.StatusInternalServerError)
				return
			}

			logger := logx.FromContext(r.Context()).With().Str("user_id", session.UserId).Logger()
			ctx := auth.WithSession(r.Context(), session)
			ctx = logx.WithLogger(ctx, logger)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newSessionCache returns nil when ttl disables caching.
func newSessionCache(ttl time.Duration) *cache.Cache {
	if ttl <= 0 {
		return nil
	}
	return cache.New(ttl, time.Minute)
}

func resolveSession(ctx context.Context, db *mongodb.DB, sessions *cache.Cache, userId string) (auth.Session, error) {
	if sessions == nil {
		return users.ResolveSession(db, ctx, userId)
	}

	if cached, ok := sessions.Get(userId); ok {
		metrics.SessionCacheHits.Inc()
		return cached.(auth.Session), nil
	}
	metrics.SessionCacheMisses.Inc()

	session, err := users.ResolveSession(db, ctx, userId)
	if err != nil {
		return auth.Session{}, err
	}
	sessions.SetDefault(userId, session)
	return session, nil
}

// RequireSession rejects anonymous requests with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.SessionFromContext(r.Context()).Authenticated() {
			api.RespondWithUnauthorized(w, auth.ErrNoAuthorizationHeader)
			return
		}
		next.ServeHTTP(w, r)
	})
}
