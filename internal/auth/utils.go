package auth

import "github.com/lealre/reelstate/internal/errs"

var (
	ErrTokenSigningMethod    = errs.Unauthorized("unexpected signing method")
	ErrInvalidToken          = errs.Unauthorized("invalid token")
	ErrTokenExpired          = errs.Unauthorized("token has expired")
	ErrTokenWithNoSubject    = errs.Unauthorized("token has no subject")
	ErrNoAuthorizationHeader = errs.Unauthorized("no 'Authorization' header found")
	ErrMalformedAuthHeader   = errs.Unauthorized("token must start with 'Bearer '")
	ErrNoTokenInAuthHeader   = errs.Unauthorized("no token found after 'Bearer '")
	ErrInactiveUser          = errs.Unauthorized("invalid or inactive user")
)
