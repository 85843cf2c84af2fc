package progress

import "github.com/lealre/reelstate/internal/errs"

const MaxContinueWatching = 20

var (
	ErrNoSession        = errs.Unauthorized("authentication required")
	ErrForbidden        = errs.Forbidden("you do not have permission to perform this action")
	ErrProgressNotFound = errs.NotFound("progress not found")
)
