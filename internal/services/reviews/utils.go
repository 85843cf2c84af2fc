package reviews

import (
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/services/reactions"
)

var (
	ErrNoSession       = errs.Unauthorized("authentication required")
	ErrForbidden       = errs.Forbidden("you do not have permission to perform this action")
	ErrAlreadyReviewed = errs.Conflict("you have already reviewed this title")
	ErrReviewNotFound  = reactions.ErrReviewNotFound
)
