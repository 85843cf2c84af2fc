package comments

import (
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/services/reactions"
)

var (
	ErrNoSession       = errs.Unauthorized("authentication required")
	ErrForbidden       = errs.Forbidden("you do not have permission to perform this action")
	ErrCommentIsNull   = errs.Validation("text", "comment cannot be empty")
	ErrCommentNotFound = reactions.ErrCommentNotFound
)
