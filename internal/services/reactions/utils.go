package reactions

import (
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/mongodb"
)

var (
	ErrNoSession        = errs.Unauthorized("authentication required")
	ErrForbidden        = errs.Forbidden("you do not have permission to perform this action")
	ErrAlreadyReported  = errs.Conflict("you have already reported this")
	ErrReasonRequired   = errs.Validation("reason", "report reason required")
	ErrInvalidDirection = errs.Validation("type", "type must be one of: like dislike")
	ErrCommentNotFound  = errs.NotFound("comment not found")
	ErrReviewNotFound   = errs.NotFound("review not found")
	ErrUnknownKind      = errs.Validation("kind", "kind must be one of: comment review")
)

func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(raw); d {
	case Like, Dislike:
		return d, nil
	default:
		return "", ErrInvalidDirection
	}
}

func collectionFor(kind Kind) (string, error) {
	switch kind {
	case KindComment:
		return mongodb.CommentsCollection, nil
	case KindReview:
		return mongodb.ReviewsCollection, nil
	default:
		return "", ErrUnknownKind
	}
}

// NotFoundFor returns the not-found error of the given kind.
func NotFoundFor(kind Kind) error {
	if kind == KindReview {
		return ErrReviewNotFound
	}
	return ErrCommentNotFound
}
