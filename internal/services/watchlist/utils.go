package watchlist

import "github.com/lealre/reelstate/internal/errs"

var (
	ErrNoSession       = errs.Unauthorized("authentication required")
	ErrForbidden       = errs.Forbidden("you do not have permission to perform this action")
	ErrEntryNotFound   = errs.NotFound("watchlist entry not found")
	ErrInvalidListType = errs.Validation("type", "type must be one of: favorites watchLater completed")
)

func ParseListType(raw string) (ListType, error) {
	switch lt := ListType(raw); lt {
	case "":
		return "", nil
	case Favorites, WatchLater, Completed:
		return lt, nil
	default:
		return "", ErrInvalidListType
	}
}
