package users

import (
	"strings"

	"github.com/lealre/reelstate/internal/errs"
)

var (
	ErrNoSession          = errs.Unauthorized("authentication required")
	ErrForbidden          = errs.Forbidden("you do not have permission to perform this action")
	ErrUserNotFound       = errs.NotFound("user not found")
	ErrEmailAlreadyExists = errs.Conflict("email already registered")
	ErrCannotBanAdmin     = errs.Forbidden("admin accounts cannot be banned")
	ErrInvalidCredentials = errs.Unauthorized("invalid credentials")
	ErrUserBanned         = errs.Forbidden("this account has been banned")
)

// deletedAuthor stands in for authors whose account no longer exists.
var deletedAuthor = Author{Name: "Deleted user"}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
