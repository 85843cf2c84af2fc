package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/authz"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/validation"
)

func CreateUser(db *mongodb.DB, ctx context.Context, req NewUserRequest) (User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.ValidateStruct(&req); err != nil {
		return User{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	userDb, err := db.CreateUser(ctx, mongodb.UserDb{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(auth.RoleUser),
	})
	if err != nil {
		if errors.Is(err, mongodb.ErrDuplicateRecord) {
			return User{}, ErrEmailAlreadyExists
		}
		return User{}, errs.Storage(fmt.Errorf("create user: %w", err))
	}

	return MapDbUserToApiUser(userDb), nil
}

// Login checks the credentials and issues a bearer token.
func Login(db *mongodb.DB, ctx context.Context, req auth.LoginRequest, secret string, ttl time.Duration) (auth.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.ValidateStruct(&req); err != nil {
		return auth.LoginResponse{}, err
	}

	userDb, err := db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return auth.LoginResponse{}, ErrInvalidCredentials
		}
		return auth.LoginResponse{}, errs.Storage(fmt.Errorf("get user by email: %w", err))
	}

	if err := auth.CheckPasswordHash(userDb.PasswordHash, req.Password); err != nil {
		return auth.LoginResponse{}, ErrInvalidCredentials
	}
	if userDb.IsBanned {
		return auth.LoginResponse{}, ErrUserBanned
	}

	token, err := auth.MakeJWT(userDb.Id, auth.Role(userDb.Role), secret, ttl)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("make token: %w", err)
	}

	if err := db.UpdateLastLogin(ctx, userDb.Id); err != nil {
		return auth.LoginResponse{}, errs.Storage(fmt.Errorf("update last login: %w", err))
	}

	return auth.LoginResponse{AccessToken: token}, nil
}

// ResolveSession loads the account behind a verified token. Missing and
// banned accounts are rejected; the role comes from the stored user.
func ResolveSession(db *mongodb.DB, ctx context.Context, userId string) (auth.Session, error) {
	userDb, err := db.GetUserById(ctx, userId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return auth.Session{}, auth.ErrInactiveUser
		}
		return auth.Session{}, errs.Storage(fmt.Errorf("get user: %w", err))
	}
	if userDb.IsBanned {
		return auth.Session{}, auth.ErrInactiveUser
	}

	return auth.Session{UserId: userDb.Id, Role: auth.Role(userDb.Role)}, nil
}

// UpdateProfile renames the caller's own account.
func UpdateProfile(db *mongodb.DB, ctx context.Context, session auth.Session, req UpdateProfileRequest) (User, error) {
	if !session.Authenticated() {
		return User{}, ErrNoSession
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(&req); err != nil {
		return User{}, err
	}

	userDb, err := db.UpdateUserName(ctx, session.UserId, req.Name)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, errs.Storage(fmt.Errorf("update profile: %w", err))
	}

	return MapDbUserToApiUser(userDb), nil
}

func GetAllUsers(db *mongodb.DB, ctx context.Context, session auth.Session) ([]User, error) {
	if !session.Authenticated() {
		return nil, ErrNoSession
	}
	if !authz.Can(session, authz.ObjUser, authz.ActList) {
		return nil, ErrForbidden
	}

	usersDb, err := db.GetAllUsers(ctx)
	if err != nil {
		return nil, errs.Storage(fmt.Errorf("list users: %w", err))
	}

	out := make([]User, 0, len(usersDb))
	for _, u := range usersDb {
		out = append(out, MapDbUserToApiUser(u))
	}
	return out, nil
}

// ToggleBan bans or unbans a user. Admin accounts cannot be banned.
func ToggleBan(db *mongodb.DB, ctx context.Context, session auth.Session, userId string) (User, error) {
	if !session.Authenticated() {
		return User{}, ErrNoSession
	}
	if !authz.Can(session, authz.ObjUser, authz.ActBan) {
		return User{}, ErrForbidden
	}

	target, err := db.GetUserById(ctx, userId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, errs.Storage(fmt.Errorf("get user: %w", err))
	}
	if target.Role == string(auth.RoleAdmin) {
		return User{}, ErrCannotBanAdmin
	}

	updated, err := db.ToggleUserBan(ctx, userId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, errs.Storage(fmt.Errorf("toggle ban: %w", err))
	}

	return MapDbUserToApiUser(updated), nil
}

// LoadAuthors returns the public author of every id. Unknown ids map to a
// placeholder so listings never fail on deleted accounts.
func LoadAuthors(db *mongodb.DB, ctx context.Context, ids []string) (map[string]Author, error) {
	usersDb, err := db.GetUsersByIds(ctx, uniq(ids))
	if err != nil {
		return nil, errs.Storage(fmt.Errorf("load authors: %w", err))
	}

	authors := make(map[string]Author, len(ids))
	for _, id := range ids {
		if u, ok := usersDb[id]; ok {
			authors[id] = MapDbUserToAuthor(u)
			continue
		}
		placeholder := deletedAuthor
		placeholder.Id = id
		authors[id] = placeholder
	}
	return authors, nil
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// CreateSuperuser creates an admin account unless the email is taken. It
// reports whether an account was created.
func CreateSuperuser(db *mongodb.DB, ctx context.Context, req NewUserRequest) (User, bool, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.ValidateStruct(&req); err != nil {
		return User{}, false, err
	}

	existing, err := db.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return MapDbUserToApiUser(existing), false, nil
	}
	if !errors.Is(err, mongodb.ErrRecordNotFound) {
		return User{}, false, errs.Storage(fmt.Errorf("get user by email: %w", err))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return User{}, false, fmt.Errorf("hash password: %w", err)
	}

	userDb, err := db.CreateUser(ctx, mongodb.UserDb{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(auth.RoleAdmin),
	})
	if err != nil {
		if errors.Is(err, mongodb.ErrDuplicateRecord) {
			return User{}, false, ErrEmailAlreadyExists
		}
		return User{}, false, errs.Storage(fmt.Errorf("create superuser: %w", err))
	}

	return MapDbUserToApiUser(userDb), true, nil
}
