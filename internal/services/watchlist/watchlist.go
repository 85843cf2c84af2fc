package watchlist

import (
	"context"
	"fmt"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/authz"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/validation"
)

// UpsertMembership puts a title in one of the caller's lists. A title that
// is already in another list is moved there.
func UpsertMembership(db *mongodb.DB, ctx context.Context, session auth.Session, req UpsertRequest) (UpsertResult, error) {
	if !session.Authenticated() {
		return UpsertResult{}, ErrNoSession
	}
	if !authz.Can(session, authz.ObjWatchlist, authz.ActWrite) {
		return UpsertResult{}, ErrForbidden
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return UpsertResult{}, err
	}

	key, err := identity.ResolveMedia(session.UserId, req.MediaType, req.MediaId)
	if err != nil {
		return UpsertResult{}, err
	}

	listType := req.ListType
	if listType == "" {
		listType = WatchLater
	}

	entryDb, created, err := db.UpsertWatchlistEntry(ctx, mongodb.WatchlistDb{
		UserId:    key.UserId,
		MediaType: string(key.MediaType),
		MediaId:   key.MediaId,
		ListType:  string(listType),
		Title:     req.Title,
		Poster:    req.Poster,
	})
	if err != nil {
		return UpsertResult{}, errs.Storage(fmt.Errorf("upsert watchlist entry: %w", err))
	}

	return UpsertResult{Entry: MapDbEntryToApiEntry(entryDb), Created: created}, nil
}

// Remove deletes one of the caller's entries. Entries of other users are
// reported as not found.
func Remove(db *mongodb.DB, ctx context.Context, session auth.Session, entryId string) error {
	key, err := identity.ResolveEntity(entryId, session.UserId)
	if err != nil {
		return err
	}

	deleted, err := db.DeleteWatchlistEntry(ctx, key.EntityId, key.UserId)
	if err != nil {
		return errs.Storage(fmt.Errorf("delete watchlist entry: %w", err))
	}
	if deleted == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// List returns the caller's entries newest first, optionally only those of
// one list.
func List(db *mongodb.DB, ctx context.Context, session auth.Session, rawListType string) ([]Entry, error) {
	if !session.Authenticated() {
		return nil, ErrNoSession
	}
	listType, err := ParseListType(rawListType)
	if err != nil {
		return nil, err
	}

	entriesDb, err := db.GetWatchlist(ctx, session.UserId, string(listType))
	if err != nil {
		return nil, errs.Storage(fmt.Errorf("list watchlist: %w", err))
	}

	entries := make([]Entry, 0, len(entriesDb))
	for _, e := range entriesDb {
		entries = append(entries, MapDbEntryToApiEntry(e))
	}
	return entries, nil
}
