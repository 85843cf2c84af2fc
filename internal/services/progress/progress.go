package progress

import (
	"context"
	"fmt"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/authz"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/metrics"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/validation"
)

// SaveProgress stores the caller's position in a title. A series save that
// does not carry both season and episode is skipped without error and never
// reaches the store, whether or not a record already exists.
func SaveProgress(db *mongodb.DB, ctx context.Context, session auth.Session, req SaveProgressRequest) (SaveResult, error) {
	if !session.Authenticated() {
		return SaveResult{}, ErrNoSession
	}
	if !authz.Can(session, authz.ObjProgress, authz.ActWrite) {
		return SaveResult{}, ErrForbidden
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return SaveResult{}, err
	}

	id, err := identity.ResolveProgress(identity.ProgressInput{
		UserId:    session.UserId,
		MediaType: req.MediaType,
		MediaId:   req.MediaId,
		Season:    req.Season,
		Episode:   req.Episode,
	})
	if err != nil {
		return SaveResult{}, err
	}

	mediaType := string(id.Key.MediaType)

	if id.Decision == identity.DecisionSkip {
		metrics.RecordProgressSave(mediaType, "skipped")
		return SaveResult{Skipped: true}, nil
	}

	stored, err := db.UpsertProgress(ctx, mapRecordToDb(id.Key, id.Position, req))
	if err != nil {
		metrics.RecordProgressSave(mediaType, "failed")
		return SaveResult{}, errs.Storage(fmt.Errorf("upsert progress: %w", err))
	}
	metrics.RecordProgressSave(mediaType, "upserted")

	return SaveResult{Record: MapDbProgressToRecord(stored)}, nil
}

// ListContinueWatching returns the caller's most recently updated records.
// limit is clamped to MaxContinueWatching.
func ListContinueWatching(db *mongodb.DB, ctx context.Context, session auth.Session, limit int) ([]Record, error) {
	if !session.Authenticated() {
		return nil, ErrNoSession
	}
	if limit <= 0 || limit > MaxContinueWatching {
		limit = MaxContinueWatching
	}

	progressDb, err := db.GetProgressByUser(ctx, session.UserId, int64(limit))
	if err != nil {
		return nil, errs.Storage(fmt.Errorf("list progress: %w", err))
	}

	records := make([]Record, 0, len(progressDb))
	for _, p := range progressDb {
		records = append(records, MapDbProgressToRecord(p))
	}
	return records, nil
}

func DeleteProgress(db *mongodb.DB, ctx context.Context, session auth.Session, mediaType string, mediaId int64) error {
	key, err := identity.ResolveMedia(session.UserId, mediaType, mediaId)
	if err != nil {
		return err
	}

	deleted, err := db.DeleteProgress(ctx, key.UserId, string(key.MediaType), key.MediaId)
	if err != nil {
		return errs.Storage(fmt.Errorf("delete progress: %w", err))
	}
	if deleted == 0 {
		return ErrProgressNotFound
	}
	return nil
}
