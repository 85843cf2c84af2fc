package reactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/authz"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/metrics"
	"github.com/lealre/reelstate/internal/mongodb"
)

// SetReaction records the caller's like or dislike. Voting the other way
// moves the caller between the sets; voting the same way again changes
// nothing.
func SetReaction(db *mongodb.DB, ctx context.Context, session auth.Session, kind Kind, entityId string, direction Direction) (ReactionResponse, error) {
	key, err := identity.ResolveEntity(entityId, session.UserId)
	if err != nil {
		return ReactionResponse{}, err
	}
	if _, err := ParseDirection(string(direction)); err != nil {
		return ReactionResponse{}, err
	}
	if !authz.Can(session, authz.Object(kind), authz.ActReact) {
		return ReactionResponse{}, ErrForbidden
	}

	collection, err := collectionFor(kind)
	if err != nil {
		return ReactionResponse{}, err
	}

	state, err := db.SetReaction(ctx, collection, key.EntityId, key.UserId, direction == Like)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return ReactionResponse{}, NotFoundFor(kind)
		}
		return ReactionResponse{}, errs.Storage(fmt.Errorf("set %s reaction: %w", kind, err))
	}
	metrics.RecordReaction(string(kind), string(direction))

	return ReactionResponse{Id: state.Id, View: MapModerationToView(state.ModerationDb, key.UserId)}, nil
}

// Report files the caller's report against an entity. Each user may report
// an entity once; later attempts fail with ErrAlreadyReported.
func Report(db *mongodb.DB, ctx context.Context, session auth.Session, kind Kind, entityId, reason string) error {
	key, err := identity.ResolveEntity(entityId, session.UserId)
	if err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if !authz.Can(session, authz.Object(kind), authz.ActReport) {
		return ErrForbidden
	}

	collection, err := collectionFor(kind)
	if err != nil {
		return err
	}

	err = db.AddReport(ctx, collection, key.EntityId, mongodb.ReportDb{
		UserId:    key.UserId,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	})
	switch {
	case err == nil:
		metrics.RecordReport(string(kind), "filed")
		return nil
	case errors.Is(err, mongodb.ErrAlreadyReported):
		metrics.RecordReport(string(kind), "duplicate")
		return ErrAlreadyReported
	case errors.Is(err, mongodb.ErrRecordNotFound):
		return NotFoundFor(kind)
	default:
		return errs.Storage(fmt.Errorf("report %s: %w", kind, err))
	}
}

// ToggleHidden flips the moderation flag of an entity. Admin only.
func ToggleHidden(db *mongodb.DB, ctx context.Context, session auth.Session, kind Kind, entityId string) (HiddenResponse, error) {
	key, err := identity.ResolveEntity(entityId, session.UserId)
	if err != nil {
		return HiddenResponse{}, err
	}
	if !authz.Can(session, authz.Object(kind), authz.ActModerate) {
		return HiddenResponse{}, ErrForbidden
	}

	collection, err := collectionFor(kind)
	if err != nil {
		return HiddenResponse{}, err
	}

	hidden, err := db.ToggleHidden(ctx, collection, key.EntityId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return HiddenResponse{}, NotFoundFor(kind)
		}
		return HiddenResponse{}, errs.Storage(fmt.Errorf("toggle %s visibility: %w", kind, err))
	}

	return HiddenResponse{Id: key.EntityId, IsHidden: hidden}, nil
}
