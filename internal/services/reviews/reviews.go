package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/authz"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/services/users"
	"github.com/lealre/reelstate/internal/validation"
)

// AddReview stores the caller's review of a title. A second review of the
// same title fails with ErrAlreadyReviewed and leaves the first untouched.
func AddReview(db *mongodb.DB, ctx context.Context, session auth.Session, req AddReviewRequest) (Review, error) {
	if !session.Authenticated() {
		return Review{}, ErrNoSession
	}
	if !authz.Can(session, authz.ObjReview, authz.ActCreate) {
		return Review{}, ErrForbidden
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return Review{}, err
	}

	key, err := identity.ResolveMedia(session.UserId, req.MediaType, req.MediaId)
	if err != nil {
		return Review{}, err
	}

	reviewDb, err := db.AddReview(ctx, mongodb.ReviewDb{
		UserId:      key.UserId,
		MediaType:   string(key.MediaType),
		MediaId:     key.MediaId,
		Category:    string(req.Category),
		Text:        req.Text,
		HasSpoilers: req.HasSpoilers,
	})
	if err != nil {
		if errors.Is(err, mongodb.ErrDuplicateRecord) {
			return Review{}, ErrAlreadyReviewed
		}
		return Review{}, errs.Storage(fmt.Errorf("add review: %w", err))
	}

	authors, err := users.LoadAuthors(db, ctx, []string{reviewDb.UserId})
	if err != nil {
		return Review{}, err
	}

	return MapDbReviewToApiReview(reviewDb, authors[reviewDb.UserId], session.UserId), nil
}

// GetReviews lists the visible reviews of a title, newest first. The stats
// are computed over every review of the title, hidden ones included.
func GetReviews(db *mongodb.DB, ctx context.Context, session auth.Session, mediaType string, mediaId int64) (ReviewsResponse, error) {
	mt, err := identity.ParseMediaType(mediaType)
	if err != nil {
		return ReviewsResponse{}, err
	}
	if mediaId <= 0 {
		return ReviewsResponse{}, identity.ErrInvalidMediaId
	}

	reviewsDb, err := db.GetReviewsByTitle(ctx, string(mt), mediaId)
	if err != nil {
		return ReviewsResponse{}, errs.Storage(fmt.Errorf("get reviews: %w", err))
	}

	authors, err := users.LoadAuthors(db, ctx, authorIds(reviewsDb))
	if err != nil {
		return ReviewsResponse{}, err
	}

	visible := make([]Review, 0, len(reviewsDb))
	for _, r := range reviewsDb {
		if r.IsHidden {
			continue
		}
		visible = append(visible, MapDbReviewToApiReview(r, authors[r.UserId], session.UserId))
	}

	return ReviewsResponse{Reviews: visible, Stats: ComputeStats(reviewsDb)}, nil
}

// DeleteReview removes a review. Only its author or an admin may do so.
func DeleteReview(db *mongodb.DB, ctx context.Context, session auth.Session, reviewId string) error {
	key, err := identity.ResolveEntity(reviewId, session.UserId)
	if err != nil {
		return err
	}

	reviewDb, err := db.GetReviewById(ctx, key.EntityId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return errs.Storage(fmt.Errorf("get review: %w", err))
	}

	if reviewDb.UserId != key.UserId && !authz.Can(session, authz.ObjReview, authz.ActDeleteAny) {
		return ErrForbidden
	}

	deleted, err := db.DeleteReview(ctx, key.EntityId)
	if err != nil {
		return errs.Storage(fmt.Errorf("delete review: %w", err))
	}
	if deleted == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// GetReported lists reviews with at least one report. Admin only.
func GetReported(db *mongodb.DB, ctx context.Context, session auth.Session) ([]ReportedReview, error) {
	if !session.Authenticated() {
		return nil, ErrNoSession
	}
	if !authz.Can(session, authz.ObjReview, authz.ActModerate) {
		return nil, ErrForbidden
	}

	reviewsDb, err := db.GetReportedReviews(ctx)
	if err != nil {
		return nil, errs.Storage(fmt.Errorf("get reported reviews: %w", err))
	}

	authors, err := users.LoadAuthors(db, ctx, authorIds(reviewsDb))
	if err != nil {
		return nil, err
	}

	out := make([]ReportedReview, 0, len(reviewsDb))
	for _, r := range reviewsDb {
		out = append(out, MapDbReviewToReportedReview(r, authors[r.UserId]))
	}
	return out, nil
}
