package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/authz"
	"github.com/lealre/reelstate/internal/errs"
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/services/users"
	"github.com/lealre/reelstate/internal/validation"
)

func AddComment(db *mongodb.DB, ctx context.Context, session auth.Session, newComment NewComment) (Comment, error) {
	if !session.Authenticated() {
		return Comment{}, ErrNoSession
	}
	if !authz.Can(session, authz.ObjComment, authz.ActCreate) {
		return Comment{}, ErrForbidden
	}

	newComment.Text = strings.TrimSpace(newComment.Text)
	if newComment.Text == "" {
		return Comment{}, ErrCommentIsNull
	}
	if err := validation.ValidateStruct(&newComment); err != nil {
		return Comment{}, err
	}

	key, err := identity.ResolveMedia(session.UserId, newComment.MediaType, newComment.MediaId)
	if err != nil {
		return Comment{}, err
	}

	commentDb, err := db.AddComment(ctx, mongodb.CommentDb{
		UserId:    key.UserId,
		MediaType: string(key.MediaType),
		MediaId:   key.MediaId,
		Text:      newComment.Text,
	})
	if err != nil {
		return Comment{}, errs.Storage(fmt.Errorf("add comment: %w", err))
	}

	authors, err := users.LoadAuthors(db, ctx, []string{commentDb.UserId})
	if err != nil {
		return Comment{}, err
	}

	return MapDbCommentToApiComment(commentDb, authors[commentDb.UserId], session.UserId), nil
}

// GetComments lists the visible comments of a title, newest first.
func GetComments(db *mongodb.DB, ctx context.Context, session auth.Session, mediaType string, mediaId int64) ([]Comment, error) {
	mt, err := identity.ParseMediaType(mediaType)
	if err != nil {
		return nil, err
	}
	if mediaId <= 0 {
		return nil, identity.ErrInvalidMediaId
	}

	commentsDb, err := db.GetVisibleComments(ctx, string(mt), mediaId)
	if err != nil {
		return nil, errs.Storage(fmt.Errorf("get comments: %w", err))
	}

	authors, err := users.LoadAuthors(db, ctx, authorIds(commentsDb))
	if err != nil {
		return nil, err
	}

	out := make([]Comment, 0, len(commentsDb))
	for _, c := range commentsDb {
		out = append(out, MapDbCommentToApiComment(c, authors[c.UserId], session.UserId))
	}
	return out, nil
}

// DeleteComment removes a comment. Only its author or an admin may do so.
func DeleteComment(db *mongodb.DB, ctx context.Context, session auth.Session, commentId string) error {
	key, err := identity.ResolveEntity(commentId, session.UserId)
	if err != nil {
		return err
	}

	commentDb, err := db.GetCommentById(ctx, key.EntityId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return errs.Storage(fmt.Errorf("get comment: %w", err))
	}

	if commentDb.UserId != key.UserId && !authz.Can(session, authz.ObjComment, authz.ActDeleteAny) {
		return ErrForbidden
	}

	deleted, err := db.DeleteComment(ctx, key.EntityId)
	if err != nil {
		return errs.Storage(fmt.Errorf("delete comment: %w", err))
	}
	if deleted == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// GetReported lists comments with at least one report, most recently
// updated first. Admin only.
func GetReported(db *mongodb.DB, ctx context.Context, session auth.Session) ([]ReportedComment, error) {
	if !session.Authenticated() {
		return nil, ErrNoSession
	}
	if !authz.Can(session, authz.ObjComment, authz.ActModerate) {
		return nil, ErrForbidden
	}

	commentsDb, err := db.GetReportedComments(ctx)
	if err != nil {
		return nil, errs.Storage(fmt.Errorf("get reported comments: %w", err))
	}

	authors, err := users.LoadAuthors(db, ctx, authorIds(commentsDb))
	if err != nil {
		return nil, err
	}

	out := make([]ReportedComment, 0, len(commentsDb))
	for _, c := range commentsDb {
		out = append(out, MapDbCommentToReportedComment(c, authors[c.UserId]))
	}
	return out, nil
}
