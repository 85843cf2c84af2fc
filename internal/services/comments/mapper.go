package comments

import (
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/services/reactions"
	"github.com/lealre/reelstate/internal/services/users"
)

func MapDbCommentToApiComment(commentDb mongodb.CommentDb, author users.Author, viewerId string) Comment {
	return Comment{
		Id:        commentDb.Id,
		User:      author,
		MediaType: identity.MediaType(commentDb.MediaType),
		MediaId:   commentDb.MediaId,
		Text:      commentDb.Text,
		View:      reactions.MapModerationToView(commentDb.ModerationDb, viewerId),
		CreatedAt: commentDb.CreatedAt,
		UpdatedAt: commentDb.UpdatedAt,
	}
}

func MapDbCommentToReportedComment(commentDb mongodb.CommentDb, author users.Author) ReportedComment {
	return ReportedComment{
		Comment:  MapDbCommentToApiComment(commentDb, author, ""),
		IsHidden: commentDb.IsHidden,
		Reports:  reactions.MapDbReports(commentDb.Reports),
	}
}

func authorIds(commentsDb []mongodb.CommentDb) []string {
	ids := make([]string, 0, len(commentsDb))
	for _, c := range commentsDb {
		ids = append(ids, c.UserId)
	}
	return ids
}
