package reviews

import (
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/services/reactions"
	"github.com/lealre/reelstate/internal/services/users"
)

func MapDbReviewToApiReview(reviewDb mongodb.ReviewDb, author users.Author, viewerId string) Review {
	return Review{
		Id:          reviewDb.Id,
		User:        author,
		MediaType:   identity.MediaType(reviewDb.MediaType),
		MediaId:     reviewDb.MediaId,
		Category:    Category(reviewDb.Category),
		Text:        reviewDb.Text,
		HasSpoilers: reviewDb.HasSpoilers,
		View:        reactions.MapModerationToView(reviewDb.ModerationDb, viewerId),
		CreatedAt:   reviewDb.CreatedAt,
		UpdatedAt:   reviewDb.UpdatedAt,
	}
}

func MapDbReviewToReportedReview(reviewDb mongodb.ReviewDb, author users.Author) ReportedReview {
	return ReportedReview{
		Review:   MapDbReviewToApiReview(reviewDb, author, ""),
		IsHidden: reviewDb.IsHidden,
		Reports:  reactions.MapDbReports(reviewDb.Reports),
	}
}

func authorIds(reviewsDb []mongodb.ReviewDb) []string {
	ids := make([]string, 0, len(reviewsDb))
	for _, r := range reviewsDb {
		ids = append(ids, r.UserId)
	}
	return ids
}
