package reactions

import "github.com/lealre/reelstate/internal/mongodb"

// MapModerationToView counts the sets and reports userId's own vote.
func MapModerationToView(moderation mongodb.ModerationDb, userId string) View {
	view := View{Likes: len(moderation.Likes), Dislikes: len(moderation.Dislikes)}
	if userId == "" {
		return view
	}
	for _, id := range moderation.Likes {
		if id == userId {
			view.UserReaction = Like
			return view
		}
	}
	for _, id := range moderation.Dislikes {
		if id == userId {
			view.UserReaction = Dislike
			return view
		}
	}
	return view
}

func MapDbReports(reportsDb []mongodb.ReportDb) []Report {
	reports := make([]Report, 0, len(reportsDb))
	for _, r := range reportsDb {
		reports = append(reports, Report{UserId: r.UserId, Reason: r.Reason, CreatedAt: r.CreatedAt})
	}
	return reports
}
