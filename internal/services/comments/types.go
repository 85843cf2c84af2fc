package comments

import (
	"time"

	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/services/reactions"
	"github.com/lealre/reelstate/internal/services/users"
)

type Comment struct {
	Id        string             `json:"id"`
	User      users.Author       `json:"user"`
	MediaType identity.MediaType `json:"mediaType"`
	MediaId   int64              `json:"mediaId"`
	Text      string             `json:"text"`
	reactions.View
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReportedComment struct {
	Comment
	IsHidden bool               `json:"isHidden"`
	Reports  []reactions.Report `json:"reports"`
}

type NewComment struct {
	MediaId   int64  `json:"mediaId"`
	MediaType string `json:"mediaType" validate:"required"`
	Text      string `json:"text" validate:"required,max=2000"`
}

type AllCommentsFromTitle struct {
	Comments []Comment `json:"comments"`
}

type ReportedCommentsResponse struct {
	Comments []ReportedComment `json:"comments"`
}
