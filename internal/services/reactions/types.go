package reactions

import "time"

// Kind names the collection an entity lives in.
type Kind string

const (
	KindComment Kind = "comment"
	KindReview  Kind = "review"
)

type Direction string

const (
	Like    Direction = "like"
	Dislike Direction = "dislike"
)

// View is the public reaction summary of an entity. Raw user id sets are
// never exposed.
type View struct {
	Likes        int       `json:"likes"`
	Dislikes     int       `json:"dislikes"`
	UserReaction Direction `json:"userReaction,omitempty"`
}

type ReactionResponse struct {
	Id string `json:"id"`
	View
}

type Report struct {
	UserId    string    `json:"userId"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReactRequest struct {
	Type Direction `json:"type"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

type HiddenResponse struct {
	Id       string `json:"id"`
	IsHidden bool   `json:"isHidden"`
}
