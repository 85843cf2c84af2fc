package reviews

import (
	"time"

	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/services/reactions"
	"github.com/lealre/reelstate/internal/services/users"
)

type Category string

const (
	Skip       Category = "Skip"
	Timepass   Category = "Timepass"
	GoForIt    Category = "Go for it"
	Perfection Category = "Perfection"
)

type Review struct {
	Id          string             `json:"id"`
	User        users.Author       `json:"user"`
	MediaType   identity.MediaType `json:"mediaType"`
	MediaId     int64              `json:"mediaId"`
	Category    Category           `json:"category"`
	Text        string             `json:"text"`
	HasSpoilers bool               `json:"hasSpoilers"`
	reactions.View
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReportedReview is the moderation view of a review.
type ReportedReview struct {
	Review
	IsHidden bool               `json:"isHidden"`
	Reports  []reactions.Report `json:"reports"`
}

type AddReviewRequest struct {
	MediaId     int64    `json:"mediaId"`
	MediaType   string   `json:"mediaType" validate:"required"`
	Category    Category `json:"category" validate:"required,oneof=Skip Timepass 'Go for it' Perfection"`
	Text        string   `json:"text" validate:"max=5000"`
	HasSpoilers bool     `json:"hasSpoilers"`
}

type CategoryCounts struct {
	Skip       int `json:"Skip"`
	Timepass   int `json:"Timepass"`
	GoForIt    int `json:"Go for it"`
	Perfection int `json:"Perfection"`
}

type Stats struct {
	Percentage int            `json:"percentage"`
	Counts     CategoryCounts `json:"counts"`
	Total      int            `json:"total"`
}

type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
	Stats   Stats    `json:"stats"`
}

type ReportedReviewsResponse struct {
	Reviews []ReportedReview `json:"reviews"`
}
