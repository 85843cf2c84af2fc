package watchlist

import (
	"time"

	"github.com/lealre/reelstate/internal/identity"
)

type ListType string

const (
	Favorites  ListType = "favorites"
	WatchLater ListType = "watchLater"
	Completed  ListType = "completed"
)

type Entry struct {
	Id        string             `json:"id"`
	MediaId   int64              `json:"mediaId"`
	MediaType identity.MediaType `json:"mediaType"`
	ListType  ListType           `json:"listType"`
	Title     string             `json:"title"`
	Poster    *string            `json:"poster"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type UpsertRequest struct {
	MediaId   int64   `json:"mediaId"`
	MediaType string  `json:"mediaType" validate:"required"`
	Title     string  `json:"title" validate:"required"`
	Poster    *string `json:"poster"`
	// ListType defaults to watchLater when empty.
	ListType ListType `json:"listType" validate:"omitempty,oneof=favorites watchLater completed"`
}

type UpsertResult struct {
	Entry   Entry
	Created bool
}

type AllEntriesResponse struct {
	Entries []Entry `json:"entries"`
}
