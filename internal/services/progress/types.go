package progress

import (
	"time"

	"github.com/lealre/reelstate/internal/identity"
)

// Record is either a MovieProgress or a SeriesProgress.
type Record interface {
	Base() Common
	isRecord()
}

type Common struct {
	Id        string             `json:"id"`
	MediaType identity.MediaType `json:"mediaType"`
	MediaId   int64              `json:"mediaId"`
	Title     string             `json:"title"`
	Poster    *string            `json:"poster"`
	Progress  float64            `json:"progress"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type MovieProgress struct {
	Common
}

type SeriesProgress struct {
	Common
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

func (m MovieProgress) Base() Common  { return m.Common }
func (s SeriesProgress) Base() Common { return s.Common }
func (MovieProgress) isRecord()       {}
func (SeriesProgress) isRecord()      {}

type SaveProgressRequest struct {
	MediaId   int64    `json:"mediaId"`
	Title     string   `json:"title" validate:"required"`
	Poster    *string  `json:"poster"`
	MediaType string   `json:"mediaType" validate:"required"`
	Progress  *float64 `json:"progress" validate:"required,gte=0"`
	Season    *int     `json:"season,omitempty"`
	Episode   *int     `json:"episode,omitempty"`
}

// SaveResult tells a stored save from a skipped one.
type SaveResult struct {
	Skipped bool   `json:"skipped"`
	Record  Record `json:"record,omitempty"`
}

type ContinueWatchingResponse struct {
	Items []Record `json:"items"`
}
