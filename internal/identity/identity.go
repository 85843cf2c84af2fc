// Package identity derives the natural keys that progress, watchlist, review
// and reaction records are looked up or created by.
package identity

import (
	"strings"

	"github.com/lealre/reelstate/internal/errs"
)

type MediaType string

const (
	Movie  MediaType = "movie"
	Series MediaType = "series"
)

var (
	ErrNoUser           = errs.Unauthorized("authentication required")
	ErrInvalidMediaType = errs.Validation("mediaType", "mediaType must be one of: movie series")
	ErrInvalidMediaId   = errs.Validation("mediaId", "mediaId must be a positive number")
	ErrInvalidSeason    = errs.Validation("season", "season must be greater than or equal to 0")
	ErrInvalidEpisode   = errs.Validation("episode", "episode must be greater than or equal to 0")
	ErrNoEntityId       = errs.Validation("id", "id is required")
)

// ParseMediaType accepts "movie" and "series", plus "tv" as a legacy
// spelling of series.
func ParseMediaType(raw string) (MediaType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "movie":
		return Movie, nil
	case "series", "tv":
		return Series, nil
	default:
		return "", ErrInvalidMediaType
	}
}

// Decision tells the progress store whether it may create a record.
type Decision int

const (
	// DecisionUpsert creates the record when absent.
	DecisionUpsert Decision = iota
	// DecisionSkip leaves the store alone: a series save arrived before the
	// episode was known.
	DecisionSkip
)

type ProgressKey struct {
	UserId    string
	MediaType MediaType
	MediaId   int64
}

// Position is the season/episode pair of a series save.
type Position struct {
	Season  int
	Episode int
}

type ProgressInput struct {
	UserId    string
	MediaType string
	MediaId   int64
	Season    *int
	Episode   *int
}

type ProgressIdentity struct {
	Key      ProgressKey
	Decision Decision
	// Position is nil for movies and for skipped series saves.
	Position *Position
}

// ResolveProgress validates a save request and returns its key. Movies drop
// any season/episode sent by the client. Series saves missing either half of
// the position resolve to DecisionSkip.
func ResolveProgress(in ProgressInput) (ProgressIdentity, error) {
	if strings.TrimSpace(in.UserId) == "" {
		return ProgressIdentity{}, ErrNoUser
	}

	mediaType, err := ParseMediaType(in.MediaType)
	if err != nil {
		return ProgressIdentity{}, err
	}

	if in.MediaId <= 0 {
		return ProgressIdentity{}, ErrInvalidMediaId
	}

	id := ProgressIdentity{
		Key: ProgressKey{
			UserId:    in.UserId,
			MediaType: mediaType,
			MediaId:   in.MediaId,
		},
		Decision: DecisionUpsert,
	}

	if mediaType == Movie {
		return id, nil
	}

	if in.Season != nil && *in.Season < 0 {
		return ProgressIdentity{}, ErrInvalidSeason
	}
	if in.Episode != nil && *in.Episode < 0 {
		return ProgressIdentity{}, ErrInvalidEpisode
	}

	if in.Season == nil || in.Episode == nil {
		id.Decision = DecisionSkip
		return id, nil
	}

	id.Position = &Position{Season: *in.Season, Episode: *in.Episode}
	return id, nil
}

// MediaKey identifies a title in a user's watchlist or review set.
type MediaKey struct {
	UserId    string
	MediaType MediaType
	MediaId   int64
}

func ResolveMedia(userId, mediaType string, mediaId int64) (MediaKey, error) {
	if strings.TrimSpace(userId) == "" {
		return MediaKey{}, ErrNoUser
	}
	mt, err := ParseMediaType(mediaType)
	if err != nil {
		return MediaKey{}, err
	}
	if mediaId <= 0 {
		return MediaKey{}, ErrInvalidMediaId
	}
	return MediaKey{UserId: userId, MediaType: mt, MediaId: mediaId}, nil
}

// EntityKey identifies one user's reaction or report on a comment or review.
type EntityKey struct {
	EntityId string
	UserId   string
}

func ResolveEntity(entityId, userId string) (EntityKey, error) {
	if strings.TrimSpace(userId) == "" {
		return EntityKey{}, ErrNoUser
	}
	if strings.TrimSpace(entityId) == "" {
		return EntityKey{}, ErrNoEntityId
	}
	return EntityKey{EntityId: entityId, UserId: userId}, nil
}
