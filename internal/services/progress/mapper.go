package progress

import (
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/mongodb"
)

func MapDbProgressToRecord(progressDb mongodb.ProgressDb) Record {
	common := Common{
		Id:        progressDb.Id,
		MediaType: identity.MediaType(progressDb.MediaType),
		MediaId:   progressDb.MediaId,
		Title:     progressDb.Title,
		Poster:    progressDb.Poster,
		Progress:  progressDb.Progress,
		UpdatedAt: progressDb.UpdatedAt,
	}

	if common.MediaType != identity.Series {
		return MovieProgress{Common: common}
	}

	series := SeriesProgress{Common: common}
	if progressDb.Season != nil {
		series.Season = *progressDb.Season
	}
	if progressDb.Episode != nil {
		series.Episode = *progressDb.Episode
	}
	return series
}

func mapRecordToDb(key identity.ProgressKey, pos *identity.Position, req SaveProgressRequest) mongodb.ProgressDb {
	doc := mongodb.ProgressDb{
		UserId:    key.UserId,
		MediaType: string(key.MediaType),
		MediaId:   key.MediaId,
		Title:     req.Title,
		Poster:    req.Poster,
		Progress:  *req.Progress,
	}
	if pos != nil {
		season, episode := pos.Season, pos.Episode
		doc.Season = &season
		doc.Episode = &episode
	}
	return doc
}
