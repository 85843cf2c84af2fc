package watchlist

import (
	"github.com/lealre/reelstate/internal/identity"
	"github.com/lealre/reelstate/internal/mongodb"
)

func MapDbEntryToApiEntry(entryDb mongodb.WatchlistDb) Entry {
	return Entry{
		Id:        entryDb.Id,
		MediaId:   entryDb.MediaId,
		MediaType: identity.MediaType(entryDb.MediaType),
		ListType:  ListType(entryDb.ListType),
		Title:     entryDb.Title,
		Poster:    entryDb.Poster,
		CreatedAt: entryDb.CreatedAt,
		UpdatedAt: entryDb.UpdatedAt,
	}
}
