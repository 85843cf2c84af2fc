package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	UsersCollection     = "users"
	ProgressCollection  = "continue_watching"
	WatchlistCollection = "watchlist"
	ReviewsCollection   = "reviews"
	CommentsCollection  = "comments"
)

var (
	ErrRecordNotFound  = errors.New("record not found in the database")
	ErrDuplicateRecord = errors.New("record already exists")
	ErrAlreadyReported = errors.New("entity already reported by this user")
)

type DB struct {
	*mongo.Database
}

func NewDB(client *mongo.Client, name string) *DB {
	return &DB{Database: client.Database(name)}
}
