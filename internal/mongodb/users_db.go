package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserDb struct {
	Id           string     `json:"id" bson:"_id"`
	Name         string     `json:"name" bson:"name"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"passwordHash"`
	Role         string     `json:"role" bson:"role"`
	IsBanned     bool       `json:"isBanned" bson:"isBanned"`
	LastLoginAt  *time.Time `json:"lastLoginAt" bson:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// emailCollation matches the collation of the email_unique index.
var emailCollation = &options.Collation{Locale: "en", Strength: 2}

func (db *DB) CreateUser(ctx context.Context, user UserDb) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	user.Id = newId()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return UserDb{}, ErrDuplicateRecord
		}
		return UserDb{}, err
	}

	return user, nil
}

func (db *DB) GetUserById(ctx context.Context, id string) (UserDb, error) {
	return findOne[UserDb](ctx, db.Collection(UsersCollection), bson.M{"_id": id})
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (UserDb, error) {
	opts := options.FindOne().SetCollation(emailCollation)
	return findOne[UserDb](ctx, db.Collection(UsersCollection), bson.M{"email": email}, opts)
}

func (db *DB) GetAllUsers(ctx context.Context) ([]UserDb, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findMany[UserDb](ctx, db.Collection(UsersCollection), bson.M{}, opts)
}

// ToggleUserBan flips isBanned for a non-admin account. Admin accounts never
// match the filter; callers check the role first to tell the cases apart.
func (db *DB) ToggleUserBan(ctx context.Context, userId string) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	filter := bson.M{"_id": userId, "role": bson.M{"$ne": "admin"}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"isBanned":  bson.M{"$not": bson.A{bson.M{"$ifNull": bson.A{"$isBanned", false}}}},
			"updatedAt": "$$NOW",
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user UserDb
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDb{}, ErrRecordNotFound
		}
		return UserDb{}, err
	}

	return user, nil
}

// UpdateUserName renames the account and returns the updated document.
func (db *DB) UpdateUserName(ctx context.Context, userId, name string) (UserDb, error) {
	coll := db.Collection(UsersCollection)

	update := bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user UserDb
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": userId}, update, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDb{}, ErrRecordNotFound
		}
		return UserDb{}, err
	}

	return user, nil
}

func (db *DB) UpdateLastLogin(ctx context.Context, userId string) error {
	coll := db.Collection(UsersCollection)

	_, err := coll.UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$set": bson.M{"lastLoginAt": time.Now().UTC()}})
	return err
}

// GetUsersByIds returns the users found among ids, keyed by id.
func (db *DB) GetUsersByIds(ctx context.Context, ids []string) (map[string]UserDb, error) {
	out := map[string]UserDb{}
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{"passwordHash": 0})
	users, err := findMany[UserDb](ctx, db.Collection(UsersCollection), bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.Id] = u
	}
	return out, nil
}
