package users

import "github.com/lealre/reelstate/internal/mongodb"

func MapDbUserToApiUser(userDb mongodb.UserDb) User {
	return User{
		Id:          userDb.Id,
		Name:        userDb.Name,
		Email:       userDb.Email,
		Role:        userDb.Role,
		IsBanned:    userDb.IsBanned,
		LastLoginAt: userDb.LastLoginAt,
		CreatedAt:   userDb.CreatedAt,
		UpdatedAt:   userDb.UpdatedAt,
	}
}

func MapDbUserToAuthor(userDb mongodb.UserDb) Author {
	return Author{Id: userDb.Id, Name: userDb.Name, Role: userDb.Role}
}
