package users

import "time"

type User struct {
	Id          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsBanned    bool       `json:"isBanned"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Author is the public face of a user attached to reviews and comments.
type Author struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type NewUserRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type ProfileResponse struct {
	User User `json:"user"`
}

type AllUsersResponse struct {
	Users []User `json:"users"`
}
