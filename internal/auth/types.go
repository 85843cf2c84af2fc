package auth

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the trusted caller identity handed to every service call.
type Session struct {
	UserId string
	Role   Role
}

func (s Session) Authenticated() bool {
	return s.UserId != ""
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
