package domain

import "time"

type User struct {
	ID           string
	Email        string // stored lowercase, unique
	Name         string
	PasswordHash string // argon2 encoded
	SystemRole   SystemRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserInfo is the public user shape embedded in token responses and /v1/me.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Info strips a user down to its public shape.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.SystemRole.String(),
	}
}
