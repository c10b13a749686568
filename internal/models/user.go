package models

import "time"

// User represents a user in the system
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Not serialized
	FullName     *string   `json:"full_name"`
	Email        *string   `json:"email"`
	Mobile       *string   `json:"mobile"`
	Hobbies      *string   `json:"hobbies"`
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"-"`
}

// ProfilePatch carries a partial profile update; null clears a field.
type ProfilePatch struct {
	FullName  Optional[string] `json:"full_name"`
	Email     Optional[string] `json:"email"`
	Mobile    Optional[string] `json:"mobile"`
	Hobbies   Optional[string] `json:"hobbies"`
	Bio       Optional[string] `json:"bio"`
	AvatarURL Optional[string] `json:"avatar_url"`
}

// Credentials is the register/login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
