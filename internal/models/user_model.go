package models

import "time"

// Session holds the credentials returned by a successful login or
// registration. It is the only piece of client state persisted between
// process runs; domain data is always re-fetched.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// User represents the authenticated account. Owned exclusively by the auth
// store and replaced wholesale on every successful fetch.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Location  string    `json:"location,omitempty"`
	JobTitle  string    `json:"jobTitle,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
