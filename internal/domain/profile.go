package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// Identity is what the identity provider tells us about a signed-in user.
// Only ID is guaranteed; the rest may be absent.
type Identity struct {
	ID          string  `json:"id"`
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
}

// UserProfile is the stored record for one identity (collection "users").
type UserProfile struct {
	ID          string    `bson:"_id"          json:"id"`
	Email       *string   `bson:"email"        json:"email"`
	DisplayName *string   `bson:"display_name" json:"display_name"`
	PhotoURL    *string   `bson:"photo_url"    json:"photo_url"`
	CreatedAt   time.Time `bson:"created_at"   json:"created_at"`
	LastLogin   time.Time `bson:"last_login"   json:"last_login"`
}

// Str returns a pointer to s, or nil when s is empty.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
