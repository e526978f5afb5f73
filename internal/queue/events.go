package queue

import "time"

const (
	KeyProfileCreated  = "profile.created"
	KeyProfileSignedIn = "profile.signed_in"
)

// ProfileSignedIn is published after every successful sign-in.
// EmailHash is helper.EmailDigest of the email, never the address itself.
type ProfileSignedIn struct {
	UserID    string    `json:"user_id"`
	EmailHash string    `json:"email_hash,omitempty"`
	Created   bool      `json:"created"`
	At        time.Time `json:"at"`
}
