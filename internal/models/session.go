package models

import "time"

// Session is an authenticated browser session, stored server-side keyed by
// an opaque token.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
