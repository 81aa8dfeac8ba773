package session

import (
	"encoding/json"
	"time"
)

// UserSnapshot is an optional profile snapshot carried alongside the
// credential pair, so the application can render account state without an
// extra profile fetch after restoring a session.
type UserSnapshot struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Session is the persisted credential record: an opaque access token, the
// refresh token used to renew it, and the access token expiry as UTC epoch
// seconds. ExpiresAt of zero means the expiry is unknown; such a session is
// never considered expired or near expiry.
type Session struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    int64         `json:"expires_at"`
	User         *UserSnapshot `json:"user,omitempty"`
}

// HasExpiry reports whether the session carries a known expiry.
func (s *Session) HasExpiry() bool {
	return s != nil && s.ExpiresAt > 0
}

// IsExpired reports whether the access token expiry has passed.
// A session without a known expiry is never expired.
func (s *Session) IsExpired(now time.Time) bool {
	if !s.HasExpiry() {
		return false
	}
	return s.ExpiresAt <= now.UTC().Unix()
}

// ExpiresIn returns the remaining access token lifetime. It returns zero for
// sessions without a known expiry and negative durations for expired ones.
func (s *Session) ExpiresIn(now time.Time) time.Duration {
	if !s.HasExpiry() {
		return 0
	}
	return time.Duration(s.ExpiresAt-now.UTC().Unix()) * time.Second
}

// Clone returns a deep copy, so callers can hold a session without sharing
// the user snapshot with the store's copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	clone := *s
	if s.User != nil {
		user := *s.User
		clone.User = &user
	}
	return &clone
}

// encode serializes the session for storage.
func (s *Session) encode() ([]byte, error) {
	return json.Marshal(s)
}

// decodeSession deserializes a stored session. It returns nil when the
// payload is not a valid session record.
func decodeSession(data []byte) *Session {
	if len(data) == 0 {
		return nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if s.AccessToken == "" && s.RefreshToken == "" {
		return nil
	}
	return &s
}
