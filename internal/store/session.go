package store

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Cookie is the persisted form of a session cookie.
type Cookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// Session is the persisted login session for a backend.
type Session struct {
	BaseURL  string   `json:"base_url"`
	Username string   `json:"username,omitempty"`
	Cookies  []Cookie `json:"cookies"`
}

// IsExpired returns true if every cookie has expired.
func (s *Session) IsExpired() bool {
	if len(s.Cookies) == 0 {
		return true
	}
	now := time.Now()
	for _, c := range s.Cookies {
		if c.Expires.IsZero() || c.Expires.After(now) {
			return false
		}
	}
	return true
}

// HTTPCookies converts the stored cookies for use with a cookie jar.
func (s *Session) HTTPCookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		out = append(out, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}
	return out
}

// NewSession builds a session from cookies returned by the backend.
func NewSession(baseURL, username string, cookies []*http.Cookie) *Session {
	s := &Session{BaseURL: baseURL, Username: username}
	for _, c := range cookies {
		s.Cookies = append(s.Cookies, Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}
	return s
}

// SessionStore persists the login session.
type SessionStore struct {
	kv KV
}

// NewSessionStore creates a session store on top of kv.
func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Load returns the stored session, or nil if there is none.
func (s *SessionStore) Load() (*Session, error) {
	raw, ok, err := s.kv.Get(KeySession)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &sess, nil
}

// Save stores the session.
func (s *SessionStore) Save(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.kv.Set(KeySession, string(data))
}

// Delete removes the stored session.
func (s *SessionStore) Delete() error {
	return s.kv.Delete(KeySession)
}
