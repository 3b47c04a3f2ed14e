package store

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/tessro/heimdall/internal/core"
)

// avatarURL is the placeholder avatar template; the profile initial is
// appended as the text parameter.
const avatarURL = "https://placehold.co/40x40/e50914/white?text="

// ProfileStore reads and writes the active viewer profile.
type ProfileStore struct {
	kv KV
}

// NewProfileStore creates a profile store on top of kv.
func NewProfileStore(kv KV) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Current returns the stored profile and whether one is set.
// The stored value may be a JSON object or a bare profile name.
func (s *ProfileStore) Current() (core.Profile, bool) {
	raw, ok, err := s.kv.Get(KeyProfile)
	if err != nil || !ok {
		return core.Profile{}, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return core.Profile{}, false
	}

	if strings.HasPrefix(raw, "{") {
		var p core.Profile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return p, true
		}
	}
	return core.Profile{Name: raw}, true
}

// Name returns the active profile name, or the default profile name.
func (s *ProfileStore) Name() string {
	p, ok := s.Current()
	if !ok || p.Name == "" {
		return core.DefaultProfileName
	}
	return p.Name
}

// Avatar returns the profile image, a placeholder built from the profile
// initial, or "" when no profile is stored.
func (s *ProfileStore) Avatar() string {
	p, ok := s.Current()
	if !ok {
		return ""
	}
	if p.Image != "" {
		return p.Image
	}
	initial := p.Initial()
	if initial == "" {
		return ""
	}
	return avatarURL + url.QueryEscape(initial)
}

// Set stores p as the active profile.
func (s *ProfileStore) Set(p core.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyProfile, string(data))
}

// Clear removes the active profile.
func (s *ProfileStore) Clear() error {
	return s.kv.Delete(KeyProfile)
}
