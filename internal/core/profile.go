package core

import (
	"strings"
	"unicode/utf8"
)

// Profile is the active viewer profile.
type Profile struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// DefaultProfileName is used when no profile is selected.
const DefaultProfileName = "default"

// Initial returns the uppercased first letter of the profile name.
func (p Profile) Initial() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}
