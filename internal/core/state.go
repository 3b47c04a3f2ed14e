package core

// Snapshot is an immutable view of the queue manager's state. Renderers and
// the persistent store only ever receive snapshots.
type Snapshot struct {
	Queue   Queue  `json:"queue"`
	Current *Track `json:"current,omitempty"`
}

// HasCurrent returns true if a track is playing.
func (s Snapshot) HasCurrent() bool {
	return s.Current != nil
}

// Count returns the number of queued tracks.
func (s Snapshot) Count() int {
	return s.Queue.Len()
}

// PlayerStatus describes what the now-playing panel shows.
type PlayerStatus int

const (
	PlayerHidden PlayerStatus = iota
	PlayerLoading
	PlayerPlaying
	PlayerError
)

// NowPlaying is the state of the now-playing panel.
type NowPlaying struct {
	Status PlayerStatus
	Track  *Track
	// Title and Subtitle replace the track title/artist when Status is
	// PlayerError.
	Title    string
	Subtitle string
}

// Visible reports whether the player should be shown.
func (n NowPlaying) Visible() bool {
	return n.Status != PlayerHidden
}
