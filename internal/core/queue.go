package core

// Queue is an ordered list of tracks waiting to be played. Insertion order is
// play order.
type Queue struct {
	Tracks []Track `json:"tracks"`
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// IndexOf returns the position of the entry matching t, or -1.
func (q *Queue) IndexOf(t Track) int {
	if q == nil {
		return -1
	}
	for i, existing := range q.Tracks {
		if existing.SameAs(t) {
			return i
		}
	}
	return -1
}

// Contains reports whether an entry matching t is queued.
func (q *Queue) Contains(t Track) bool {
	return q.IndexOf(t) >= 0
}

// IDs returns the queued track IDs in order.
func (q *Queue) IDs() []string {
	if q == nil {
		return nil
	}
	ids := make([]string, len(q.Tracks))
	for i, t := range q.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// Clone returns a deep copy of the queue.
func (q *Queue) Clone() Queue {
	if q == nil {
		return Queue{}
	}
	tracks := make([]Track, len(q.Tracks))
	copy(tracks, q.Tracks)
	return Queue{Tracks: tracks}
}
