package store

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/logging"
)

// QueueStore persists the music queue as a JSON array of tracks.
// It never returns errors: failures are logged and the caller carries on
// with in-memory state.
type QueueStore struct {
	kv     KV
	logger *log.Logger

	mu       sync.Mutex
	lastHash uint64
	saved    bool
}

// NewQueueStore creates a queue store on top of kv.
func NewQueueStore(kv KV, logger *log.Logger) *QueueStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &QueueStore{kv: kv, logger: logger}
}

// Save writes the queue. Writes identical to the previous one are skipped.
func (s *QueueStore) Save(q core.Queue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracks := q.Tracks
	if tracks == nil {
		tracks = []core.Track{}
	}

	hash, err := hashstructure.Hash(tracks, hashstructure.FormatV2, nil)
	if err == nil && s.saved && hash == s.lastHash {
		return
	}

	data, err := json.Marshal(tracks)
	if err != nil {
		s.logger.Warn("failed to encode queue", "err", err)
		return
	}

	if err := s.kv.Set(KeyQueue, string(data)); err != nil {
		s.logger.Warn("failed to save queue", "err", err)
		return
	}

	s.lastHash = hash
	s.saved = true
	s.logger.Debug("saved queue", "tracks", len(tracks))
}

// Load reads the queue. A missing key, unparsable data, or unavailable
// storage all yield an empty queue.
func (s *QueueStore) Load() core.Queue {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(KeyQueue)
	if err != nil {
		s.logger.Warn("failed to load queue", "err", err)
		return core.Queue{}
	}
	if !ok || raw == "" {
		return core.Queue{}
	}

	var tracks []core.Track
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		s.logger.Warn("discarding unreadable queue", "err", err)
		return core.Queue{}
	}

	if hash, err := hashstructure.Hash(tracks, hashstructure.FormatV2, nil); err == nil {
		s.lastHash = hash
		s.saved = true
	}
	return core.Queue{Tracks: tracks}
}
