package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/heimdall/internal/config"
	"github.com/tessro/heimdall/internal/core"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	dir := t.TempDir()
	fileKV, err := NewFileKV(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	sqliteKV, err := OpenSQLite(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
		"sqlite": sqliteKV,
	}
}

func TestKVBackends(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("k", "v1"))
			require.NoError(t, kv.Set("k", "v2"))
			v, ok, err := kv.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Delete("k"))
			_, ok, err = kv.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting a missing key is not an error.
			require.NoError(t, kv.Delete("k"))
		})
	}
}

func TestFileKVPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	kv, err := NewFileKV(path)
	require.NoError(t, err)
	assert.False(t, kv.Exists())

	require.NoError(t, kv.Set("k", "v"))
	assert.True(t, kv.Exists())
	assert.Equal(t, path, kv.Path())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestFileKVCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	kv, err := NewFileKV(path)
	require.NoError(t, err)

	_, _, err = kv.Get("k")
	assert.Error(t, err)

	// Writes replace the corrupt file.
	require.NoError(t, kv.Set("k", "v"))
	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		wantErr bool
	}{
		{"", false},
		{"file", false},
		{"sqlite", false},
		{"memory", false},
		{"redis", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			kv, closer, err := Open(config.StorageConfig{Backend: tt.backend}, dir)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer closer.Close()
			require.NoError(t, kv.Set("k", "v"))
		})
	}
}

func track(id string) core.Track {
	return core.Track{ID: id, Source: core.SourceYouTube, Title: "Song " + id, Artist: "Artist"}
}

func TestQueueStoreRoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewQueueStore(kv, nil)

			q := core.Queue{Tracks: []core.Track{track("a"), track("b"), track("c")}}
			s.Save(q)

			loaded := NewQueueStore(kv, nil).Load()
			assert.Equal(t, []string{"a", "b", "c"}, loaded.IDs())
			assert.Equal(t, q.Tracks, loaded.Tracks)
		})
	}
}

func TestQueueStoreLoadDegrades(t *testing.T) {
	tests := []struct {
		name  string
		setup func(kv KV)
	}{
		{"missing key", func(kv KV) {}},
		{"empty value", func(kv KV) { kv.Set(KeyQueue, "") }},
		{"unparsable", func(kv KV) { kv.Set(KeyQueue, "[{oops") }},
		{"wrong shape", func(kv KV) { kv.Set(KeyQueue, `{"id":"a"}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			tt.setup(kv)
			q := NewQueueStore(kv, nil).Load()
			assert.True(t, q.IsEmpty())
		})
	}
}

type failingKV struct{ sets int }

func (f *failingKV) Get(string) (string, bool, error) { return "", false, ErrUnavailable }
func (f *failingKV) Set(string, string) error          { f.sets++; return ErrUnavailable }
func (f *failingKV) Delete(string) error               { return ErrUnavailable }

func TestQueueStoreUnavailable(t *testing.T) {
	kv := &failingKV{}
	s := NewQueueStore(kv, nil)

	assert.NotPanics(t, func() { s.Save(core.Queue{Tracks: []core.Track{track("a")}}) })
	q := s.Load()
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 1, kv.sets)
}

type countingKV struct {
	*MemoryKV
	sets int
}

func (c *countingKV) Set(key, value string) error {
	c.sets++
	return c.MemoryKV.Set(key, value)
}

func TestQueueStoreSkipsRedundantWrites(t *testing.T) {
	kv := &countingKV{MemoryKV: NewMemoryKV()}
	s := NewQueueStore(kv, nil)

	q := core.Queue{Tracks: []core.Track{track("a"), track("b")}}
	s.Save(q)
	s.Save(q.Clone())
	assert.Equal(t, 1, kv.sets)

	s.Save(core.Queue{Tracks: []core.Track{track("b")}})
	assert.Equal(t, 2, kv.sets)

	// Empty and nil queues hash the same.
	s.Save(core.Queue{})
	s.Save(core.Queue{Tracks: []core.Track{}})
	assert.Equal(t, 3, kv.sets)
	raw, _, _ := kv.Get(KeyQueue)
	assert.Equal(t, "[]", raw)
}

func TestProfileStore(t *testing.T) {
	tests := []struct {
		name       string
		stored     *string
		wantName   string
		wantAvatar string
	}{
		{
			name:       "nothing stored",
			wantName:   "default",
			wantAvatar: "",
		},
		{
			name:       "json with image",
			stored:     ptr(`{"name":"alice","image":"https://img/a.png"}`),
			wantName:   "alice",
			wantAvatar: "https://img/a.png",
		},
		{
			name:       "json without image",
			stored:     ptr(`{"name":"bob"}`),
			wantName:   "bob",
			wantAvatar: "https://placehold.co/40x40/e50914/white?text=B",
		},
		{
			name:       "bare name",
			stored:     ptr("carol"),
			wantName:   "carol",
			wantAvatar: "https://placehold.co/40x40/e50914/white?text=C",
		},
		{
			name:       "empty json name",
			stored:     ptr(`{"name":""}`),
			wantName:   "default",
			wantAvatar: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			if tt.stored != nil {
				require.NoError(t, kv.Set(KeyProfile, *tt.stored))
			}
			s := NewProfileStore(kv)
			assert.Equal(t, tt.wantName, s.Name())
			assert.Equal(t, tt.wantAvatar, s.Avatar())
		})
	}
}

func TestProfileStoreSetClear(t *testing.T) {
	s := NewProfileStore(NewMemoryKV())
	require.NoError(t, s.Set(core.Profile{Name: "dave"}))
	assert.Equal(t, "dave", s.Name())

	require.NoError(t, s.Clear())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSessionStore(t *testing.T) {
	s := NewSessionStore(NewMemoryKV())

	sess, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)

	in := &Session{
		BaseURL:  "http://127.0.0.1:8000",
		Username: "alice",
		Cookies:  []Cookie{{Name: "session", Value: "abc", Path: "/", Expires: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "alice", out.Username)
	assert.False(t, out.IsExpired())
	require.Len(t, out.HTTPCookies(), 1)
	assert.Equal(t, "abc", out.HTTPCookies()[0].Value)

	require.NoError(t, s.Delete())
	out, err = s.Load()
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestSessionExpiry(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	tests := []struct {
		name    string
		cookies []Cookie
		want    bool
	}{
		{"no cookies", nil, true},
		{"session cookie", []Cookie{{Name: "s"}}, false},
		{"all expired", []Cookie{{Name: "s", Expires: past}}, true},
		{"one live", []Cookie{{Name: "s", Expires: past}, {Name: "t", Expires: time.Now().Add(time.Hour)}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Cookies: tt.cookies}
			assert.Equal(t, tt.want, s.IsExpired())
		})
	}
}

func ptr(s string) *string { return &s }
