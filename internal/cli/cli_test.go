package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessro/heimdall/internal/api"
	"github.com/tessro/heimdall/internal/config"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/notify"
)

func TestQueuePosition(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"12", 11, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"two", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := queuePosition(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMediaType(t *testing.T) {
	for _, s := range []string{"movie", "Movies"} {
		got, err := parseMediaType(s)
		require.NoError(t, err)
		assert.Equal(t, core.MediaMovie, got)
	}
	for _, s := range []string{"tv", "shows", "SHOW"} {
		got, err := parseMediaType(s)
		require.NoError(t, err)
		assert.Equal(t, core.MediaTV, got)
	}
	_, err := parseMediaType("podcast")
	assert.ErrorContains(t, err, "unknown media type")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "exactly10!", TruncateString("exactly10!", 10))
	assert.Equal(t, "a long ...", TruncateString("a long title here", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}

func TestTrackTable(t *testing.T) {
	var buf bytes.Buffer
	trackTable(&buf, []core.Track{
		{ID: "a", Source: core.SourceYouTube, Title: "One More Time", Artist: "Daft Punk", Duration: 320},
		{ID: "b", Source: core.SourceJioSaavn, Title: "Kesariya", Artist: "Arijit Singh"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"#", "SOURCE", "TITLE", "ARTIST", "LENGTH"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], "youtube")
	assert.Contains(t, lines[1], "5:20")
	assert.True(t, strings.HasPrefix(lines[2], "2 "))
	assert.Contains(t, lines[2], "Arijit Singh")
}

func TestFormatNotice(t *testing.T) {
	got := formatNotice(notify.Toast{Message: "Added to queue", Kind: notify.Success})
	assert.Contains(t, got, "✓ Added to queue")

	got = formatNotice(notify.Toast{Message: "odd", Kind: notify.Kind("custom")})
	assert.Contains(t, got, "odd")
}

func TestPrintNotices(t *testing.T) {
	jsonOut = false
	center := notify.NewCenter(time.Second)
	defer center.Close()

	var buf bytes.Buffer
	stop := printNotices(center, &buf)
	center.Notify("Added to queue", notify.Success)
	center.Notify("Removed from queue", notify.Info)
	stop()

	out := buf.String()
	assert.Contains(t, out, "Added to queue")
	assert.Contains(t, out, "Removed from queue")
	assert.Equal(t, 0, center.SubscriberCount())
}

func TestPrintNoticesJSON(t *testing.T) {
	jsonOut = true
	defer func() { jsonOut = false }()

	center := notify.NewCenter(time.Second)
	defer center.Close()

	var buf bytes.Buffer
	stop := printNotices(center, &buf)
	center.Notify("Added to queue", notify.Success)
	stop()

	assert.Empty(t, buf.String())
	assert.Equal(t, 0, center.SubscriberCount())
}

func TestExistsLabel(t *testing.T) {
	assert.Equal(t, "", existsLabel(true))
	assert.Equal(t, "(not created)", existsLabel(false))
}

func TestGetConfigPath(t *testing.T) {
	cfgFile = "/tmp/custom.toml"
	defer func() { cfgFile = "" }()
	assert.Equal(t, "/tmp/custom.toml", getConfigPath())
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"search", "play", "queue", "lyrics", "ui", "login", "signup", "logout",
		"browse", "find", "discover", "genres", "watchlist", "profile",
		"config", "version", "web", "home",
	}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, sub := range []string{"list", "add", "remove", "clear", "next", "play-from"} {
		cmd, _, err := rootCmd.Find([]string{"queue", sub})
		require.NoError(t, err, sub)
		assert.Equal(t, sub, cmd.Name())
	}
}

func TestFindEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code --wait")
	assert.Equal(t, "code --wait", findEditor())

	t.Setenv("EDITOR", "hx")
	assert.Equal(t, "hx", findEditor())
}

func TestWriteConfigRoundTrip(t *testing.T) {
	path := t.TempDir() + "/config.toml"
	require.NoError(t, writeDefaultConfig(path))

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	require.NoError(t, loaded.Set("tui.theme", "light"))
	require.NoError(t, writeConfig(path, loaded))

	again, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "light", again.TUI.Theme)
	assert.Equal(t, config.Default().Player.Command, again.Player.Command)
}

type fakeLister struct {
	failTV bool
}

func (f fakeLister) Movies(_ context.Context, list api.List) ([]core.MediaItem, error) {
	return []core.MediaItem{{ID: 1, Title: "Movie " + string(list), ReleaseDate: "1999-03-31"}}, nil
}

func (f fakeLister) TV(_ context.Context, list api.List) ([]core.MediaItem, error) {
	if f.failTV {
		return nil, errors.New("boom")
	}
	return []core.MediaItem{{ID: 2, Name: "Show " + string(list)}}, nil
}

func TestLoadHome(t *testing.T) {
	result := loadHome(context.Background(), fakeLister{})
	assert.False(t, result.HasErrors())
	require.Len(t, result.Data, len(homeRows))
	for i, row := range result.Data {
		assert.Equal(t, homeRows[i].Title, row.Title)
		require.Len(t, row.Items, 1)
	}
	assert.Equal(t, "Movie trending", result.Data[0].Items[0].Title)
	assert.Equal(t, "Show popular", result.Data[5].Items[0].Name)
}

func TestLoadHomePartialFailure(t *testing.T) {
	result := loadHome(context.Background(), fakeLister{failTV: true})
	assert.Len(t, result.Errors, 3)
	require.Len(t, result.Data, 3)
	for _, row := range result.Data {
		assert.Equal(t, core.MediaMovie, row.Type)
	}
	assert.Contains(t, result.ErrorSummary(), "Trending TV Shows: boom")
}

func TestHomeRowLine(t *testing.T) {
	items := []core.MediaItem{
		{Title: "The Matrix", ReleaseDate: "1999-03-31"},
		{Name: "Dark", FirstAirDate: "2017-12-01"},
		{Title: "Unknown"},
	}
	assert.Equal(t, "  The Matrix (1999) · Dark (2017)", homeRowLine(items, 2))
	assert.Equal(t, "  (empty)", homeRowLine(nil, 5))
	assert.Contains(t, homeRowLine(items, 0), "Unknown (N/A)")
}
