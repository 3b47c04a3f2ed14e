package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/heimdall/internal/core"
)

// MinQueryLength is the shortest query that triggers a search.
const MinQueryLength = 2

// DefaultDebounce is the pause in typing before a search is sent.
const DefaultDebounce = 500 * time.Millisecond

// SourceFilter restricts results to one source.
type SourceFilter int

const (
	FilterAll SourceFilter = iota
	FilterYouTube
	FilterSoundCloud
	FilterJioSaavn
)

var filterNames = []string{"All", "YouTube", "SoundCloud", "JioSaavn"}

var filterSources = map[SourceFilter]core.Source{
	FilterYouTube:    core.SourceYouTube,
	FilterSoundCloud: core.SourceSoundCloud,
	FilterJioSaavn:   core.SourceJioSaavn,
}

// Match reports whether t passes the filter.
func (f SourceFilter) Match(t core.Track) bool {
	if f == FilterAll {
		return true
	}
	return t.Source == filterSources[f]
}

// ParseSourceFilter maps a source name ("", "all", "youtube", ...) to a
// filter.
func ParseSourceFilter(name string) (SourceFilter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "all" {
		return FilterAll, nil
	}
	for f, src := range filterSources {
		if string(src) == name {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown source %q (want youtube, soundcloud or jiosaavn)", name)
}

// Apply returns the tracks that pass the filter.
func (f SourceFilter) Apply(tracks []core.Track) []core.Track {
	if f == FilterAll {
		return tracks
	}
	out := make([]core.Track, 0, len(tracks))
	for _, t := range tracks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// SearchFunc is a function that performs a search.
type SearchFunc func(query string) ([]core.Track, error)

// SearchModel is the bubbletea model for the search wizard.
type SearchModel struct {
	input      textinput.Model
	results    []core.Track
	cursor     int
	filter     SourceFilter
	searchFunc SearchFunc
	selected   *core.Track
	err        error
	debounce   time.Duration
	lastQuery  string
	searching  bool
	width      int
	height     int
}

// Styles
var (
	searchTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("160"))

	searchTabStyle = lipgloss.NewStyle().
			Padding(0, 2)

	searchActiveTabStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(lipgloss.Color("160")).
				Foreground(lipgloss.Color("15"))

	searchResultStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	searchSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	searchSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// NewSearchModel creates a new search wizard model.
func NewSearchModel(searchFunc SearchFunc) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search for songs, artists..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return SearchModel{
		input:      ti,
		searchFunc: searchFunc,
		debounce:   DefaultDebounce,
		filter:     FilterAll,
		width:      80,
		height:     20,
	}
}

// Init initializes the model.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// debounceMsg is sent after the debounce period.
type debounceMsg struct {
	query string
}

// searchResultsMsg contains search results.
type searchResultsMsg struct {
	query   string
	results []core.Track
	err     error
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			visible := m.visible()
			if len(visible) > 0 && m.cursor < len(visible) {
				t := visible[m.cursor]
				m.selected = &t
				return m, tea.Quit
			}

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
			return m, nil

		case "tab":
			m.filter = (m.filter + 1) % SourceFilter(len(filterNames))
			m.cursor = 0
			return m, nil

		case "shift+tab":
			if m.filter == 0 {
				m.filter = SourceFilter(len(filterNames) - 1)
			} else {
				m.filter--
			}
			m.cursor = 0
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4

	case debounceMsg:
		if msg.query == m.query() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			if len(msg.query) < MinQueryLength {
				m.results = nil
				m.err = nil
				return m, nil
			}
			m.searching = true
			return m, m.doSearch(msg.query)
		}
		return m, nil

	case searchResultsMsg:
		// Results for a query the user has since changed are ignored.
		if msg.query != m.lastQuery {
			return m, nil
		}
		m.searching = false
		m.results = msg.results
		m.err = msg.err
		m.cursor = 0
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	if q := m.query(); q != m.lastQuery {
		cmds = append(cmds, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{query: q}
		}))
	}

	return m, tea.Batch(cmds...)
}

func (m SearchModel) query() string {
	return strings.TrimSpace(m.input.Value())
}

// visible returns the results that pass the source filter.
func (m SearchModel) visible() []core.Track {
	return m.filter.Apply(m.results)
}

// doSearch performs the search.
func (m SearchModel) doSearch(query string) tea.Cmd {
	search := m.searchFunc
	return func() tea.Msg {
		results, err := search(query)
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

// View renders the model.
func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(searchTitleStyle.Render("🎧 Search Music"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for i, tab := range filterNames {
		if SourceFilter(i) == m.filter {
			b.WriteString(searchActiveTabStyle.Render(tab))
		} else {
			b.WriteString(searchTabStyle.Render(tab))
		}
	}
	b.WriteString("\n\n")

	visible := m.visible()
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: " + m.err.Error()))
	} else if m.searching {
		b.WriteString("Searching...")
	} else if len(m.query()) < MinQueryLength {
		b.WriteString(searchSubtitleStyle.Render("Type at least 2 characters to search"))
	} else if len(visible) == 0 && m.lastQuery != "" {
		b.WriteString("No results found for \"" + m.lastQuery + "\"")
	} else {
		maxResults := m.height - 10
		if maxResults < 5 {
			maxResults = 5
		}
		for i, t := range visible {
			if i >= maxResults {
				b.WriteString(searchSubtitleStyle.Render("  ...and more"))
				break
			}

			line := t.Title
			sub := t.Artist
			if d := core.FormatDuration(t.Duration); d != "" {
				sub += " · " + d
			}
			if sub != "" {
				line += " " + searchSubtitleStyle.Render(sub)
			}

			if i == m.cursor {
				b.WriteString(searchSelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(searchResultStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(searchSubtitleStyle.Render("↑/↓ navigate • tab filter source • enter select • esc quit"))

	return b.String()
}

// Selected returns the selected track, or nil if none.
func (m SearchModel) Selected() *core.Track {
	return m.selected
}

// RunSearch runs the search wizard and returns the selected track.
func RunSearch(searchFunc SearchFunc) (*core.Track, error) {
	model := NewSearchModel(searchFunc)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(SearchModel).Selected(), nil
}
