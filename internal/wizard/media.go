package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/heimdall/internal/core"
)

// MediaModel is the bubbletea model for picking a movie or TV show.
type MediaModel struct {
	title    string
	items    []core.MediaItem
	cursor   int
	selected *core.MediaItem
	width    int
	height   int
}

// Styles for the media picker
var (
	mediaTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	mediaItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	mediaSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	mediaDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// NewMediaModel creates a new media picker model.
func NewMediaModel(title string, items []core.MediaItem) MediaModel {
	return MediaModel{
		title:  title,
		items:  items,
		width:  80,
		height: 20,
	}
}

// Init initializes the model.
func (m MediaModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MediaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if len(m.items) > 0 && m.cursor < len(m.items) {
				m.selected = &m.items[m.cursor]
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			if len(m.items) > 0 {
				m.cursor = len(m.items) - 1
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m MediaModel) View() string {
	var b strings.Builder

	b.WriteString(mediaTitleStyle.Render("🎬 " + m.title))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(mediaDimStyle.Render("No titles found."))
	} else {
		for i, item := range m.items {
			var line strings.Builder
			line.WriteString(item.DisplayTitle())
			line.WriteString(mediaDimStyle.Render(" (" + item.Year() + ")"))
			if kind := item.Kind(); kind != "" {
				line.WriteString(mediaDimStyle.Render(" - " + kind.Label()))
			}

			if i == m.cursor {
				b.WriteString(mediaSelectedStyle.Render("▸ " + line.String()))
			} else {
				b.WriteString(mediaItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mediaDimStyle.Render("↑/↓ navigate • enter open • esc quit"))

	return b.String()
}

// Selected returns the selected item, or nil if none.
func (m MediaModel) Selected() *core.MediaItem {
	return m.selected
}

// RunMediaPicker runs the media picker and returns the selected item.
func RunMediaPicker(title string, items []core.MediaItem) (*core.MediaItem, error) {
	model := NewMediaModel(title, items)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(MediaModel).Selected(), nil
}
