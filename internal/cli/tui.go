package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/distribution"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// ExploreModel - Interactive MaxWhite table browser
// =============================================================================

// ColorFunc builds a coloring with the given counts.
type ColorFunc func(black, white int) (*color.Coloring, error)

// ExploreModel is the bubbletea model for browsing a MaxWhite table. The
// row under the cursor shows the counts of a coloring reaching MaxWhite(b).
type ExploreModel struct {
	MaxWhite distribution.MaxWhite
	Cursor   int
	Height   int
	Offset   int

	colorFn ColorFunc
	current *color.Coloring
	err     error
}

// NewExploreModel creates a browser over mw. colorFn is called whenever
// the cursor moves.
func NewExploreModel(mw distribution.MaxWhite, colorFn ColorFunc) ExploreModel {
	m := ExploreModel{
		MaxWhite: mw,
		Height:   15,
		colorFn:  colorFn,
	}
	return m.refresh()
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	last := m.MaxWhite.Size()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cursor := m.Cursor
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			cursor--
		case "down", "j":
			cursor++
		case "pgup", "b":
			cursor -= m.Height
		case "pgdown", "f", " ":
			cursor += m.Height
		case "home", "g":
			cursor = 0
		case "end", "G":
			cursor = last
		}
		cursor = min(max(cursor, 0), last)
		if cursor != m.Cursor {
			m.Cursor = cursor
			m = m.scroll().refresh()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		m = m.scroll()
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("MaxWhite"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height-1, m.MaxWhite.Size())
	b.WriteString(maxWhiteTable(m.MaxWhite, m.Offset, end, m.Cursor))
	b.WriteString("\n\n")

	w := m.MaxWhite.At(m.Cursor)
	b.WriteString(fmt.Sprintf("  b = %s, w = %s   ", StyleNumber.Render(fmt.Sprint(m.Cursor)), StyleNumber.Render(fmt.Sprint(w))))
	if m.err != nil {
		b.WriteString(listErrorStyle.Render(bwerrors.UserMessage(m.err)))
	} else if m.current != nil {
		b.WriteString(colorCounts(m.current))
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.MaxWhite.Size()+1)))

	return b.String()
}

// scroll keeps the cursor inside the visible window.
func (m ExploreModel) scroll() ExploreModel {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

// refresh rebuilds the coloring for the cursor row.
func (m ExploreModel) refresh() ExploreModel {
	m.current, m.err = nil, nil
	if m.colorFn == nil {
		return m
	}
	m.current, m.err = m.colorFn(m.Cursor, m.MaxWhite.At(m.Cursor))
	return m
}
