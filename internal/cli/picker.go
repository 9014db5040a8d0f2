package cli

import (
	"fmt"
	"strings"

	"onetexplorer/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pickerCursorStyle   = lipgloss.NewStyle().Foreground(colors.Primary).Bold(true)
	pickerSelectedStyle = lipgloss.NewStyle().Foreground(colors.Primary)
)

const pickerPageSize = 15

// pickerModel is a minimal list for choosing one search result.
type pickerModel struct {
	refs     []domain.OccupationRef
	cursor   int
	offset   int
	chosen   int
	quitting bool
}

func newPickerModel(refs []domain.OccupationRef) pickerModel {
	return pickerModel{refs: refs, chosen: -1}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.refs)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.refs) > 0 {
			m.chosen = m.cursor
		}
		return m, tea.Quit
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+pickerPageSize {
		m.offset = m.cursor - pickerPageSize + 1
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting || m.chosen >= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select an occupation") + "\n\n")
	end := m.offset + pickerPageSize
	if end > len(m.refs) {
		end = len(m.refs)
	}
	for i := m.offset; i < end; i++ {
		r := m.refs[i]
		line := fmt.Sprintf("%s  %s", r.Code, r.Title)
		if i == m.cursor {
			b.WriteString(pickerCursorStyle.Render("> ") + pickerSelectedStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("%d/%d  ↑/↓ move · enter select · q quit", m.cursor+1, len(m.refs))))
	return b.String()
}

// Selected returns the chosen occupation, if any.
func (m pickerModel) Selected() (domain.OccupationRef, bool) {
	if m.chosen < 0 || m.chosen >= len(m.refs) {
		return domain.OccupationRef{}, false
	}
	return m.refs[m.chosen], true
}

// pickOccupation runs the picker on the terminal. Tests replace it.
var pickOccupation = func(refs []domain.OccupationRef) (domain.OccupationRef, bool, error) {
	final, err := tea.NewProgram(newPickerModel(refs)).Run()
	if err != nil {
		return domain.OccupationRef{}, false, err
	}
	ref, ok := final.(pickerModel).Selected()
	return ref, ok, nil
}
