// Package review is a terminal viewer for the review and error logs a run
// leaves behind.
package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

// Log is one named log shown in its own tab.
type Log struct {
	Title string
	Lines []string
}

// Model is the bubbletea model of the viewer.
type Model struct {
	logs     []Log
	active   int
	viewport viewport.Model
	quitting bool
	width    int
	height   int
}

// New creates a viewer over logs.
func New(logs ...Log) Model {
	m := Model{
		logs:     logs,
		viewport: viewport.New(80, 21),
		width:    80,
		height:   24,
	}
	m.setContent()
	return m
}

// Active returns the index of the log being shown.
func (m Model) Active() int { return m.active }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab", "right":
			m.switchTo(m.active + 1)
			return m, nil

		case "shift+tab", "left":
			m.switchTo(m.active - 1)
			return m, nil

		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve 3 lines: tabs, status and controls
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-3, 1)
		m.setContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) switchTo(i int) {
	if len(m.logs) == 0 {
		return
	}
	m.active = (i + len(m.logs)) % len(m.logs)
	m.setContent()
	m.viewport.GotoTop()
}

func (m *Model) setContent() {
	if len(m.logs) == 0 {
		m.viewport.SetContent("")
		return
	}
	lines := m.logs[m.active].Lines
	if len(lines) == 0 {
		m.viewport.SetContent(emptyStyle.Render("Nothing to review."))
		return
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.logs) == 0 {
		return "No logs to show."
	}

	tabs := make([]string, len(m.logs))
	for i, l := range m.logs {
		title := fmt.Sprintf("%s (%d)", l.Title, len(l.Lines))
		if i == m.active {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = tabStyle.Render(title)
		}
	}

	status := statusStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	controls := controlsStyle.Render("TAB: switch log  ↑/↓ PGUP/PGDN: scroll  G: top  Q: quit")

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(status)
	sb.WriteString("\n")
	sb.WriteString(controls)
	return sb.String()
}
