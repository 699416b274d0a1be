package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"provcheck/internal/driver"
)

const statusWidth = 12

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

type progressModel struct {
	title   string
	events  <-chan driver.Event
	state   *tracker
	spinner spinner.Model
	bar     progress.Model
	width   int
	closed  bool
}

type (
	eventMsg  driver.Event
	closedMsg struct{}
)

// NewProgressModel renders check progress for files as driver events
// arrive. The program quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))
	return &progressModel{
		title:   title,
		events:  events,
		state:   newTracker(files),
		spinner: sp,
		bar:     bar,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next)
}

// next blocks for the following driver event.
func (m *progressModel) next() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return closedMsg{}
	}
	return eventMsg(ev)
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		if m.state.apply(driver.Event(msg)) {
			cmd = m.bar.SetPercent(m.state.fraction())
		}
		return m, tea.Batch(cmd, m.next)
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width, m.bar.Width = msg.Width, msg.Width-4
		}
	case spinner.TickMsg:
		if !m.closed {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) View() string {
	if len(m.state.rows) == 0 {
		return ""
	}
	prefix := m.spinner.View() + " "
	if m.closed {
		prefix = "done: "
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(prefix + m.state.summary(m.title)))
	b.WriteString("\n\n")
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, i := range m.state.recent {
		r := m.state.rows[i]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(phases[r.phase].color))
		fmt.Fprintf(&b, "  %s %s\n", style.Render(fmt.Sprintf("%*s", statusWidth, r.phase)), truncate(r.path, nameWidth))
	}
	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// truncate shortens value to width display cells, with an ellipsis when
// there is room for one.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
