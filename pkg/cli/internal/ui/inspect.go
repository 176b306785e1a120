package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is one tab of an inspected entry
type View struct {
	Title string
	Body  string
}

// Entry is one inspectable item, such as a compiled component
type Entry struct {
	Name  string
	Note  string
	Views []View
}

// KeyMap defines the inspector keyboard shortcuts
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Tab    key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
	Help   key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// Inspector browses entries and their views
type Inspector struct {
	title    string
	entries  []Entry
	visible  []int
	cursor   int
	tab      int
	filter   textinput.Model
	filterOn bool
	showHelp bool
	width    int
	height   int
	quitting bool
}

// NewInspector creates an inspector over entries
func NewInspector(title string, entries []Entry) Inspector {
	ti := textinput.New()
	ti.Placeholder = "filter components"
	ti.CharLimit = 64
	ti.Width = 24

	m := Inspector{title: title, entries: entries, filter: ti}
	m.applyFilter()
	return m
}

// Init initializes the model
func (m Inspector) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filterOn {
			switch {
			case msg.Type == tea.KeyEnter:
				m.filterOn = false
				m.filter.Blur()
				return m, nil
			case key.Matches(msg, DefaultKeyMap.Back):
				m.filterOn = false
				m.filter.Blur()
				m.filter.SetValue("")
				m.applyFilter()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, DefaultKeyMap.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Tab):
			if e, ok := m.Selected(); ok && len(e.Views) > 0 {
				m.tab = (m.tab + 1) % len(e.Views)
			}
		case key.Matches(msg, DefaultKeyMap.Filter):
			m.filterOn = true
			return m, m.filter.Focus()
		case key.Matches(msg, DefaultKeyMap.Back):
			m.filter.SetValue("")
			m.applyFilter()
		}
	}
	return m, nil
}

func (m *Inspector) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = make([]int, 0, len(m.entries))
	for i, e := range m.entries {
		if q == "" || strings.Contains(strings.ToLower(e.Name), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the entry under the cursor
func (m Inspector) Selected() (Entry, bool) {
	if len(m.visible) == 0 {
		return Entry{}, false
	}
	return m.entries[m.visible[m.cursor]], true
}

// View renders the inspector
func (m Inspector) View() string {
	if m.quitting {
		return ""
	}

	var list strings.Builder
	if m.filterOn || m.filter.Value() != "" {
		list.WriteString(m.filter.View())
		list.WriteString("\n\n")
	}
	for i, idx := range m.visible {
		e := m.entries[idx]
		line := "  " + e.Name
		if i == m.cursor {
			line = selectedStyle.Render("▸ " + e.Name)
		}
		if e.Note != "" {
			line += " " + mutedStyle.Render(e.Note)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}
	if len(m.visible) == 0 {
		list.WriteString(mutedStyle.Render("no matches"))
	}

	var detail string
	if e, ok := m.Selected(); ok && len(e.Views) > 0 {
		tab := m.tab % len(e.Views)
		var tabs []string
		for i, v := range e.Views {
			if i == tab {
				tabs = append(tabs, activeTabStyle.Render(v.Title))
			} else {
				tabs = append(tabs, tabStyle.Render(v.Title))
			}
		}
		body := e.Views[tab].Body
		if body == "" {
			body = mutedStyle.Render("(empty)")
		}
		detail = lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n" + m.clip(body)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(strings.TrimRight(list.String(), "\n")),
		" ",
		boxStyle.Render(detail),
	)

	help := "↑/↓ select • tab view • / filter • q quit"
	if m.showHelp {
		help = "↑/k up • ↓/j down • tab next view • / filter • esc clear filter • ? help • q quit"
	}
	return titleStyle.Render(m.title) + "\n" + panes + "\n" + helpStyle.Render(help)
}

// clip trims body to the window height
func (m Inspector) clip(body string) string {
	if m.height <= 10 {
		return body
	}
	lines := strings.Split(body, "\n")
	limit := m.height - 10
	if len(lines) <= limit {
		return body
	}
	return strings.Join(lines[:limit], "\n") + "\n" + mutedStyle.Render("…")
}
