// Package chat renders the assistant transcript and its message input.
package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/harmony/internal/models"
)

// SendMsg is emitted when the user submits a non-blank message.
type SendMsg struct {
	Text string
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	modelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	stampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	history  []models.ChatMessage
	typing   bool
	width    int
}

func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask the assistant to plan something..."
	ti.CharLimit = 500
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		input:    ti,
		viewport: viewport.New(width, height),
		spinner:  sp,
	}
	m.SetSize(width, height)
	return m
}

func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

func (m Model) Focused() bool {
	return m.input.Focused()
}

// SetHistory re-renders the transcript when its length changed and scrolls
// to the newest entry.
func (m *Model) SetHistory(history []models.ChatMessage) {
	if len(history) == len(m.history) {
		return
	}
	m.history = history
	m.render()
}

// SetTyping toggles the typing indicator. The returned command starts the
// spinner when typing begins.
func (m *Model) SetTyping(typing bool) tea.Cmd {
	was := m.typing
	m.typing = typing
	m.render()
	if typing && !was {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Typing() bool {
	return m.typing
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.input.Width = max(width-4, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.render()
}

func (m *Model) render() {
	var b strings.Builder
	if len(m.history) == 0 {
		b.WriteString(typingStyle.Render("No messages yet."))
	}
	for i, msg := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		who := userStyle.Render("you")
		if msg.Role == models.RoleModel {
			who = modelStyle.Render("assistant")
		}
		stamp := time.UnixMilli(msg.Timestamp).Format("15:04")
		b.WriteString(who + " " + stampStyle.Render(stamp) + "\n")
		b.WriteString(lipgloss.NewStyle().Width(max(m.width-2, 10)).Render(msg.Text))
	}
	if m.typing {
		b.WriteString("\n\n" + typingStyle.Render("assistant is typing..."))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.typing {
				return m, nil
			}
			m.input.Reset()
			return m, func() tea.Msg { return SendMsg{Text: text} }
		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	status := ""
	if m.typing {
		status = m.spinner.View() + " "
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		status+m.input.View(),
	)
}
