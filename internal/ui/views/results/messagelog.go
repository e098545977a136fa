package results

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"

	"github.com/siftdb/sift/internal/query"
	"github.com/siftdb/sift/internal/ui/styles"
)

// MessagesPanel shows execution notices and errors for the bound
// runner, newest last, wordwrapped to the panel width.
type MessagesPanel struct {
	width  int
	height int

	entries []query.Message
	runner  *query.Runner
	st      *MessagesState

	onChange func()
}

// NewMessagesPanel creates an empty messages panel.
func NewMessagesPanel() *MessagesPanel {
	return &MessagesPanel{}
}

// ID implements components.Panel.
func (m *MessagesPanel) ID() string { return MessagesPanelID }

// OnChange registers the change notification callback.
func (m *MessagesPanel) OnChange(fn func()) { m.onChange = fn }

// Append adds a message to the log.
func (m *MessagesPanel) Append(msg query.Message) {
	m.entries = append(m.entries, msg)
	m.notify()
}

// Clear drops all messages without destroying the panel.
func (m *MessagesPanel) Clear() {
	m.entries = nil
	if m.st != nil {
		m.st.Scroll = 0
	}
	m.notify()
}

// SetRunner rebinds the panel to a new query runner and reloads its
// accumulated messages.
func (m *MessagesPanel) SetRunner(r *query.Runner) {
	m.runner = r
	if r != nil {
		m.entries = r.Messages()
	} else {
		m.entries = nil
	}
	m.notify()
}

// SetState attaches the nested messages state.
func (m *MessagesPanel) SetState(st *MessagesState) { m.st = st }

// State returns the attached nested state.
func (m *MessagesPanel) State() *MessagesState { return m.st }

// Count returns the number of logged messages.
func (m *MessagesPanel) Count() int { return len(m.entries) }

// SetSize implements components.Panel.
func (m *MessagesPanel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Width returns the panel's current width.
func (m *MessagesPanel) Width() int { return m.width }

// Height returns the panel's current height.
func (m *MessagesPanel) Height() int { return m.height }

// ScrollBy moves the scroll offset by delta lines.
func (m *MessagesPanel) ScrollBy(delta int) {
	if m.st == nil {
		return
	}
	m.st.Scroll += delta
	if m.st.Scroll < 0 {
		m.st.Scroll = 0
	}
}

// View renders the message log.
func (m *MessagesPanel) View() string {
	if m.height <= 0 {
		return ""
	}
	if len(m.entries) == 0 {
		return styles.InfoStyle.Render("Messages")
	}

	var lines []string
	for _, e := range m.entries {
		text := e.Time.Format("15:04:05") + "  " + e.Text
		if m.width > 10 {
			text = wordwrap.WrapString(text, uint(m.width))
		}
		for _, l := range strings.Split(text, "\n") {
			if e.IsError {
				l = styles.ErrorStyle.Render(l)
			}
			lines = append(lines, l)
		}
	}

	// Show the tail that fits, honoring the scroll offset back from
	// the end.
	scroll := 0
	if m.st != nil {
		scroll = m.st.Scroll
	}
	end := len(lines) - scroll
	if end < 1 {
		end = 1
	}
	start := end - m.height
	if start < 0 {
		start = 0
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines[start:end]...)
}

func (m *MessagesPanel) notify() {
	if m.onChange != nil {
		m.onChange()
	}
}
