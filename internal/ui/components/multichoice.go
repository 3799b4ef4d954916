package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

// Option is one keyed choice (e.g. key "A", text "An interpreter").
type Option struct {
	Key  string
	Text string
}

// MultiChoice is a keyed multiple-choice selector. Selection is a cursor
// plus a chosen key; choosing does not submit, the owning screen decides
// when to advance.
type MultiChoice struct {
	Options []Option
	Cursor  int
	Chosen  string // chosen option key, "" when nothing picked yet
}

// NewMultiChoice creates a selector over the given options.
func NewMultiChoice(options []Option) MultiChoice {
	return MultiChoice{Options: options}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement, picking by letter, and enter-to-choose.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", " ":
		if m.Cursor >= 0 && m.Cursor < len(m.Options) {
			m.Chosen = m.Options[m.Cursor].Key
		}
	default:
		// Direct pick by option letter.
		for i, opt := range m.Options {
			if strings.EqualFold(key, opt.Key) {
				m.Cursor = i
				m.Chosen = opt.Key
				break
			}
		}
	}

	return m, nil
}

// View renders the options with the cursor and chosen highlight.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}

		marker := "( )"
		if opt.Key == m.Chosen {
			marker = "(●)"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, opt.Key, opt.Text)

		switch {
		case opt.Key == m.Chosen:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		case i == m.Cursor:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Value returns the chosen option key, "" when none.
func (m MultiChoice) Value() string {
	return m.Chosen
}
