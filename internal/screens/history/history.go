// Package history renders the locally recorded sprint log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/history"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/ui/layout"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

const listLimit = 50

type entriesMsg struct {
	seq     int
	entries []history.Entry
	err     error
}

// HistoryScreen lists past sprints recorded on this machine, newest
// first.
type HistoryScreen struct {
	store *history.Store

	entries []history.Entry
	loaded  bool
	errMsg  string
	seq     int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(store *history.Store) *HistoryScreen {
	return &HistoryScreen{store: store}
}

func (s *HistoryScreen) Init() tea.Cmd {
	s.seq++
	seq := s.seq
	store := s.store
	return func() tea.Msg {
		entries, err := store.Recent(context.Background(), listLimit)
		return entriesMsg{seq: seq, entries: entries, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.entries = msg.entries
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorBanner.Render(s.errMsg))
	}
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading history..."))
	}
	if len(s.entries) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No sprints recorded yet. Finish one and it will show up here."))
	}

	var rows []string
	for _, e := range s.entries {
		scoreStyle := theme.Correct
		if e.ScoreTotal > 0 && e.ScoreCorrect*2 < e.ScoreTotal {
			scoreStyle = theme.Incorrect
		}
		topic := e.Topic
		if topic == "" {
			topic = "general"
		}
		timed := ""
		if e.Timed {
			timed = " ⏱"
		}
		rows = append(rows, fmt.Sprintf("%s  %-14s %-20s %-12s %s%s",
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(e.FinishedAt.Local().Format("Jan 02 15:04")),
			e.Skill,
			topic,
			e.Difficulty,
			scoreStyle.Render(fmt.Sprintf("%d/%d", e.ScoreCorrect, e.ScoreTotal)),
			timed,
		))
	}

	card := theme.Card.Width(76).Render(strings.Join(rows, "\n"))
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Recent sprints"),
		"",
		card,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
