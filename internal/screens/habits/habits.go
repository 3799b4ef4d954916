package habits

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/habits"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/layout"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

// snapshotMsg carries a refreshed habit snapshot. Every mutation routes
// through one of these, so the list and heatmap never drift apart.
type snapshotMsg struct {
	seq  int
	snap *habits.Snapshot
	err  error
}

// Editor modes.
const (
	modeList = iota
	modeCreate
	modeEdit
	modeConfirmDelete
)

// HabitsScreen is the habit tracker: the habit list, today's toggles,
// and the yearly activity grid.
type HabitsScreen struct {
	service *habits.Service

	snap    *habits.Snapshot
	cursor  int
	mode    int
	busy    bool
	loading bool
	errMsg  string

	nameInput components.TextInput
	freqIdx   int
	editID    int

	seq int
}

var _ screen.Screen = (*HabitsScreen)(nil)
var _ screen.KeyHintProvider = (*HabitsScreen)(nil)

// New creates the habit tracker screen.
func New(client *api.Client) *HabitsScreen {
	return &HabitsScreen{
		service:   habits.NewService(client),
		nameInput: components.NewTextInput("Habit name", "e.g. Read 20 minutes", false, 80),
	}
}

func (s *HabitsScreen) Init() tea.Cmd {
	s.loading = true
	return s.refresh()
}

func (s *HabitsScreen) Title() string {
	return "Habit Tracker"
}

func (s *HabitsScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeCreate, modeEdit:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "←→", Description: "Frequency"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle today"},
			{Key: "N", Description: "New"},
			{Key: "E", Description: "Edit"},
			{Key: "D", Description: "Delete"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *HabitsScreen) refresh() tea.Cmd {
	s.seq++
	seq := s.seq
	svc := s.service
	return func() tea.Msg {
		snap, err := svc.Refresh(context.Background())
		return snapshotMsg{seq: seq, snap: snap, err: err}
	}
}

// mutate runs one service mutation and delivers the refreshed snapshot
// it returns.
func (s *HabitsScreen) mutate(op func(context.Context) (*habits.Snapshot, error)) tea.Cmd {
	s.busy = true
	s.seq++
	seq := s.seq
	return func() tea.Msg {
		snap, err := op(context.Background())
		return snapshotMsg{seq: seq, snap: snap, err: err}
	}
}

func (s *HabitsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.busy = false
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.snap = msg.snap
		if s.cursor >= len(s.snap.Habits) {
			s.cursor = len(s.snap.Habits) - 1
		}
		if s.cursor < 0 {
			s.cursor = 0
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeCreate || s.mode == modeEdit {
		var cmd tea.Cmd
		s.nameInput, cmd = s.nameInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HabitsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	key := msg.String()

	switch s.mode {
	case modeCreate, modeEdit:
		return s.handleEditorKey(msg)
	case modeConfirmDelete:
		switch key {
		case "y", "Y":
			s.mode = modeList
			id := s.editID
			return s, s.mutate(func(ctx context.Context) (*habits.Snapshot, error) {
				return s.service.Delete(ctx, id)
			})
		case "n", "N", "esc":
			s.mode = modeList
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.snap != nil && s.cursor < len(s.snap.Habits)-1 {
			s.cursor++
		}
	case " ", "enter":
		if h := s.selected(); h != nil {
			id := h.ID
			return s, s.mutate(func(ctx context.Context) (*habits.Snapshot, error) {
				return s.service.Toggle(ctx, id)
			})
		}
	case "n":
		s.mode = modeCreate
		s.freqIdx = 0
		s.nameInput.Reset()
		return s, s.nameInput.Focus()
	case "e":
		if h := s.selected(); h != nil {
			s.mode = modeEdit
			s.editID = h.ID
			s.freqIdx = indexOfFrequency(h.Frequency)
			s.nameInput.SetValue(h.Name)
			return s, s.nameInput.Focus()
		}
	case "d":
		if h := s.selected(); h != nil {
			s.mode = modeConfirmDelete
			s.editID = h.ID
		}
	case "r":
		s.loading = true
		return s, s.refresh()
	}
	return s, nil
}

func (s *HabitsScreen) handleEditorKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeList
		s.nameInput.Blur()
		return s, nil
	case "left":
		s.freqIdx = (s.freqIdx + len(habits.Frequencies) - 1) % len(habits.Frequencies)
		return s, nil
	case "right":
		s.freqIdx = (s.freqIdx + 1) % len(habits.Frequencies)
		return s, nil
	case "enter":
		name := s.nameInput.Value()
		if name == "" {
			return s, nil
		}
		freq := habits.Frequencies[s.freqIdx]
		editing := s.mode == modeEdit
		id := s.editID
		s.mode = modeList
		s.nameInput.Blur()
		return s, s.mutate(func(ctx context.Context) (*habits.Snapshot, error) {
			if editing {
				return s.service.Update(ctx, id, name, freq)
			}
			return s.service.Create(ctx, name, freq)
		})
	}

	var cmd tea.Cmd
	s.nameInput, cmd = s.nameInput.Update(msg)
	return s, cmd
}

func (s *HabitsScreen) selected() *api.Habit {
	if s.snap == nil || s.cursor < 0 || s.cursor >= len(s.snap.Habits) {
		return nil
	}
	return &s.snap.Habits[s.cursor]
}

func indexOfFrequency(f string) int {
	for i, v := range habits.Frequencies {
		if v == f {
			return i
		}
	}
	return 0
}

func (s *HabitsScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading habits..."))
	}

	switch s.mode {
	case modeCreate, modeEdit:
		return s.renderEditor(width, height)
	case modeConfirmDelete:
		return s.renderConfirmDelete(width, height)
	}
	return s.renderList(width, height)
}

func (s *HabitsScreen) renderEditor(width, height int) string {
	title := "New habit"
	if s.mode == modeEdit {
		title = "Edit habit"
	}

	freq := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Frequency: ") +
		theme.Selected.Render("‹ "+habits.Frequencies[s.freqIdx]+" ›")

	card := theme.Card.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left,
		s.nameInput.View(),
		"",
		freq,
	))
	content := lipgloss.JoinVertical(lipgloss.Center, theme.Title.Render(title), "", card)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *HabitsScreen) renderConfirmDelete(width, height int) string {
	name := ""
	if h := s.selected(); h != nil {
		name = h.Name
	}
	card := theme.Card.Render(
		theme.Title.Render("Delete habit?") + "\n\n" +
			theme.Body.Render(fmt.Sprintf("%q and all its logs will be removed.", name)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *HabitsScreen) renderList(width, height int) string {
	var rows []string
	if s.snap == nil || len(s.snap.Habits) == 0 {
		rows = append(rows, theme.Hint.Render("No habits yet. Press N to add your first one."))
	}
	if s.snap != nil {
		for i, h := range s.snap.Habits {
			check := "☐"
			style := theme.Unselected
			if h.DoneToday {
				check = "☑"
				style = theme.Correct
			}
			line := fmt.Sprintf("%s %-28s %-7s 🔥 %d", check, h.Name, h.Frequency, h.Streak)
			if i == s.cursor {
				line = "▸ " + line
				style = style.Bold(true)
			} else {
				line = "  " + line
			}
			rows = append(rows, style.Render(line))
		}
	}

	listCard := theme.Card.Width(54).Render(strings.Join(rows, "\n"))

	var gridView string
	if s.snap != nil {
		cells := habits.Grid(s.snap.Heatmap, time.Now(), habits.GridDays)
		heatCells := make([]components.HeatCell, len(cells))
		for i, c := range cells {
			heatCells[i] = components.HeatCell{Date: c.Date, Level: habits.Level(c.Count)}
		}
		grid := components.NewHeatmap(heatCells)
		gridView = theme.Card.Render(
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Last 12 months") + "\n\n" +
				grid.View(width-12),
		)
	}

	var status string
	switch {
	case s.busy:
		status = theme.Hint.Render("Saving...")
	case s.errMsg != "":
		status = theme.ErrorBanner.Render(s.errMsg)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		listCard,
		"",
		gridView,
		"",
		status,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
