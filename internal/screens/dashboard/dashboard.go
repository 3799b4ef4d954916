package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/dashboard"
	"github.com/skillsprint/skillsprint/internal/habits"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/layout"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

type overviewMsg struct {
	seq      int
	overview *dashboard.Overview
	err      error
}

// DashboardScreen shows the precomputed stats the backend serves:
// streaks, accuracy, the weekly series, and the practice heatmap.
type DashboardScreen struct {
	client *api.Client

	overview *dashboard.Overview
	errMsg   string
	seq      int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard screen.
func New(client *api.Client) *DashboardScreen {
	return &DashboardScreen{client: client}
}

func (s *DashboardScreen) Init() tea.Cmd {
	s.seq++
	seq := s.seq
	client := s.client
	return func() tea.Msg {
		ov, err := dashboard.Load(context.Background(), client)
		return overviewMsg{seq: seq, overview: ov, err: err}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.overview = msg.overview
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			s.overview = nil
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorBanner.Render(s.errMsg))
	}
	if s.overview == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading dashboard..."))
	}

	stats := s.overview.Stats

	streaks := theme.Card.Width(30).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Streaks"),
		"",
		theme.Body.Render(fmt.Sprintf("🔥 Current   %d days", stats.CurrentStreak)),
		theme.Body.Render(fmt.Sprintf("🏆 Longest   %d days", stats.LongestStreak)),
	))

	gauge := components.NewGauge(
		"Accuracy",
		dashboard.GaugeAngle(stats.Accuracy, 100),
		fmt.Sprintf("%.0f%%", stats.Accuracy),
		24,
	)
	accuracy := theme.Card.Width(30).Render(gauge.View())

	weekly := theme.Card.Width(40).Render(s.renderWeekly(stats.Weekly))

	cells := habits.Grid(stats.Heatmap, time.Now(), habits.GridDays)
	heatCells := make([]components.HeatCell, len(cells))
	for i, c := range cells {
		heatCells[i] = components.HeatCell{Date: c.Date, Level: habits.Level(c.Count)}
	}
	grid := components.NewHeatmap(heatCells)
	practice := theme.Card.Render(
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Practice activity") + "\n\n" +
			grid.View(width-12),
	)

	var goals string
	if len(s.overview.Goals) > 0 {
		g := s.overview.Goals[0]
		goals = theme.Subtitle.Render(fmt.Sprintf("Daily goal: %d %s questions on %s",
			g.DailyQuestionCount, g.Difficulty, g.Topic))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, streaks, " ", accuracy, " ", weekly),
		"",
		practice,
		"",
		goals,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderWeekly draws the seven-day attempted/correct series as bars.
func (s *DashboardScreen) renderWeekly(weekly []api.WeekdayStat) string {
	max := 1
	for _, d := range weekly {
		if d.Attempted > max {
			max = d.Attempted
		}
	}

	var rows []string
	rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Render("This week"))
	rows = append(rows, "")
	for _, d := range weekly {
		barLen := d.Attempted * 20 / max
		correctLen := 0
		if d.Attempted > 0 {
			correctLen = d.Correct * barLen / d.Attempted
		}
		bar := lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat("█", correctLen)) +
			lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("█", barLen-correctLen))
		rows = append(rows, fmt.Sprintf("%-4s %s %d/%d", d.Day, bar, d.Correct, d.Attempted))
	}
	return strings.Join(rows, "\n")
}
