package analytics

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/dashboard"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/layout"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

type summaryMsg struct {
	seq     int
	summary *api.AnalyticsSummary
	err     error
}

// AnalyticsScreen shows the 30-day breakdown the backend precomputes.
type AnalyticsScreen struct {
	client *api.Client

	summary *api.AnalyticsSummary
	errMsg  string
	seq     int
}

var _ screen.Screen = (*AnalyticsScreen)(nil)
var _ screen.KeyHintProvider = (*AnalyticsScreen)(nil)

// New creates the analytics screen.
func New(client *api.Client) *AnalyticsScreen {
	return &AnalyticsScreen{client: client}
}

func (s *AnalyticsScreen) Init() tea.Cmd {
	s.seq++
	seq := s.seq
	client := s.client
	return func() tea.Msg {
		summary, err := client.AnalyticsSummary(context.Background())
		return summaryMsg{seq: seq, summary: summary, err: err}
	}
}

func (s *AnalyticsScreen) Title() string {
	return "Analytics"
}

func (s *AnalyticsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AnalyticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.summary = msg.summary
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			s.summary = nil
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *AnalyticsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorBanner.Render(s.errMsg))
	}
	if s.summary == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Crunching numbers..."))
	}

	sum := s.summary

	totals := theme.Card.Width(32).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Last 30 days"),
		"",
		theme.Body.Render(fmt.Sprintf("Attempted    %d", sum.TotalAttempted)),
		theme.Body.Render(fmt.Sprintf("Correct      %d", sum.TotalCorrect)),
		theme.Body.Render(fmt.Sprintf("Accuracy     %.1f%%", sum.Accuracy)),
		theme.Body.Render(fmt.Sprintf("Active days  %d", sum.ActiveDays)),
		theme.Body.Render(fmt.Sprintf("Streak       %d (best %d)", sum.CurrentStreak, sum.LongestStreak)),
	))

	gauge := components.NewGauge(
		"Productivity score",
		dashboard.GaugeAngle(sum.ProductivityScore, 100),
		fmt.Sprintf("%.0f", sum.ProductivityScore),
		26,
	)
	productivity := theme.Card.Width(34).Render(gauge.View())

	weekly := theme.Card.Width(44).Render(s.renderWeekly(sum.Weekly))
	trend := theme.Card.Width(70).Render(s.renderTrend(sum.DailyTrend))

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, totals, " ", productivity),
		"",
		weekly,
		"",
		trend,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *AnalyticsScreen) renderWeekly(weekly []api.WeekStat) string {
	var rows []string
	rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Render("Weekly breakdown"))
	rows = append(rows, "")
	for _, w := range weekly {
		bar := components.NewProgressBar(fmt.Sprintf("%-8s", w.Week), w.Accuracy/100, true, 36)
		rows = append(rows, bar.View())
	}
	if len(weekly) == 0 {
		rows = append(rows, theme.Hint.Render("No activity yet."))
	}
	return strings.Join(rows, "\n")
}

// renderTrend draws the daily trend as a compact sparkline of attempts.
func (s *AnalyticsScreen) renderTrend(trend []api.DayTrend) string {
	max := 1
	for _, d := range trend {
		if d.Attempted > max {
			max = d.Attempted
		}
	}

	glyphs := []rune("▁▂▃▄▅▆▇█")
	var spark strings.Builder
	for _, d := range trend {
		if d.Attempted == 0 {
			spark.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("▁"))
			continue
		}
		idx := d.Attempted * (len(glyphs) - 1) / max
		spark.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(string(glyphs[idx])))
	}

	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Daily attempts") +
		"\n\n" + spark.String()
}
