package sprint

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/skills"
	spr "github.com/skillsprint/skillsprint/internal/sprint"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

func (s *SprintScreen) View(width, height int) string {
	if s.confirmQuit {
		return s.renderConfirmQuit(width, height)
	}
	if s.addingSkill {
		return s.renderAddSkill(width, height)
	}

	switch s.st.Phase {
	case spr.PhaseLoading:
		return s.renderLoading(width, height)
	case spr.PhaseQuiz:
		return s.renderQuiz(width, height)
	case spr.PhaseResults:
		return s.renderResults(width, height)
	default:
		return s.renderSelect(width, height)
	}
}

func (s *SprintScreen) renderConfirmQuit(width, height int) string {
	card := theme.Card.Render(
		theme.Title.Render("Abandon sprint?") + "\n\n" +
			theme.Body.Render("Your answers so far will be lost."),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *SprintScreen) renderAddSkill(width, height int) string {
	card := theme.Card.Width(48).Render(s.input.View())
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Add a skill"),
		"",
		card,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SprintScreen) renderLoading(width, height int) string {
	subtitle := fmt.Sprintf("%s · %s · %d questions",
		s.st.TopicQuery(), s.st.Difficulty, s.st.QuestionCount)
	if s.st.Daily {
		subtitle = "Fetching today's set for your learning goal"
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Generating questions..."),
		"",
		theme.Subtitle.Render(subtitle),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SprintScreen) renderSelect(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderSkillList())
	b.WriteString("\n")
	b.WriteString(s.renderField(sectionDifficulty, "Difficulty", s.st.Difficulty))
	b.WriteString("\n")

	topic := s.st.Topic
	if topic == "" {
		topic = "(general)"
	}
	b.WriteString(s.renderField(sectionTopic, "Topic", topic))
	b.WriteString("\n")
	b.WriteString(s.renderField(sectionCount, "Questions", fmt.Sprintf("%d", s.st.QuestionCount)))
	b.WriteString("\n")

	timed := "off"
	if s.st.TimedMode {
		timed = fmt.Sprintf("on · %ds per question", spr.QuestionSeconds)
	}
	b.WriteString(s.renderField(sectionTimed, "Timed mode", timed))
	b.WriteString("\n\n")

	start := theme.ButtonInactive.Render("Start Sprint")
	if s.section == sectionStart {
		start = theme.ButtonActive.Render("Start Sprint")
	}
	b.WriteString(start)

	if s.st.ErrMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorBanner.Render(s.st.ErrMsg))
	}

	card := theme.Card.Width(60).Render(b.String())
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Set up your sprint"),
		"",
		card,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SprintScreen) renderSkillList() string {
	label := "Skill"
	if s.section == sectionSkill {
		label = "▸ " + label
	} else {
		label = "  " + label
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
	b.WriteString("\n")

	if s.loadingSkills {
		b.WriteString(theme.Hint.Render("  Loading skills..."))
		return b.String()
	}
	if len(s.refs) == 0 {
		b.WriteString(theme.Hint.Render("  No skills yet. Press A to add one."))
		return b.String()
	}

	for i, ref := range s.refs {
		name := ref.Name
		if ref.Kind == skills.Draft {
			name += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  (suggested)")
		}
		switch {
		case i == s.skillIdx:
			b.WriteString(theme.Selected.Render("  ● " + name))
		default:
			b.WriteString(theme.Unselected.Render("  ○ " + name))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderField draws one left/right selector row with a focus marker.
func (s *SprintScreen) renderField(section int, label, value string) string {
	marker := "  "
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if s.section == section {
		marker = "▸ "
		valueStyle = valueStyle.Foreground(theme.Primary).Bold(true)
	}
	return marker +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label+": ") +
		valueStyle.Render("‹ "+value+" ›")
}

func (s *SprintScreen) renderQuiz(width, height int) string {
	q := s.st.Current()
	if q == nil {
		return ""
	}

	counter := theme.Subtitle.Render(
		fmt.Sprintf("Question %d of %d", s.st.Index+1, len(s.st.Questions)))

	var timer string
	if s.st.TimedMode {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.st.TimeLeft <= 10 {
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		timer = style.Render(fmt.Sprintf("⏱ %ds", s.st.TimeLeft))
	}

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(64).
		Render(q.QuestionText)

	var status string
	switch {
	case s.st.Submitting:
		status = theme.Hint.Render("Submitting answers...")
	case s.st.ErrMsg != "":
		status = theme.ErrorBanner.Render(s.st.ErrMsg + "  (press Enter to retry)")
	}

	progress := components.NewProgressBar("", float64(s.st.Index)/float64(len(s.st.Questions)), false, 64)

	card := theme.Card.Width(70).Render(lipgloss.JoinVertical(lipgloss.Left,
		question,
		"",
		s.choice.View(),
		status,
	))

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, counter, "   ", timer),
		"",
		card,
		"",
		progress.View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SprintScreen) renderResults(width, height int) string {
	res := s.st.Results
	if res == nil {
		return ""
	}

	correct, total := spr.ParseScore(res.Score)
	scoreStyle := theme.Correct
	if total > 0 && correct*2 < total {
		scoreStyle = theme.Incorrect
	}
	score := scoreStyle.Render(fmt.Sprintf("%d / %d", correct, total))

	streak := theme.Subtitle.Render(fmt.Sprintf("🔥 %d day streak", res.CurrentStreak))
	if res.StreakMaintained {
		streak = theme.Subtitle.Render(fmt.Sprintf("🔥 %d day streak maintained!", res.CurrentStreak))
	}

	var rows []string
	for i, r := range res.Results {
		mark := theme.Correct.Render("✓")
		if !r.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("%s Q%d · correct: %s", mark, i+1, r.CorrectOption)
		rows = append(rows, line)
		if !r.IsCorrect && r.Explanation != "" {
			rows = append(rows, theme.Hint.Width(60).Render("   "+r.Explanation))
		}
	}

	card := theme.Card.Width(66).Render(strings.Join(rows, "\n"))
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Sprint complete"),
		score,
		streak,
		"",
		card,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
