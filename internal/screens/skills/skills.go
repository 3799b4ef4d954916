package skills

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/skills"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/layout"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

// skillsMsg carries the reloaded skill list. Mutations reload in the
// same command so the list always reflects server state.
type skillsMsg struct {
	seq    int
	skills []api.Skill
	err    error
}

const (
	modeList = iota
	modeAddSkill
	modeAddTopic
	modeConfirmDelete
)

// SkillsScreen shows learning progress per skill: topic checklists and
// completion bars.
type SkillsScreen struct {
	client *api.Client

	list    []api.Skill
	cursor  int
	mode    int
	busy    bool
	loading bool
	errMsg  string

	input components.TextInput

	seq int
}

var _ screen.Screen = (*SkillsScreen)(nil)
var _ screen.KeyHintProvider = (*SkillsScreen)(nil)

// New creates the learning progress screen.
func New(client *api.Client) *SkillsScreen {
	return &SkillsScreen{
		client: client,
		input:  components.NewTextInput("Name", "", false, 80),
	}
}

func (s *SkillsScreen) Init() tea.Cmd {
	s.loading = true
	return s.reload()
}

func (s *SkillsScreen) Title() string {
	return "Learning Progress"
}

func (s *SkillsScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeAddSkill, modeAddTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	default:
		return []layout.KeyHint{
			{Key: "M", Description: "Mark next topic done"},
			{Key: "U", Description: "Unmark"},
			{Key: "N", Description: "New skill"},
			{Key: "T", Description: "Add topic"},
			{Key: "D", Description: "Delete"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *SkillsScreen) reload() tea.Cmd {
	s.seq++
	seq := s.seq
	client := s.client
	return func() tea.Msg {
		list, err := client.ListSkills(context.Background())
		return skillsMsg{seq: seq, skills: list, err: err}
	}
}

// mutateAndReload runs one mutation and reloads the list in the same
// command.
func (s *SkillsScreen) mutateAndReload(op func(context.Context) error) tea.Cmd {
	s.busy = true
	s.seq++
	seq := s.seq
	client := s.client
	return func() tea.Msg {
		ctx := context.Background()
		if err := op(ctx); err != nil {
			return skillsMsg{seq: seq, err: err}
		}
		list, err := client.ListSkills(ctx)
		return skillsMsg{seq: seq, skills: list, err: err}
	}
}

func (s *SkillsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case skillsMsg:
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
		s.list = msg.skills
		if s.cursor >= len(s.list) {
			s.cursor = len(s.list) - 1
		}
		if s.cursor < 0 {
			s.cursor = 0
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeAddSkill || s.mode == modeAddTopic {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SkillsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	key := msg.String()

	switch s.mode {
	case modeAddSkill, modeAddTopic:
		return s.handleInputKey(msg)
	case modeConfirmDelete:
		switch key {
		case "y", "Y":
			s.mode = modeList
			if sk := s.selected(); sk != nil {
				id := sk.ID
				return s, s.mutateAndReload(func(ctx context.Context) error {
					return s.client.DeleteSkill(ctx, id)
				})
			}
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
		if s.cursor < len(s.list)-1 {
			s.cursor++
		}
	case "n":
		s.mode = modeAddSkill
		s.input = components.NewTextInput("Skill name", "e.g. Kubernetes", false, 80)
		return s, s.input.Focus()
	case "t":
		if s.selected() != nil {
			s.mode = modeAddTopic
			s.input = components.NewTextInput("Topic name", "e.g. Pods & Deployments", false, 80)
			return s, s.input.Focus()
		}
	case "d":
		if s.selected() != nil {
			s.mode = modeConfirmDelete
		}
	case "m":
		return s.markTopic(1)
	case "u":
		return s.markTopic(-1)
	case "r":
		s.loading = true
		return s, s.reload()
	}
	return s, nil
}

// markTopic moves the positional topics-done counter by delta and writes
// the recomputed completion percentage back. The counter is re-read from
// the server first so a stale list row never clobbers progress made
// elsewhere.
func (s *SkillsScreen) markTopic(delta int) (screen.Screen, tea.Cmd) {
	sk := s.selected()
	if sk == nil || len(sk.Topics) == 0 {
		return s, nil
	}

	id := sk.ID
	return s, s.mutateAndReload(func(ctx context.Context) error {
		skill, progress, err := s.client.SkillProgress(ctx, id)
		if err != nil {
			return err
		}
		done := progress.TopicsDone + delta
		if done < 0 || done > len(skill.Topics) {
			return nil
		}
		pct := skills.CompletionPct(done, len(skill.Topics))
		_, err = s.client.UpdateSkillProgress(ctx, id, pct, done)
		return err
	})
}

func (s *SkillsScreen) handleInputKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeList
		s.input.Blur()
		return s, nil
	case "enter":
		name := s.input.Value()
		if name == "" {
			return s, nil
		}
		adding := s.mode
		s.mode = modeList
		s.input.Blur()
		if adding == modeAddSkill {
			return s, s.mutateAndReload(func(ctx context.Context) error {
				_, err := s.client.CreateSkill(ctx, name, "", nil)
				return err
			})
		}
		if sk := s.selected(); sk != nil {
			id := sk.ID
			return s, s.mutateAndReload(func(ctx context.Context) error {
				_, err := s.client.AddTopic(ctx, id, name, "")
				return err
			})
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SkillsScreen) selected() *api.Skill {
	if s.cursor < 0 || s.cursor >= len(s.list) {
		return nil
	}
	return &s.list[s.cursor]
}

func (s *SkillsScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading skills..."))
	}

	switch s.mode {
	case modeAddSkill, modeAddTopic:
		title := "New skill"
		if s.mode == modeAddTopic {
			if sk := s.selected(); sk != nil {
				title = "Add topic to " + sk.Name
			}
		}
		card := theme.Card.Width(50).Render(s.input.View())
		content := lipgloss.JoinVertical(lipgloss.Center, theme.Title.Render(title), "", card)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)

	case modeConfirmDelete:
		name := ""
		if sk := s.selected(); sk != nil {
			name = sk.Name
		}
		card := theme.Card.Render(
			theme.Title.Render("Delete skill?") + "\n\n" +
				theme.Body.Render(fmt.Sprintf("%q and its topics will be removed.", name)),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
	}

	return s.renderList(width, height)
}

func (s *SkillsScreen) renderList(width, height int) string {
	if len(s.list) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No skills yet. Press N to add one."))
	}

	var rows []string
	for i, sk := range s.list {
		bar := components.NewProgressBar(fmt.Sprintf("%-16s", sk.Name), sk.Progress.CompletionPct/100, true, 44)
		line := bar.View()
		if i == s.cursor {
			line = theme.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	listCard := theme.Card.Width(58).Render(strings.Join(rows, "\n"))

	var topicRows []string
	if sk := s.selected(); sk != nil {
		sorted := skills.SortedTopics(sk.Topics)
		if len(sorted) == 0 {
			topicRows = append(topicRows, theme.Hint.Render("No topics yet. Press T to add one."))
		}
		for i, t := range sorted {
			if skills.TopicDone(sk.Progress, i) {
				topicRows = append(topicRows, theme.Correct.Render("☑ "+t.Name))
			} else {
				topicRows = append(topicRows, theme.Unselected.Render("☐ "+t.Name))
			}
		}
	}
	topicCard := theme.Card.Width(40).Render(
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Topics") + "\n\n" +
			strings.Join(topicRows, "\n"),
	)

	var status string
	switch {
	case s.busy:
		status = theme.Hint.Render("Saving...")
	case s.errMsg != "":
		status = theme.ErrorBanner.Render(s.errMsg)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, listCard, "  ", topicCard),
		"",
		status,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
