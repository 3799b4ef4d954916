package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/layout"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

type registerDoneMsg struct {
	email string
	err   error
}

// registerScreen creates an account and hands the user back to the login
// screen. Registration does not log the user in; the backend issues
// tokens only through /auth/login.
type registerScreen struct {
	client *api.Client

	email    components.TextInput
	password components.TextInput
	confirm  components.TextInput
	focus    int

	busy   bool
	errMsg string
}

var _ screen.Screen = (*registerScreen)(nil)
var _ screen.KeyHintProvider = (*registerScreen)(nil)

func newRegisterScreen(client *api.Client) *registerScreen {
	s := &registerScreen{
		client:   client,
		email:    components.NewTextInput("Email", "you@example.com", false, 120),
		password: components.NewTextInput("Password", "", true, 120),
		confirm:  components.NewTextInput("Confirm password", "", true, 120),
	}
	s.email.Focus()
	return s
}

func (s *registerScreen) Init() tea.Cmd {
	return s.email.Init()
}

func (s *registerScreen) Title() string {
	return "Create Account"
}

func (s *registerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Create account"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *registerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		email := msg.email
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return accountCreatedMsg{email: email} },
		)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

func (s *registerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	switch msg.String() {
	case "tab", "down":
		s.setFocus((s.focus + 1) % 3)
		return s, nil
	case "shift+tab", "up":
		s.setFocus((s.focus + 2) % 3)
		return s, nil
	case "enter":
		return s.submit()
	}

	return s.forwardToInput(msg)
}

func (s *registerScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case 0:
		s.email, cmd = s.email.Update(msg)
	case 1:
		s.password, cmd = s.password.Update(msg)
	default:
		s.confirm, cmd = s.confirm.Update(msg)
	}
	return s, cmd
}

func (s *registerScreen) setFocus(i int) {
	s.focus = i
	s.email.Blur()
	s.password.Blur()
	s.confirm.Blur()
	switch i {
	case 0:
		s.email.Focus()
	case 1:
		s.password.Focus()
	default:
		s.confirm.Focus()
	}
}

func (s *registerScreen) submit() (screen.Screen, tea.Cmd) {
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()

	switch {
	case email == "" || password == "":
		s.errMsg = "Email and password are required."
		return s, nil
	case len(password) < 8:
		s.errMsg = "Password must be at least 8 characters."
		return s, nil
	case password != s.confirm.Value():
		s.errMsg = "Passwords do not match."
		return s, nil
	}

	s.busy = true
	s.errMsg = ""
	client := s.client
	return s, func() tea.Msg {
		if _, err := client.Register(context.Background(), email, password); err != nil {
			return registerDoneMsg{err: err}
		}
		return registerDoneMsg{email: email}
	}
}

func (s *registerScreen) View(width, height int) string {
	title := theme.Title.Render("Create your account")
	subtitle := theme.Subtitle.Render("Free forever. Pro is optional.")

	var status string
	switch {
	case s.busy:
		status = theme.Hint.Render("Creating account...")
	case s.errMsg != "":
		status = theme.ErrorBanner.Render(s.errMsg)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.email.View(),
		"",
		s.password.View(),
		"",
		s.confirm.View(),
		"",
		status,
	)

	card := theme.Card.Width(48).Render(form)
	content := lipgloss.JoinVertical(lipgloss.Center, title, subtitle, "", card)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
