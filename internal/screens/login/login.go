package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/auth"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/layout"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

// loginDoneMsg carries the outcome of a login attempt.
type loginDoneMsg struct {
	token string
	user  *api.User
	err   error
}

// accountCreatedMsg is sent by the register screen after it pops itself,
// so the login screen can prefill the email and show a notice.
type accountCreatedMsg struct {
	email string
}

// LoginScreen is the entry gate: credentials in, session out.
type LoginScreen struct {
	client   *api.Client
	sessions *auth.Store
	home     func() screen.Screen

	email    components.TextInput
	password components.TextInput
	focus    int // 0 email, 1 password

	busy   bool
	errMsg string
	notice string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen. home builds the screen shown after a
// successful login.
func New(client *api.Client, sessions *auth.Store, home func() screen.Screen) *LoginScreen {
	s := &LoginScreen{
		client:   client,
		sessions: sessions,
		home:     home,
		email:    components.NewTextInput("Email", "you@example.com", false, 120),
		password: components.NewTextInput("Password", "", true, 120),
	}
	s.email.Focus()
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.email.Init()
}

func (s *LoginScreen) Title() string {
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+N", Description: "Create account"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		if err := s.sessions.Save(auth.Session{Token: msg.token, User: *msg.user}); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		home := s.home()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }

	case accountCreatedMsg:
		s.notice = "Account created. Sign in to continue."
		s.email.SetValue(msg.email)
		s.password.Reset()
		s.setFocus(1)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

func (s *LoginScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	switch msg.String() {
	case "tab", "down":
		s.setFocus((s.focus + 1) % 2)
		return s, nil
	case "shift+tab", "up":
		s.setFocus((s.focus + 2 - 1) % 2)
		return s, nil
	case "enter":
		return s.submit()
	case "ctrl+n":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: newRegisterScreen(s.client)}
		}
	}

	return s.forwardToInput(msg)
}

func (s *LoginScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if s.focus == 0 {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) setFocus(i int) {
	s.focus = i
	if i == 0 {
		s.email.Focus()
		s.password.Blur()
	} else {
		s.password.Focus()
		s.email.Blur()
	}
}

func (s *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()
	if email == "" || password == "" {
		s.errMsg = "Email and password are required."
		return s, nil
	}

	s.busy = true
	s.errMsg = ""
	s.notice = ""
	client := s.client
	return s, func() tea.Msg {
		token, user, err := client.Login(context.Background(), email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{token: token, user: user}
	}
}

func (s *LoginScreen) View(width, height int) string {
	title := theme.Title.Render("Welcome back")
	subtitle := theme.Subtitle.Render("Sign in to start your sprint")

	var status string
	switch {
	case s.busy:
		status = theme.Hint.Render("Signing in...")
	case s.errMsg != "":
		status = theme.ErrorBanner.Render(s.errMsg)
	case s.notice != "":
		status = lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.email.View(),
		"",
		s.password.View(),
		"",
		status,
	)

	card := theme.Card.Width(48).Render(form)
	content := lipgloss.JoinVertical(lipgloss.Center, title, subtitle, "", card)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
