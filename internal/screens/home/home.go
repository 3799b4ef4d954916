package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/auth"
	"github.com/skillsprint/skillsprint/internal/history"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/screens/analytics"
	"github.com/skillsprint/skillsprint/internal/screens/dashboard"
	"github.com/skillsprint/skillsprint/internal/screens/habits"
	historyscreen "github.com/skillsprint/skillsprint/internal/screens/history"
	"github.com/skillsprint/skillsprint/internal/screens/skills"
	"github.com/skillsprint/skillsprint/internal/screens/sprint"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

// profileMsg refreshes the cached user profile on every visit so the
// header streak stays current after a sprint.
type profileMsg struct {
	user *api.User
	err  error
}

// checkoutMsg carries the Pro checkout URL. The terminal cannot host the
// payment form, so the URL is shown for the user to open in a browser.
type checkoutMsg struct {
	url string
	err error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	client   *api.Client
	sessions *auth.Store
	history  *history.Store
	login    func() screen.Screen

	menu   components.Menu
	notice string
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. login builds the screen shown after
// logout.
func New(client *api.Client, sessions *auth.Store, hist *history.Store, login func() screen.Screen) *HomeScreen {
	s := &HomeScreen{
		client:   client,
		sessions: sessions,
		history:  hist,
		login:    login,
	}
	s.menu = components.NewMenu(s.menuItems())
	return s
}

func (s *HomeScreen) menuItems() []components.MenuItem {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "⚡ Practice Sprint", Hint: "Quick-fire questions", Action: push(func() screen.Screen {
			return sprint.New(s.client, s.history)
		})},
		{Label: "🎯 Habit Tracker", Hint: "Daily habits and streaks", Action: push(func() screen.Screen {
			return habits.New(s.client)
		})},
		{Label: "📚 Learning Progress", Hint: "Skills and topics", Action: push(func() screen.Screen {
			return skills.New(s.client)
		})},
		{Label: "📊 Dashboard", Hint: "Streaks and weekly activity", Action: push(func() screen.Screen {
			return dashboard.New(s.client)
		})},
		{Label: "📈 Analytics", Hint: "30-day breakdown", Action: push(func() screen.Screen {
			return analytics.New(s.client)
		})},
		{Label: "🗂  History", Hint: "Past sprints on this machine", Action: push(func() screen.Screen {
			return historyscreen.New(s.history)
		}), Disabled: s.history == nil},
	}

	if !s.sessions.Current().User.IsPro {
		items = append(items, components.MenuItem{
			Label: "✨ Upgrade to Pro",
			Hint:  "Unlimited sprints",
			Action: func() tea.Cmd {
				return s.startCheckout()
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "🚪 Log out", Action: func() tea.Cmd {
			return s.logout()
		}},
		components.MenuItem{Label: "✖  Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

func (s *HomeScreen) Init() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		user, _, err := client.Me(context.Background())
		return profileMsg{user: user, err: err}
	}
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileMsg:
		if msg.err != nil {
			// An expired token surfaces here; send the user back to login.
			if _, ok := msg.err.(*api.RequestError); ok {
				return s, s.logout()
			}
			s.errMsg = msg.err.Error()
			return s, nil
		}
		sess := s.sessions.Current()
		sess.User = *msg.user
		if err := s.sessions.Save(sess); err != nil {
			s.errMsg = err.Error()
		}
		// Pro status may have changed; rebuild the menu.
		selected := s.menu.Selected
		s.menu = components.NewMenu(s.menuItems())
		if selected < len(s.menu.Items) {
			s.menu.Selected = selected
		}
		return s, nil

	case checkoutMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.notice = "Open this link to upgrade: " + msg.url
		return s, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *HomeScreen) startCheckout() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		session, err := client.CreateCheckoutSession(context.Background())
		if err != nil {
			return checkoutMsg{err: err}
		}
		return checkoutMsg{url: session.URL}
	}
}

func (s *HomeScreen) logout() tea.Cmd {
	if err := s.sessions.Clear(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	login := s.login()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: login}
	}
}

func (s *HomeScreen) View(width, height int) string {
	user := s.sessions.Current().User

	greeting := theme.Title.Render("SkillSprint")
	sub := theme.Subtitle.Render("Signed in as " + user.Email)

	var status string
	switch {
	case s.errMsg != "":
		status = theme.ErrorBanner.Render(s.errMsg)
	case s.notice != "":
		status = lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		greeting,
		sub,
		"",
		s.menu.View(),
		"",
		status,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
