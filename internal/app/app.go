package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/auth"
	"github.com/skillsprint/skillsprint/internal/history"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/screens/home"
	"github.com/skillsprint/skillsprint/internal/screens/login"
	"github.com/skillsprint/skillsprint/internal/ui/layout"

	"github.com/skillsprint/skillsprint/internal/api"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	API      *api.Client
	Sessions *auth.Store

	// History is the local sprint history store; nil disables recording.
	History *history.Store
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model behind the auth gate: a persisted
// token lands on home, anything else on login.
func newAppModel(opts Options) AppModel {
	var initial screen.Screen
	if opts.Sessions.Current().Active() {
		initial = homeScreen(opts)
	} else {
		initial = loginScreen(opts)
	}
	return AppModel{
		opts:   opts,
		router: router.New(initial),
	}
}

// homeScreen and loginScreen build the two gate anchors. They hand each
// other out as factories so login can land on home and logout can land
// back on login without an import cycle.
func homeScreen(opts Options) screen.Screen {
	return home.New(opts.API, opts.Sessions, opts.History, func() screen.Screen {
		return loginScreen(opts)
	})
}

func loginScreen(opts Options) screen.Screen {
	return login.New(opts.API, opts.Sessions, func() screen.Screen {
		return homeScreen(opts)
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Screens own every other key, esc included; a quiz in flight
		// confirms before abandoning instead of popping outright.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	sess := m.opts.Sessions.Current()
	header := layout.RenderHeader(title, sess.User.CurrentStreak, sess.User.IsPro, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
