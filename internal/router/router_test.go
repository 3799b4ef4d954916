package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/skillsprint/skillsprint/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

// Replace collapses the whole stack: logging out from three screens deep
// must land on a bare login screen with nothing underneath to pop back
// into.
func TestReplaceCollapsesStack(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Push(&stubScreen{title: "second"})
	r.Push(&stubScreen{title: "third"})

	s4 := &stubScreen{title: "fourth"}
	r.Replace(s4)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "fourth" {
		t.Errorf("expected active 'fourth', got %q", r.Active().Title())
	}
	if !s4.initRan {
		t.Error("expected Init() to run on replacement screen")
	}
}

func TestNavigationMsgs(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(PushScreenMsg{Screen: s2})
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}

	s3 := &stubScreen{title: "third"}
	r.Update(ReplaceScreenMsg{Screen: s3})
	if r.Depth() != 1 || r.Active().Title() != "third" {
		t.Errorf("expected collapsed stack on 'third', got depth %d active %q",
			r.Depth(), r.Active().Title())
	}
	if !s3.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}
