package sprint

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/skills"
	spr "github.com/skillsprint/skillsprint/internal/sprint"
)

func testQuestions(n int) []api.Question {
	qs := make([]api.Question, n)
	for i := range qs {
		qs[i] = api.Question{
			ID:           100 + i,
			QuestionText: "q",
			Options:      map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
		}
	}
	return qs
}

func keyMsg(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

// newQuizScreen builds a screen already sitting on the first question of
// a loaded quiz.
func newQuizScreen(t *testing.T, n int, timed bool) *SprintScreen {
	t.Helper()
	s := New(nil, nil)
	s.st.TimedMode = timed
	s.st.SelectSkill(skills.FromSkill(api.Skill{ID: 1, Name: "Python"}))
	if err := s.st.BeginGenerate(); err != nil {
		t.Fatalf("BeginGenerate() error = %v", err)
	}
	s.seq++
	updated, _ := s.Update(questionsMsg{seq: s.seq, questions: testQuestions(n)})
	return updated.(*SprintScreen)
}

func TestSkillsLoadedSelectsFirst(t *testing.T) {
	s := New(nil, nil)
	_ = s.Init()

	refs := []skills.Ref{
		skills.FromSkill(api.Skill{ID: 1, Name: "Python"}),
		skills.FromCatalog(skills.Catalog[1]),
	}
	updated, _ := s.Update(skillsLoadedMsg{seq: s.seq, refs: refs})
	s = updated.(*SprintScreen)

	if s.st.Skill == nil || s.st.Skill.Name != "Python" {
		t.Errorf("Skill = %+v, want Python preselected", s.st.Skill)
	}
	if s.loadingSkills {
		t.Error("loadingSkills still set")
	}
}

func TestStaleSkillsResponseDropped(t *testing.T) {
	s := New(nil, nil)
	_ = s.Init()
	stale := s.seq
	_ = s.loadSkills() // supersedes the first request

	refs := []skills.Ref{skills.FromSkill(api.Skill{ID: 9, Name: "Stale"})}
	updated, _ := s.Update(skillsLoadedMsg{seq: stale, refs: refs})
	s = updated.(*SprintScreen)

	if s.st.Skill != nil {
		t.Errorf("stale response applied: Skill = %+v", s.st.Skill)
	}
}

func TestQuestionsLoadedEntersQuiz(t *testing.T) {
	s := newQuizScreen(t, 2, false)

	if s.st.Phase != spr.PhaseQuiz {
		t.Fatalf("Phase = %v, want PhaseQuiz", s.st.Phase)
	}
	if len(s.choice.Options) != 4 {
		t.Errorf("choice options = %d, want 4", len(s.choice.Options))
	}
	if s.choice.Options[0].Key != "A" {
		t.Errorf("first option = %q, want A (sorted)", s.choice.Options[0].Key)
	}
}

func TestGenerateFailureShowsBackendMessage(t *testing.T) {
	s := New(nil, nil)
	s.st.SelectSkill(skills.FromSkill(api.Skill{ID: 1, Name: "Python"}))
	_ = s.st.BeginGenerate()
	s.seq++

	updated, _ := s.Update(questionsMsg{seq: s.seq, err: &api.EmptyResultError{Message: "try later"}})
	s = updated.(*SprintScreen)

	if s.st.Phase != spr.PhaseSelect {
		t.Errorf("Phase = %v, want PhaseSelect", s.st.Phase)
	}
	if s.st.ErrMsg != "try later" {
		t.Errorf("ErrMsg = %q, want backend message", s.st.ErrMsg)
	}
}

func TestAnswerAndAdvance(t *testing.T) {
	s := newQuizScreen(t, 2, false)

	// Pick option B by letter, then advance with enter.
	updated, _ := s.Update(keyMsg("b"))
	s = updated.(*SprintScreen)
	updated, _ = s.Update(keyMsg("enter"))
	s = updated.(*SprintScreen)

	if s.st.Index != 1 {
		t.Fatalf("Index = %d, want 1", s.st.Index)
	}
	if len(s.st.Answers) != 1 || s.st.Answers[0].SelectedOption != "B" {
		t.Errorf("Answers = %+v, want one answer B", s.st.Answers)
	}
	if s.choice.Value() != "" {
		t.Error("choice not reset for next question")
	}
}

func TestSkipRecordsEmptySelection(t *testing.T) {
	s := newQuizScreen(t, 2, false)

	// A highlighted pick must not survive an explicit skip.
	updated, _ := s.Update(keyMsg("a"))
	s = updated.(*SprintScreen)
	updated, _ = s.Update(keyMsg("s"))
	s = updated.(*SprintScreen)

	if len(s.st.Answers) != 1 || s.st.Answers[0].SelectedOption != "" {
		t.Errorf("Answers = %+v, want one empty selection", s.st.Answers)
	}
}

func TestLastQuestionSubmitsAndCompletes(t *testing.T) {
	s := newQuizScreen(t, 1, false)

	updated, _ := s.Update(keyMsg("a"))
	s = updated.(*SprintScreen)
	updated, cmd := s.Update(keyMsg("enter"))
	s = updated.(*SprintScreen)

	if !s.st.Submitting {
		t.Fatal("Submitting not set after last answer")
	}
	if cmd == nil {
		t.Fatal("no submit command issued")
	}

	res := &api.SubmitResult{Score: "1/1", CurrentStreak: 2}
	updated, _ = s.Update(submitDoneMsg{seq: s.seq, result: res})
	s = updated.(*SprintScreen)

	if s.st.Phase != spr.PhaseResults {
		t.Errorf("Phase = %v, want PhaseResults", s.st.Phase)
	}
}

func TestSubmitFailureIsRetryable(t *testing.T) {
	s := newQuizScreen(t, 1, false)

	updated, _ := s.Update(keyMsg("a"))
	s = updated.(*SprintScreen)
	updated, _ = s.Update(keyMsg("enter"))
	s = updated.(*SprintScreen)

	updated, _ = s.Update(submitDoneMsg{seq: s.seq, err: &api.RequestError{Status: 500}})
	s = updated.(*SprintScreen)

	if s.st.Phase != spr.PhaseQuiz {
		t.Fatalf("Phase = %v, want PhaseQuiz", s.st.Phase)
	}
	if s.st.ErrMsg == "" {
		t.Error("ErrMsg empty after failed submit")
	}

	// Retry resubmits without duplicating the answer.
	updated, cmd := s.Update(keyMsg("enter"))
	s = updated.(*SprintScreen)
	if cmd == nil {
		t.Fatal("retry issued no command")
	}
	if len(s.st.Answers) != 1 {
		t.Errorf("len(Answers) = %d after retry, want 1", len(s.st.Answers))
	}
}

func TestTimerExpiryForcesAdvance(t *testing.T) {
	s := newQuizScreen(t, 2, true)

	for i := 0; i < spr.QuestionSeconds; i++ {
		updated, _ := s.Update(timerTickMsg{index: 0})
		s = updated.(*SprintScreen)
	}

	if s.st.Index != 1 {
		t.Fatalf("Index = %d, want 1 after expiry", s.st.Index)
	}
	if len(s.st.Answers) != 1 {
		t.Fatalf("len(Answers) = %d, want 1", len(s.st.Answers))
	}
	if s.st.Answers[0].TimeTaken != spr.QuestionSeconds {
		t.Errorf("TimeTaken = %d, want %d", s.st.Answers[0].TimeTaken, spr.QuestionSeconds)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	s := newQuizScreen(t, 2, true)

	// Advance to question 1; ticks for question 0 are now stale.
	updated, _ := s.Update(keyMsg("a"))
	s = updated.(*SprintScreen)
	updated, _ = s.Update(keyMsg("enter"))
	s = updated.(*SprintScreen)

	before := s.st.TimeLeft
	updated, cmd := s.Update(timerTickMsg{index: 0})
	s = updated.(*SprintScreen)

	if s.st.TimeLeft != before {
		t.Errorf("stale tick changed TimeLeft: %d -> %d", before, s.st.TimeLeft)
	}
	if cmd != nil {
		t.Error("stale tick rescheduled itself")
	}
}

func TestTickDuringSubmissionDropped(t *testing.T) {
	s := newQuizScreen(t, 1, true)

	updated, _ := s.Update(keyMsg("a"))
	s = updated.(*SprintScreen)
	updated, _ = s.Update(keyMsg("enter"))
	s = updated.(*SprintScreen)
	if !s.st.Submitting {
		t.Fatal("Submitting not set after last answer")
	}

	// Leftover countdown ticks must not expire into a second submission.
	seq := s.seq
	for i := 0; i < spr.QuestionSeconds+1; i++ {
		var cmd tea.Cmd
		updated, cmd = s.Update(timerTickMsg{index: 0})
		s = updated.(*SprintScreen)
		if cmd != nil {
			t.Fatal("tick issued a command while submitting")
		}
	}
	if s.seq != seq {
		t.Errorf("seq moved during submission: %d -> %d", seq, s.seq)
	}
	if len(s.st.Answers) != 1 {
		t.Errorf("len(Answers) = %d, want 1", len(s.st.Answers))
	}

	updated, _ = s.Update(submitDoneMsg{seq: s.seq, result: &api.SubmitResult{Score: "1/1"}})
	s = updated.(*SprintScreen)
	if s.st.Phase != spr.PhaseResults {
		t.Errorf("Phase = %v, want PhaseResults", s.st.Phase)
	}
}

func TestResultsEnterStartsOver(t *testing.T) {
	s := newQuizScreen(t, 1, false)

	updated, _ := s.Update(keyMsg("a"))
	s = updated.(*SprintScreen)
	updated, _ = s.Update(keyMsg("enter"))
	s = updated.(*SprintScreen)
	updated, _ = s.Update(submitDoneMsg{seq: s.seq, result: &api.SubmitResult{Score: "1/1"}})
	s = updated.(*SprintScreen)

	updated, _ = s.Update(keyMsg("enter"))
	s = updated.(*SprintScreen)

	if s.st.Phase != spr.PhaseSelect {
		t.Errorf("Phase = %v, want PhaseSelect after restart", s.st.Phase)
	}
	if s.st.Skill == nil {
		t.Error("restart dropped the skill selection")
	}
}

func TestDailySprintWithoutGoal(t *testing.T) {
	s := New(nil, nil)
	_ = s.Init()

	updated, cmd := s.Update(keyMsg("d"))
	s = updated.(*SprintScreen)
	if s.st.Phase != spr.PhaseLoading {
		t.Fatalf("Phase = %v, want PhaseLoading", s.st.Phase)
	}
	if cmd == nil {
		t.Fatal("no daily fetch command issued")
	}

	reject := &api.RequestError{Status: 400, Message: "Please set a learning goal first"}
	updated, _ = s.Update(questionsMsg{seq: s.seq, err: reject})
	s = updated.(*SprintScreen)

	if s.st.Phase != spr.PhaseSelect {
		t.Errorf("Phase = %v, want PhaseSelect", s.st.Phase)
	}
	if s.st.ErrMsg != "Please set a learning goal first" {
		t.Errorf("ErrMsg = %q, want the backend message", s.st.ErrMsg)
	}
	if s.st.Daily {
		t.Error("Daily flag survived the rejection")
	}
}

func TestDailySprintLoadsGoalQuestions(t *testing.T) {
	s := New(nil, nil)
	_ = s.Init()

	updated, _ := s.Update(keyMsg("d"))
	s = updated.(*SprintScreen)
	updated, _ = s.Update(questionsMsg{seq: s.seq, questions: testQuestions(3)})
	s = updated.(*SprintScreen)

	if s.st.Phase != spr.PhaseQuiz {
		t.Fatalf("Phase = %v, want PhaseQuiz", s.st.Phase)
	}
	if !s.st.Daily {
		t.Error("Daily flag not set for a goal-driven sprint")
	}
	if len(s.choice.Options) != 4 {
		t.Errorf("choice options = %d, want 4", len(s.choice.Options))
	}
}
