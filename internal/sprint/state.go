// Package sprint holds the practice-sprint state machine. The state is
// pure: the screen layer feeds it user actions, timer ticks, and API
// results, and renders whatever phase it lands in.
package sprint

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/skills"
)

// Phase is the sprint lifecycle phase.
type Phase int

const (
	// PhaseSelect is the skill/difficulty/topic/count selection step.
	// A failed generation returns here with ErrMsg set.
	PhaseSelect Phase = iota
	// PhaseLoading waits for question generation.
	PhaseLoading
	// PhaseQuiz serves questions one at a time.
	PhaseQuiz
	// PhaseResults shows the scored outcome.
	PhaseResults
)

// QuestionSeconds is the per-question countdown in timed mode.
const QuestionSeconds = 30

// Difficulties lists the selectable difficulty levels, in display order.
var Difficulties = []string{"beginner", "intermediate", "advanced"}

// QuestionCounts lists the selectable sprint lengths.
var QuestionCounts = []int{5, 10}

// ValidationError blocks an action before any backend call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// State is the full sprint state. Zero quiz progress plus PhaseSelect is
// the initial state.
type State struct {
	Phase  Phase
	ErrMsg string

	// Selection step.
	Skill         *skills.Ref
	Difficulty    string
	Topic         string
	QuestionCount int
	TimedMode     bool

	// Daily marks a sprint served from the user's learning goal; the
	// backend picks topic, difficulty, and count.
	Daily bool

	// Quiz step.
	Questions      []api.Question
	Index          int
	SelectedOption string
	Answers        []api.Answer
	TimeLeft       int
	Submitting     bool

	Results *api.SubmitResult
}

// NewState returns a State at the selection step with the defaults the
// user sees first.
func NewState() *State {
	return &State{
		Phase:         PhaseSelect,
		Difficulty:    Difficulties[0],
		QuestionCount: QuestionCounts[0],
		TimeLeft:      QuestionSeconds,
	}
}

// SelectSkill records the chosen skill and resets the topic to the
// skill's first topic by declared order ("" when it has none).
func (s *State) SelectSkill(ref skills.Ref) {
	s.Skill = &ref
	s.Topic = ref.DefaultTopic()
}

// BeginGenerate moves select -> loading. A missing skill fails with a
// ValidationError and no transition happens.
func (s *State) BeginGenerate() error {
	if s.Skill == nil {
		return &ValidationError{Msg: "skill required"}
	}
	s.Phase = PhaseLoading
	s.ErrMsg = ""
	return nil
}

// BeginDaily moves select -> loading for the goal-driven daily set. No
// skill selection is needed; the backend resolves the goal.
func (s *State) BeginDaily() {
	s.Daily = true
	s.Phase = PhaseLoading
	s.ErrMsg = ""
}

// TopicQuery is the topic string sent to the generator: "Skill - Topic"
// when a topic is selected, else the bare skill name.
func (s *State) TopicQuery() string {
	if s.Skill == nil {
		return ""
	}
	if s.Topic != "" {
		return fmt.Sprintf("%s - %s", s.Skill.Name, s.Topic)
	}
	return s.Skill.Name
}

// QuestionsLoaded moves loading -> quiz with a fresh question run.
func (s *State) QuestionsLoaded(questions []api.Question) {
	s.Questions = questions
	s.Index = 0
	s.SelectedOption = ""
	s.Answers = nil
	s.Results = nil
	s.TimeLeft = QuestionSeconds
	s.Phase = PhaseQuiz
}

// GenerateFailed moves loading -> select with the failure message shown;
// the user can retry.
func (s *State) GenerateFailed(msg string) {
	s.Phase = PhaseSelect
	s.Daily = false
	if msg == "" {
		msg = "Failed to generate questions. Please try again."
	}
	s.ErrMsg = msg
}

// Current returns the question at the cursor, or nil outside the quiz.
func (s *State) Current() *api.Question {
	if s.Phase != PhaseQuiz || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// OnLastQuestion reports whether the cursor is on the final question.
func (s *State) OnLastQuestion() bool {
	return len(s.Questions) > 0 && s.Index == len(s.Questions)-1
}

// Elapsed is the seconds spent on the current question: the countdown
// consumed in timed mode, zero otherwise.
func (s *State) Elapsed() int {
	if !s.TimedMode {
		return 0
	}
	return QuestionSeconds - s.TimeLeft
}

// Advance records the current answer (empty selection allowed, modeling a
// skip) and either moves to the next question or signals that the full
// batch should be submitted. A retried submission after a failure does
// not append a duplicate answer.
func (s *State) Advance() (submit bool) {
	if s.Phase != PhaseQuiz {
		return false
	}
	if len(s.Answers) <= s.Index {
		q := s.Questions[s.Index]
		s.Answers = append(s.Answers, api.Answer{
			QuestionID:     q.ID,
			SelectedOption: s.SelectedOption,
			TimeTaken:      s.Elapsed(),
		})
	}

	if s.OnLastQuestion() {
		return true
	}

	s.Index++
	s.SelectedOption = ""
	s.TimeLeft = QuestionSeconds
	return false
}

// Tick decrements the countdown for the question at index. Ticks for any
// other index are stale leftovers from a previous question and are
// dropped, so only one countdown is ever live. Returns true when the
// countdown has expired and the question must force-advance.
func (s *State) Tick(index int) (expired bool) {
	if !s.TimedMode || s.Phase != PhaseQuiz || index != s.Index {
		return false
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	return s.TimeLeft == 0
}

// SubmitFailed leaves the user on the last question with submission
// retryable.
func (s *State) SubmitFailed(msg string) {
	s.Submitting = false
	s.ErrMsg = msg
}

// Completed moves quiz -> results.
func (s *State) Completed(res *api.SubmitResult) {
	s.Submitting = false
	s.ErrMsg = ""
	s.Results = res
	s.Phase = PhaseResults
}

// Reset returns to the selection step, clearing all quiz-local state but
// keeping the user's selections.
func (s *State) Reset() {
	s.Phase = PhaseSelect
	s.ErrMsg = ""
	s.Daily = false
	s.Questions = nil
	s.Index = 0
	s.SelectedOption = ""
	s.Answers = nil
	s.Results = nil
	s.Submitting = false
	s.TimeLeft = QuestionSeconds
}

// ParseScore splits a "correct/total" score string. Malformed scores
// yield (0, 0).
func ParseScore(score string) (correct, total int) {
	parts := strings.SplitN(score, "/", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	correct, _ = strconv.Atoi(parts[0])
	total, _ = strconv.Atoi(parts[1])
	return correct, total
}

// OptionKeys returns a question's option keys in stable display order.
func OptionKeys(q api.Question) []string {
	keys := make([]string, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	// Option keys are single letters (A, B, C, D); lexical order is
	// display order.
	sort.Strings(keys)
	return keys
}
