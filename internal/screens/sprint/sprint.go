package sprint

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/history"
	"github.com/skillsprint/skillsprint/internal/router"
	"github.com/skillsprint/skillsprint/internal/screen"
	"github.com/skillsprint/skillsprint/internal/skills"
	spr "github.com/skillsprint/skillsprint/internal/sprint"
	"github.com/skillsprint/skillsprint/internal/ui/components"
	"github.com/skillsprint/skillsprint/internal/ui/layout"
)

// Selection form sections, cycled with tab.
const (
	sectionSkill = iota
	sectionDifficulty
	sectionTopic
	sectionCount
	sectionTimed
	sectionStart
	sectionEnd // sentinel
)

// SprintScreen drives a practice sprint end to end: skill selection,
// question generation, the quiz itself, and the scored results.
type SprintScreen struct {
	client  *api.Client
	history *history.Store

	st *spr.State

	// Selection step.
	refs          []skills.Ref
	skillIdx      int
	topicIdx      int
	section       int
	loadingSkills bool
	addingSkill   bool
	input         components.TextInput

	// Quiz step.
	choice components.MultiChoice

	// Abandon confirmation shown when esc is pressed mid-quiz.
	confirmQuit bool

	seq int
}

var _ screen.Screen = (*SprintScreen)(nil)
var _ screen.KeyHintProvider = (*SprintScreen)(nil)

// New creates the sprint screen. hist may be nil, disabling the local
// sprint record.
func New(client *api.Client, hist *history.Store) *SprintScreen {
	return &SprintScreen{
		client:  client,
		history: hist,
		st:      spr.NewState(),
		input:   components.NewTextInput("New skill name", "e.g. Docker", false, 60),
	}
}

func (s *SprintScreen) Init() tea.Cmd {
	return s.loadSkills()
}

func (s *SprintScreen) Title() string {
	return "Practice Sprint"
}

func (s *SprintScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon sprint"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.addingSkill {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Create skill"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	switch s.st.Phase {
	case spr.PhaseQuiz:
		hints := []layout.KeyHint{
			{Key: "A-D", Description: "Pick answer"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Abandon"},
		}
		return hints
	case spr.PhaseResults:
		return []layout.KeyHint{
			{Key: "Enter", Description: "New sprint"},
			{Key: "Esc", Description: "Home"},
		}
	case spr.PhaseLoading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "A", Description: "Add skill"},
			{Key: "D", Description: "Daily goal"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *SprintScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case skillsLoadedMsg:
		return s.handleSkillsLoaded(msg)
	case skillCreatedMsg:
		return s.handleSkillCreated(msg)
	case questionsMsg:
		return s.handleQuestions(msg)
	case submitDoneMsg:
		return s.handleSubmitDone(msg)
	case timerTickMsg:
		return s.handleTick(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.addingSkill {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// loadSkills fetches the user's skills and appends catalog drafts for
// anything not already persisted, so a fresh account still has something
// to pick.
func (s *SprintScreen) loadSkills() tea.Cmd {
	s.loadingSkills = true
	s.seq++
	seq := s.seq
	client := s.client
	return func() tea.Msg {
		list, err := client.ListSkills(context.Background())
		if err != nil {
			return skillsLoadedMsg{seq: seq, err: err}
		}

		refs := make([]skills.Ref, 0, len(list)+len(skills.Catalog))
		seen := make(map[string]bool, len(list))
		for _, sk := range list {
			refs = append(refs, skills.FromSkill(sk))
			seen[sk.Name] = true
		}
		for _, entry := range skills.Catalog {
			if !seen[entry.Name] {
				refs = append(refs, skills.FromCatalog(entry))
			}
		}
		return skillsLoadedMsg{seq: seq, refs: refs}
	}
}

func (s *SprintScreen) handleSkillsLoaded(msg skillsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.seq {
		return s, nil
	}
	s.loadingSkills = false
	if msg.err != nil {
		s.st.ErrMsg = msg.err.Error()
		return s, nil
	}
	s.refs = msg.refs
	s.skillIdx = 0
	s.topicIdx = 0
	if len(s.refs) > 0 {
		s.st.SelectSkill(s.refs[0])
	}
	return s, nil
}

func (s *SprintScreen) handleSkillCreated(msg skillCreatedMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.seq {
		return s, nil
	}
	if msg.err != nil {
		s.st.ErrMsg = msg.err.Error()
		return s, nil
	}
	// Reload so the new skill shows up persisted; it will sort into the
	// backend's order.
	return s, s.loadSkills()
}

func (s *SprintScreen) handleQuestions(msg questionsMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.seq || s.st.Phase != spr.PhaseLoading {
		return s, nil
	}
	if msg.err != nil {
		// Show the backend's own message where it sent one, e.g. the
		// "set a learning goal first" reply to a daily request.
		var empty *api.EmptyResultError
		var reqErr *api.RequestError
		switch {
		case errors.As(msg.err, &empty):
			s.st.GenerateFailed(empty.Message)
		case errors.As(msg.err, &reqErr) && reqErr.Message != "":
			s.st.GenerateFailed(reqErr.Message)
		default:
			s.st.GenerateFailed(msg.err.Error())
		}
		return s, nil
	}

	s.st.QuestionsLoaded(msg.questions)
	s.setupQuestion()
	if s.st.TimedMode {
		return s, tickCmd(s.st.Index)
	}
	return s, nil
}

func (s *SprintScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.seq {
		return s, nil
	}
	if msg.err != nil {
		s.st.SubmitFailed(msg.err.Error())
		return s, nil
	}

	s.st.Completed(msg.result)
	return s, s.recordSprint(msg.result)
}

// recordSprint appends the finished sprint to the local history store.
// Failures are swallowed; the record is a convenience, not the score of
// record.
func (s *SprintScreen) recordSprint(result *api.SubmitResult) tea.Cmd {
	if s.history == nil {
		return nil
	}

	// A daily sprint's topic and difficulty live in the server-side goal,
	// not in the local selection.
	name, topic, difficulty := "Daily goal", "", ""
	if !s.st.Daily {
		if s.st.Skill == nil {
			return nil
		}
		name, topic, difficulty = s.st.Skill.Name, s.st.Topic, s.st.Difficulty
	}

	correct, total := spr.ParseScore(result.Score)
	duration := 0
	for _, a := range s.st.Answers {
		duration += a.TimeTaken
	}
	entry := history.Entry{
		Skill:        name,
		Topic:        topic,
		Difficulty:   difficulty,
		ScoreCorrect: correct,
		ScoreTotal:   total,
		Timed:        s.st.TimedMode,
		DurationSecs: duration,
		FinishedAt:   time.Now(),
	}
	hist := s.history
	return func() tea.Msg {
		_ = hist.Append(context.Background(), entry)
		return nil
	}
}

func (s *SprintScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	// The batch is already on the wire; the countdown dies here so an
	// expiry can never trigger a second submission.
	if s.st.Submitting {
		return s, nil
	}
	expired := s.st.Tick(msg.index)
	if s.st.Phase != spr.PhaseQuiz || msg.index != s.st.Index {
		return s, nil
	}
	// The countdown keeps running behind the abandon dialog.
	if expired {
		s.st.SelectedOption = s.choice.Value()
		return s.advance()
	}
	return s, tickCmd(msg.index)
}

func (s *SprintScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.addingSkill {
		return s.handleAddSkillKey(msg)
	}

	switch s.st.Phase {
	case spr.PhaseSelect:
		return s.handleSelectKey(key)
	case spr.PhaseLoading:
		if key == "esc" {
			// Abandon the in-flight generation; a late response is
			// dropped by the sequence guard.
			s.seq++
			s.st.Reset()
		}
		return s, nil
	case spr.PhaseQuiz:
		return s.handleQuizKey(msg)
	case spr.PhaseResults:
		switch key {
		case "enter", "r":
			s.st.Reset()
			return s, nil
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SprintScreen) handleSelectKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		s.section = (s.section + 1) % sectionEnd
		return s, nil
	case "shift+tab":
		s.section = (s.section + sectionEnd - 1) % sectionEnd
		return s, nil
	case "a":
		s.addingSkill = true
		s.input.Reset()
		return s, s.input.Focus()
	case "d":
		return s.startDaily()
	case "t":
		s.st.TimedMode = !s.st.TimedMode
		return s, nil
	case "enter":
		if s.section == sectionTimed {
			s.st.TimedMode = !s.st.TimedMode
			return s, nil
		}
		return s.startSprint()
	}

	switch s.section {
	case sectionSkill:
		switch key {
		case "up", "k":
			if s.skillIdx > 0 {
				s.skillIdx--
				s.selectSkill()
			}
		case "down", "j":
			if s.skillIdx < len(s.refs)-1 {
				s.skillIdx++
				s.selectSkill()
			}
		}
	case sectionDifficulty:
		s.cycleChoice(key, len(spr.Difficulties), func(i int) {
			s.st.Difficulty = spr.Difficulties[i]
		}, indexOf(spr.Difficulties, s.st.Difficulty))
	case sectionTopic:
		topics := s.currentTopics()
		if len(topics) > 0 {
			s.cycleChoice(key, len(topics), func(i int) {
				s.topicIdx = i
				s.st.Topic = topics[i]
			}, s.topicIdx)
		}
	case sectionCount:
		s.cycleChoice(key, len(spr.QuestionCounts), func(i int) {
			s.st.QuestionCount = spr.QuestionCounts[i]
		}, indexOfInt(spr.QuestionCounts, s.st.QuestionCount))
	case sectionTimed:
		if key == " " || key == "left" || key == "right" {
			s.st.TimedMode = !s.st.TimedMode
		}
	}
	return s, nil
}

// cycleChoice moves a left/right selector and applies the new index.
func (s *SprintScreen) cycleChoice(key string, n int, apply func(int), cur int) {
	if n == 0 {
		return
	}
	switch key {
	case "left", "h":
		apply((cur + n - 1) % n)
	case "right", "l", " ":
		apply((cur + 1) % n)
	}
}

func (s *SprintScreen) selectSkill() {
	if s.skillIdx < 0 || s.skillIdx >= len(s.refs) {
		return
	}
	s.st.SelectSkill(s.refs[s.skillIdx])
	s.topicIdx = 0
}

// currentTopics lists the selectable topic names for the chosen skill,
// in declared order.
func (s *SprintScreen) currentTopics() []string {
	if s.st.Skill == nil {
		return nil
	}
	sorted := skills.SortedTopics(s.st.Skill.Topics)
	names := make([]string, 0, len(sorted))
	for _, t := range sorted {
		names = append(names, t.Name)
	}
	return names
}

func (s *SprintScreen) handleAddSkillKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.addingSkill = false
		s.input.Blur()
		return s, nil
	case "enter":
		name := s.input.Value()
		if name == "" {
			return s, nil
		}
		s.addingSkill = false
		s.input.Blur()
		s.seq++
		seq := s.seq
		client := s.client
		return s, func() tea.Msg {
			skill, err := client.CreateSkill(context.Background(), name, "", nil)
			return skillCreatedMsg{seq: seq, skill: skill, err: err}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SprintScreen) startSprint() (screen.Screen, tea.Cmd) {
	if err := s.st.BeginGenerate(); err != nil {
		s.st.ErrMsg = err.Error()
		return s, nil
	}

	s.seq++
	seq := s.seq
	client := s.client
	topic := s.st.TopicQuery()
	difficulty := s.st.Difficulty
	count := s.st.QuestionCount
	return s, func() tea.Msg {
		questions, err := client.GenerateQuestions(context.Background(), topic, difficulty, count)
		return questionsMsg{seq: seq, questions: questions, err: err}
	}
}

// startDaily fetches the question set for the user's learning goal. The
// backend rejects it with a message when no goal is set yet.
func (s *SprintScreen) startDaily() (screen.Screen, tea.Cmd) {
	s.st.BeginDaily()
	s.seq++
	seq := s.seq
	client := s.client
	return s, func() tea.Msg {
		questions, err := client.DailyQuestions(context.Background())
		return questionsMsg{seq: seq, questions: questions, err: err}
	}
}

func (s *SprintScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.st.Submitting {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		if s.choice.Value() == "" {
			// First enter picks the option under the cursor; the next
			// one advances. Matches the two-step flow of the web client.
			var cmd tea.Cmd
			s.choice, cmd = s.choice.Update(msg)
			return s, cmd
		}
		s.st.SelectedOption = s.choice.Value()
		return s.advance()
	case "s":
		// Explicit skip: an empty selection is a legal answer.
		s.st.SelectedOption = ""
		return s.advance()
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if v := s.choice.Value(); v != "" {
		s.st.SelectedOption = v
	}
	return s, cmd
}

// advance records the current answer and moves on, submitting the batch
// from the last question. Callers set SelectedOption first; a skip is an
// empty selection even when an option is highlighted.
func (s *SprintScreen) advance() (screen.Screen, tea.Cmd) {
	if s.st.Advance() {
		return s, s.submit()
	}
	s.setupQuestion()
	if s.st.TimedMode {
		return s, tickCmd(s.st.Index)
	}
	return s, nil
}

// setupQuestion rebuilds the option selector for the question under the
// cursor.
func (s *SprintScreen) setupQuestion() {
	q := s.st.Current()
	if q == nil {
		return
	}
	opts := make([]components.Option, 0, len(q.Options))
	for _, k := range spr.OptionKeys(*q) {
		opts = append(opts, components.Option{Key: k, Text: q.Options[k]})
	}
	s.choice = components.NewMultiChoice(opts)
}

func (s *SprintScreen) submit() tea.Cmd {
	s.st.Submitting = true
	s.seq++
	seq := s.seq
	client := s.client
	answers := s.st.Answers
	return func() tea.Msg {
		result, err := client.SubmitAnswers(context.Background(), answers)
		return submitDoneMsg{seq: seq, result: result, err: err}
	}
}

// tickCmd schedules the next countdown tick for the question at index.
func tickCmd(index int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{index: index}
	})
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return 0
}

func indexOfInt(list []int, v int) int {
	for i, n := range list {
		if n == v {
			return i
		}
	}
	return 0
}
