package sprint

import (
	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/skills"
)

// Async results carry the sequence number of the request that produced
// them. The screen bumps its sequence whenever a newer request supersedes
// an older one, so responses from abandoned requests are dropped instead
// of clobbering fresh state.

type skillsLoadedMsg struct {
	seq  int
	refs []skills.Ref
	err  error
}

type skillCreatedMsg struct {
	seq   int
	skill *api.Skill
	err   error
}

type questionsMsg struct {
	seq       int
	questions []api.Question
	err       error
}

type submitDoneMsg struct {
	seq    int
	result *api.SubmitResult
	err    error
}

// timerTickMsg is tagged with the question index it was scheduled for.
// Ticks for any other index are stale and ignored, so advancing a
// question implicitly cancels its countdown.
type timerTickMsg struct {
	index int
}
