// Package skills models skill selection for practice sprints. A skill the
// user picks is either persisted (backend-sourced, stable id) or a draft
// built from the predefined catalog with no server identity yet; the two
// are kept distinct so draft ids never leak into API calls.
package skills

import (
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/skillsprint/skillsprint/internal/api"
)

// RefKind distinguishes backend skills from local drafts.
type RefKind int

const (
	// Persisted refs carry a stable backend id.
	Persisted RefKind = iota
	// Draft refs exist only client-side (catalog selection, no id).
	Draft
)

// Ref is a tagged reference to a selected skill.
type Ref struct {
	Kind RefKind

	// ID is valid only for Persisted refs.
	ID int

	// LocalKey is valid only for Draft refs.
	LocalKey string

	Name        string
	Description string
	Topics      []api.Topic
}

// FromSkill builds a Persisted ref from a backend skill.
func FromSkill(s api.Skill) Ref {
	return Ref{
		Kind:        Persisted,
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Topics:      SortedTopics(s.Topics),
	}
}

// FromCatalog builds a Draft ref from a catalog entry. Drafts start with
// no topics and require no network call to select.
func FromCatalog(e CatalogEntry) Ref {
	return Ref{
		Kind:        Draft,
		LocalKey:    uuid.New().String(),
		Name:        e.Name,
		Description: e.Description,
	}
}

// Key returns a comparable identity for selection highlighting.
func (r Ref) Key() string {
	if r.Kind == Draft {
		return "draft:" + r.LocalKey
	}
	return "skill:" + strconv.Itoa(r.ID)
}

// DefaultTopic returns the name of the skill's first topic by declared
// order, or "" when the skill has none. Selecting a skill resets the
// topic to this value.
func (r Ref) DefaultTopic() string {
	if len(r.Topics) == 0 {
		return ""
	}
	return SortedTopics(r.Topics)[0].Name
}

// SortedTopics returns the topics ordered by their declared order field.
// The input slice is not modified.
func SortedTopics(topics []api.Topic) []api.Topic {
	out := make([]api.Topic, len(topics))
	copy(out, topics)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// TopicDone reports whether the topic at position idx (in sorted order)
// counts as done. Completion is positional: the first topics_done topics
// by order are treated as complete.
func TopicDone(progress api.Progress, idx int) bool {
	return idx < progress.TopicsDone
}

// CompletionPct recomputes the completion percentage for topicsDone of
// totalTopics. Zero topics means zero percent.
func CompletionPct(topicsDone, totalTopics int) float64 {
	if totalTopics <= 0 {
		return 0
	}
	if topicsDone > totalTopics {
		topicsDone = totalTopics
	}
	return float64(topicsDone) / float64(totalTopics) * 100
}
