// Package habits is the view-model behind the habit tracker screen.
// Every mutation re-fetches the full list and heatmap from the backend
// instead of patching locally, trading a round trip for guaranteed
// consistency with server state.
package habits

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skillsprint/skillsprint/internal/api"
)

// Frequencies lists the valid habit frequencies.
var Frequencies = []string{"daily", "weekly"}

// GridDays is the size of the activity heatmap grid.
const GridDays = 365

// Snapshot is a consistent view of habit state: the habit list and the
// activity heatmap, fetched together.
type Snapshot struct {
	Habits  []api.Habit
	Heatmap map[string]int
}

// Service wraps the API client with the refresh-after-mutation pattern.
type Service struct {
	client *api.Client
}

// NewService creates a Service over the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Refresh fetches the habit list and heatmap in parallel and joins them
// into one snapshot.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		habits, err := s.client.ListHabits(ctx)
		if err != nil {
			return err
		}
		snap.Habits = habits
		return nil
	})
	g.Go(func() error {
		heatmap, err := s.client.Heatmap(ctx)
		if err != nil {
			return err
		}
		snap.Heatmap = heatmap
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Create adds a habit and returns the refreshed snapshot.
func (s *Service) Create(ctx context.Context, name, frequency string) (*Snapshot, error) {
	if _, err := s.client.CreateHabit(ctx, name, frequency); err != nil {
		return nil, err
	}
	return s.Refresh(ctx)
}

// Update edits a habit and returns the refreshed snapshot.
func (s *Service) Update(ctx context.Context, id int, name, frequency string) (*Snapshot, error) {
	if _, err := s.client.UpdateHabit(ctx, id, name, frequency); err != nil {
		return nil, err
	}
	return s.Refresh(ctx)
}

// Delete removes a habit and returns the refreshed snapshot. The screen
// confirms with the user before calling this.
func (s *Service) Delete(ctx context.Context, id int) (*Snapshot, error) {
	if err := s.client.DeleteHabit(ctx, id); err != nil {
		return nil, err
	}
	return s.Refresh(ctx)
}

// Toggle flips today's completion for a habit and returns the refreshed
// snapshot.
func (s *Service) Toggle(ctx context.Context, id int) (*Snapshot, error) {
	if _, err := s.client.LogHabit(ctx, id); err != nil {
		return nil, err
	}
	return s.Refresh(ctx)
}

// Cell is one day in the heatmap grid.
type Cell struct {
	Date  string // ISO date, YYYY-MM-DD
	Count int
}

// Grid derives a days-long cell sequence ending at today from the
// date -> count mapping. Dates missing from the mapping count zero.
func Grid(heatmap map[string]int, today time.Time, days int) []Cell {
	cells := make([]Cell, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		ds := d.Format("2006-01-02")
		cells = append(cells, Cell{Date: ds, Count: heatmap[ds]})
	}
	return cells
}

// Level buckets a count into a discrete heat level: 0 empty, 1 light,
// 2 medium, 3 dark (3 covers every count >= 3).
func Level(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count == 2:
		return 2
	default:
		return 3
	}
}
