// Package dashboard holds the display transforms for backend-supplied
// aggregates. The backend precomputes every statistic; the client only
// derives visual encodings from them.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/skillsprint/skillsprint/internal/api"
)

// Overview joins the two fetches the dashboard renders from.
type Overview struct {
	Stats *api.DashboardStats
	User  *api.User
	Goals []api.Goal
}

// Load fetches dashboard stats and the user profile in parallel and
// joins them before rendering.
func Load(ctx context.Context, client *api.Client) (*Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := client.DashboardStats(ctx)
		if err != nil {
			return err
		}
		ov.Stats = stats
		return nil
	})
	g.Go(func() error {
		user, goals, err := client.Me(ctx)
		if err != nil {
			return err
		}
		ov.User = user
		ov.Goals = goals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}

// GaugeAngle maps a value against its maximum onto a half-circle gauge:
// min(value/max, 1) * 180 degrees. A non-positive max pins the needle
// at zero.
func GaugeAngle(value, max float64) float64 {
	if max <= 0 || value <= 0 {
		return 0
	}
	ratio := value / max
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 180
}
