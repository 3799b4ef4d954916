package habits

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skillsprint/skillsprint/internal/api"
)

func TestGrid(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	heatmap := map[string]int{
		"2026-03-10": 3,
		"2026-03-08": 1,
	}

	cells := Grid(heatmap, today, 365)

	if len(cells) != 365 {
		t.Fatalf("len(cells) = %d, want 365", len(cells))
	}
	if cells[364].Date != "2026-03-10" {
		t.Errorf("last cell = %q, want today", cells[364].Date)
	}
	if cells[0].Date != "2025-03-11" {
		t.Errorf("first cell = %q, want 2025-03-11", cells[0].Date)
	}
	if cells[364].Count != 3 {
		t.Errorf("today's count = %d, want 3", cells[364].Count)
	}
	if cells[362].Count != 1 {
		t.Errorf("count two days back = %d, want 1", cells[362].Count)
	}
	if cells[363].Count != 0 {
		t.Errorf("missing date count = %d, want 0 (zero-filled)", cells[363].Count)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		if got := Level(tt.count); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

// newTestService spins up a fake backend serving a habit list and
// heatmap, counting list fetches so tests can assert the
// refresh-after-mutation behavior.
func newTestService(t *testing.T) (*Service, *atomic.Int32) {
	t.Helper()
	var listCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /habits", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"habits": []api.Habit{{ID: 1, Name: "Read", Frequency: "daily", Streak: 2}},
		})
	})
	mux.HandleFunc("GET /habits/heatmap", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"heatmap": map[string]int{"2026-03-10": 1},
		})
	})
	mux.HandleFunc("POST /habits", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"habit": api.Habit{ID: 2}})
	})
	mux.HandleFunc("POST /habits/1/log", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"completed": true})
	})
	mux.HandleFunc("DELETE /habits/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, 5*time.Second, nil)
	return NewService(client), &listCalls
}

func TestRefreshJoinsListAndHeatmap(t *testing.T) {
	svc, _ := newTestService(t)

	snap, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(snap.Habits) != 1 || snap.Habits[0].Name != "Read" {
		t.Errorf("Habits = %+v, want one habit named Read", snap.Habits)
	}
	if snap.Heatmap["2026-03-10"] != 1 {
		t.Errorf("Heatmap = %v, want 2026-03-10 -> 1", snap.Heatmap)
	}
}

func TestMutationsRefresh(t *testing.T) {
	svc, listCalls := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Meditate", "daily"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Toggle(ctx, 1); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Each mutation re-fetches the list rather than patching locally.
	if got := listCalls.Load(); got != 3 {
		t.Errorf("list fetches = %d, want 3", got)
	}
}
