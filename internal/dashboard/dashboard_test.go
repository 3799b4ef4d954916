package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skillsprint/skillsprint/internal/api"
)

func TestGaugeAngle(t *testing.T) {
	tests := []struct {
		value float64
		max   float64
		want  float64
	}{
		{0, 100, 0},
		{-5, 100, 0},
		{50, 100, 90},
		{100, 100, 180},
		{150, 100, 180}, // clamped
		{50, 0, 0},      // degenerate max
	}

	for _, tt := range tests {
		if got := GaugeAngle(tt.value, tt.max); got != tt.want {
			t.Errorf("GaugeAngle(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestLoadJoinsStatsAndProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.DashboardStats{
			CurrentStreak: 4,
			Accuracy:      82.5,
		})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"user":  api.User{Email: "a@b.c"},
			"goals": []api.Goal{{Topic: "Python", Difficulty: "beginner", DailyQuestionCount: 5}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, 5*time.Second, nil)
	ov, err := Load(context.Background(), client)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ov.Stats.CurrentStreak != 4 || ov.Stats.Accuracy != 82.5 {
		t.Errorf("Stats = %+v", ov.Stats)
	}
	if ov.User.Email != "a@b.c" {
		t.Errorf("User = %+v", ov.User)
	}
	if len(ov.Goals) != 1 || ov.Goals[0].Topic != "Python" {
		t.Errorf("Goals = %+v", ov.Goals)
	}
}

func TestLoadPropagatesError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"user": api.User{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, 5*time.Second, nil)
	if _, err := Load(context.Background(), client); err == nil {
		t.Error("Load() error = nil, want failure from stats fetch")
	}
}
