package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var tf TokenFunc
	if token != "" {
		tf = func() string { return token }
	}
	return New(srv.URL, 5*time.Second, tf)
}

func validQuestion(id int) Question {
	return Question{
		ID:           id,
		Topic:        "Python",
		Difficulty:   "beginner",
		QuestionText: "What does len() return?",
		Options:      map[string]string{"A": "length", "B": "type", "C": "id", "D": "hash"},
	}
}

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"habits": []Habit{}})
	}), "tok-123")

	if _, err := client.ListHabits(context.Background()); err != nil {
		t.Fatalf("ListHabits() error = %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestNoTokenMeansNoHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"habits": []Habit{}})
	}), "")

	if _, err := client.ListHabits(context.Background()); err != nil {
		t.Fatalf("ListHabits() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestRequestErrorCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"message": "Daily limit reached. Upgrade to Pro."})
	}), "tok")

	_, err := client.ListHabits(context.Background())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if reqErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want 429", reqErr.Status)
	}
	if reqErr.Message != "Daily limit reached. Upgrade to Pro." {
		t.Errorf("Message = %q, want backend message", reqErr.Message)
	}
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" {
			t.Errorf("email = %q, want a@b.c", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "jwt-token",
			"user":  User{Email: "a@b.c", CurrentStreak: 3},
		})
	}), "")

	token, user, err := client.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token != "jwt-token" {
		t.Errorf("token = %q, want jwt-token", token)
	}
	if user.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", user.CurrentStreak)
	}
}

func TestLoginRejectedBecomesAuthError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}), "")

	_, _, err := client.Login(context.Background(), "a@b.c", "wrong")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want *AuthError", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Errorf("Message = %q, want Invalid credentials", authErr.Message)
	}
}

func TestGenerateQuestions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["topic"] != "Python - Basics" {
			t.Errorf("topic = %v, want Python - Basics", body["topic"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []Question{validQuestion(1), validQuestion(2)},
		})
	}), "tok")

	qs, err := client.GenerateQuestions(context.Background(), "Python - Basics", "beginner", 2)
	if err != nil {
		t.Fatalf("GenerateQuestions() error = %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("len(questions) = %d, want 2", len(qs))
	}
}

func TestGenerateQuestionsEmptyResult(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message":   "Generation is busy, try again shortly.",
			"questions": []Question{},
		})
	}), "tok")

	_, err := client.GenerateQuestions(context.Background(), "Python", "beginner", 5)

	var emptyErr *EmptyResultError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("error = %v, want *EmptyResultError", err)
	}
	if emptyErr.Message != "Generation is busy, try again shortly." {
		t.Errorf("Message = %q, want backend message", emptyErr.Message)
	}
}

func TestGenerateQuestionsRejectsInvalidShape(t *testing.T) {
	// One option only; the schema requires at least two.
	bad := validQuestion(1)
	bad.Options = map[string]string{"A": "only"}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []Question{bad},
		})
	}), "tok")

	_, err := client.GenerateQuestions(context.Background(), "Python", "beginner", 1)

	var invalidErr *InvalidPayloadError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("error = %v, want *InvalidPayloadError", err)
	}
}

func TestSubmitAnswers(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Answers []Answer `json:"answers"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Answers) != 2 {
			t.Errorf("submitted %d answers, want 2", len(body.Answers))
		}
		if body.Answers[1].SelectedOption != "" {
			t.Errorf("skipped answer SelectedOption = %q, want empty", body.Answers[1].SelectedOption)
		}
		json.NewEncoder(w).Encode(SubmitResult{
			Score:            "1/2",
			StreakMaintained: true,
			CurrentStreak:    5,
			Results: []QuestionResult{
				{QuestionID: 1, IsCorrect: true, CorrectOption: "A"},
				{QuestionID: 2, IsCorrect: false, CorrectOption: "C", Explanation: "because"},
			},
		})
	}), "tok")

	res, err := client.SubmitAnswers(context.Background(), []Answer{
		{QuestionID: 1, SelectedOption: "A", TimeTaken: 10},
		{QuestionID: 2, SelectedOption: "", TimeTaken: 30},
	})
	if err != nil {
		t.Fatalf("SubmitAnswers() error = %v", err)
	}
	if res.Score != "1/2" || !res.StreakMaintained || res.CurrentStreak != 5 {
		t.Errorf("result = %+v", res)
	}
}

func TestHeatmapDecodes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"heatmap": map[string]int{"2026-01-01": 2},
		})
	}), "tok")

	hm, err := client.Heatmap(context.Background())
	if err != nil {
		t.Fatalf("Heatmap() error = %v", err)
	}
	if hm["2026-01-01"] != 2 {
		t.Errorf("heatmap = %v", hm)
	}
}

func TestDailyQuestions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/practice/daily" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []Question{validQuestion(1), validQuestion(2)},
		})
	}), "tok")

	qs, err := client.DailyQuestions(context.Background())
	if err != nil {
		t.Fatalf("DailyQuestions() error = %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("len(questions) = %d, want 2", len(qs))
	}
}

func TestDailyQuestionsEmptyResult(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message":   "No questions available yet.",
			"questions": []Question{},
		})
	}), "tok")

	_, err := client.DailyQuestions(context.Background())

	var emptyErr *EmptyResultError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("error = %v, want *EmptyResultError", err)
	}
}
