package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenFunc supplies the bearer token at request time. Returning "" sends
// the request unauthenticated.
type TokenFunc func() string

// Client is a typed client for the SkillSprint REST API. Every call takes
// a context and returns either the decoded payload or a typed error; no
// retries are attempted.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

// New creates a Client for the API rooted at baseURL (including the
// version prefix, e.g. "http://localhost:5000/api/v1").
func New(baseURL string, timeout time.Duration, token TokenFunc) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

// do issues one request and decodes a 2xx body into out (if non-nil).
// Non-2xx responses become *RequestError with the body's message field.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: messageFrom(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// messageFrom extracts the backend's message field from an error body.
func messageFrom(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}

// Register creates a new account. It does not log the user in.
func (c *Client) Register(ctx context.Context, email, password string) (*User, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp registerResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", payload, &resp); err != nil {
		if reqErr, ok := err.(*RequestError); ok {
			return nil, &AuthError{Message: authMessage(reqErr, "registration failed")}
		}
		return nil, err
	}
	return &resp.User, nil
}

// Login exchanges credentials for a token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, *User, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		if reqErr, ok := err.(*RequestError); ok {
			return "", nil, &AuthError{Message: authMessage(reqErr, "login failed")}
		}
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

func authMessage(err *RequestError, fallback string) string {
	if err.Message != "" {
		return err.Message
	}
	return fallback
}

// Me returns the current user profile and goals.
func (c *Client) Me(ctx context.Context) (*User, []Goal, error) {
	var resp meResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &resp); err != nil {
		return nil, nil, err
	}
	return &resp.User, resp.Goals, nil
}

// SetGoal records the user's daily practice goal.
func (c *Client) SetGoal(ctx context.Context, topic, difficulty string, questionCount int) (*Goal, error) {
	payload := map[string]any{
		"topic":          topic,
		"difficulty":     difficulty,
		"question_count": questionCount,
	}
	var resp goalResponse
	if err := c.do(ctx, http.MethodPost, "/users/goals", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Goal, nil
}

// DashboardStats fetches the precomputed dashboard summary.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListHabits returns all habits with their derived daily state.
func (c *Client) ListHabits(ctx context.Context) ([]Habit, error) {
	var resp habitsResponse
	if err := c.do(ctx, http.MethodGet, "/habits", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Habits, nil
}

// CreateHabit creates a habit. Frequency is "daily" or "weekly".
func (c *Client) CreateHabit(ctx context.Context, name, frequency string) (*Habit, error) {
	payload := map[string]string{"name": name, "frequency": frequency}
	var resp habitResponse
	if err := c.do(ctx, http.MethodPost, "/habits", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Habit, nil
}

// UpdateHabit renames a habit or changes its frequency.
func (c *Client) UpdateHabit(ctx context.Context, id int, name, frequency string) (*Habit, error) {
	payload := map[string]string{"name": name, "frequency": frequency}
	var resp habitResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/habits/%d", id), payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Habit, nil
}

// DeleteHabit removes a habit and its logs.
func (c *Client) DeleteHabit(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/habits/%d", id), nil, nil)
}

// LogHabit toggles today's completion for a habit. The returned bool is
// the new completion state.
func (c *Client) LogHabit(ctx context.Context, id int) (bool, error) {
	var resp logHabitResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/habits/%d/log", id), nil, &resp); err != nil {
		return false, err
	}
	return resp.Completed, nil
}

// Heatmap returns the date -> habits-completed-count mapping.
func (c *Client) Heatmap(ctx context.Context) (map[string]int, error) {
	var resp heatmapResponse
	if err := c.do(ctx, http.MethodGet, "/habits/heatmap", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Heatmap, nil
}

// ListSkills returns all skills with topics and the caller's progress.
func (c *Client) ListSkills(ctx context.Context) ([]Skill, error) {
	var resp skillsResponse
	if err := c.do(ctx, http.MethodGet, "/skills", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

// CreateSkill creates a skill with an optional initial topic list.
func (c *Client) CreateSkill(ctx context.Context, name, description string, topics []string) (*Skill, error) {
	payload := map[string]any{
		"name":        name,
		"description": description,
		"topics":      topics,
	}
	var resp skillResponse
	if err := c.do(ctx, http.MethodPost, "/skills", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Skill, nil
}

// DeleteSkill removes a skill and its topics.
func (c *Client) DeleteSkill(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/skills/%d", id), nil, nil)
}

// AddTopic appends a topic to a skill.
func (c *Client) AddTopic(ctx context.Context, skillID int, name, description string) (*Topic, error) {
	payload := map[string]string{"name": name, "description": description}
	var resp topicResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/skills/%d/topics", skillID), payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Topic, nil
}

// SkillProgress returns a skill together with the caller's progress.
func (c *Client) SkillProgress(ctx context.Context, skillID int) (*Skill, *Progress, error) {
	var resp skillProgressResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/skills/%d/progress", skillID), nil, &resp); err != nil {
		return nil, nil, err
	}
	return &resp.Skill, &resp.Progress, nil
}

// UpdateSkillProgress writes new completion values for a skill.
func (c *Client) UpdateSkillProgress(ctx context.Context, skillID int, completionPct float64, topicsDone int) (*Progress, error) {
	payload := map[string]any{
		"completion_pct": completionPct,
		"topics_done":    topicsDone,
	}
	var resp progressResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/skills/%d/progress", skillID), payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Progress, nil
}

// GenerateQuestions asks the backend to produce count questions for the
// topic at the given difficulty. Each question is validated against the
// question schema; an empty result becomes *EmptyResultError carrying the
// backend's message.
func (c *Client) GenerateQuestions(ctx context.Context, topic, difficulty string, count int) ([]Question, error) {
	payload := map[string]any{
		"topic":      topic,
		"difficulty": difficulty,
		"count":      count,
	}
	var resp questionsResponse
	if err := c.do(ctx, http.MethodPost, "/practice/generate", payload, &resp); err != nil {
		return nil, err
	}
	if len(resp.Questions) == 0 {
		return nil, &EmptyResultError{Message: resp.Message}
	}
	for _, q := range resp.Questions {
		if err := validateQuestion(q); err != nil {
			return nil, &InvalidPayloadError{Err: err}
		}
	}
	return resp.Questions, nil
}

// DailyQuestions returns the goal-driven daily question set. Like
// GenerateQuestions, an empty set becomes *EmptyResultError.
func (c *Client) DailyQuestions(ctx context.Context) ([]Question, error) {
	var resp questionsResponse
	if err := c.do(ctx, http.MethodGet, "/practice/daily", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Questions) == 0 {
		return nil, &EmptyResultError{Message: resp.Message}
	}
	for _, q := range resp.Questions {
		if err := validateQuestion(q); err != nil {
			return nil, &InvalidPayloadError{Err: err}
		}
	}
	return resp.Questions, nil
}

// SubmitAnswers submits the full answer batch for a sprint.
func (c *Client) SubmitAnswers(ctx context.Context, answers []Answer) (*SubmitResult, error) {
	payload := map[string]any{"answers": answers}
	var result SubmitResult
	if err := c.do(ctx, http.MethodPost, "/practice/submit", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyticsSummary fetches the 30-day analytics payload.
func (c *Client) AnalyticsSummary(ctx context.Context) (*AnalyticsSummary, error) {
	var summary AnalyticsSummary
	if err := c.do(ctx, http.MethodGet, "/analytics/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreateCheckoutSession starts a Pro upgrade checkout.
func (c *Client) CreateCheckoutSession(ctx context.Context) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/payments/create-checkout-session", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
