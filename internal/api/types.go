package api

// User is the authenticated account as the backend reports it.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Timezone      string `json:"timezone"`
	IsPro         bool   `json:"is_pro"`
	CreatedAt     string `json:"created_at"`
}

// Goal is the user's daily learning goal.
type Goal struct {
	ID                 int    `json:"id"`
	Topic              string `json:"topic"`
	Difficulty         string `json:"difficulty"`
	DailyQuestionCount int    `json:"daily_question_target"`
}

// Habit is a tracked habit with its derived daily state.
type Habit struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	CreatedAt string `json:"created_at"`
	DoneToday bool   `json:"done_today"`
	Streak    int    `json:"streak"`
}

// Topic is an ordered sub-unit of a skill.
type Topic struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// Progress is the per-user completion state of a skill.
type Progress struct {
	CompletionPct float64 `json:"completion_pct"`
	TopicsDone    int     `json:"topics_done"`
}

// Skill is a learning subject with its ordered topics and the caller's
// progress.
type Skill struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon,omitempty"`
	Description string   `json:"description,omitempty"`
	Topics      []Topic  `json:"topics"`
	Progress    Progress `json:"progress"`
}

// Question is a generated multiple-choice question. The correct option
// and explanation are withheld until submission.
type Question struct {
	ID           int               `json:"id"`
	Topic        string            `json:"topic"`
	Difficulty   string            `json:"difficulty"`
	QuestionText string            `json:"question_text"`
	Options      map[string]string `json:"options"`
}

// Answer is a single submitted answer. SelectedOption is empty for a
// skipped question.
type Answer struct {
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	TimeTaken      int    `json:"time_taken"`
}

// QuestionResult is the per-question outcome returned on submission.
type QuestionResult struct {
	QuestionID    int    `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectOption string `json:"correct_option"`
	Explanation   string `json:"explanation"`
}

// SubmitResult is the outcome of a full sprint submission.
type SubmitResult struct {
	Score            string           `json:"score"`
	StreakMaintained bool             `json:"streak_maintained"`
	CurrentStreak    int              `json:"current_streak"`
	Results          []QuestionResult `json:"results"`
}

// WeekdayStat is one day in the dashboard's weekly series.
type WeekdayStat struct {
	Day       string `json:"day"`
	Date      string `json:"date"`
	Attempted int    `json:"attempted"`
	Correct   int    `json:"correct"`
}

// DashboardStats is the precomputed dashboard summary.
type DashboardStats struct {
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_streak"`
	Accuracy      float64        `json:"accuracy"`
	Heatmap       map[string]int `json:"heatmap"`
	Weekly        []WeekdayStat  `json:"weekly"`
	IsPro         bool           `json:"is_pro"`
}

// WeekStat is one week in the analytics weekly breakdown.
type WeekStat struct {
	Week      string  `json:"week"`
	Start     string  `json:"start"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// DayTrend is one day in the analytics daily trend.
type DayTrend struct {
	Date      string  `json:"date"`
	Day       string  `json:"day"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// AnalyticsSummary is the precomputed 30-day analytics payload.
type AnalyticsSummary struct {
	TotalAttempted    int        `json:"total_attempted"`
	TotalCorrect      int        `json:"total_correct"`
	Accuracy          float64    `json:"accuracy"`
	ActiveDays        int        `json:"active_days"`
	CurrentStreak     int        `json:"current_streak"`
	LongestStreak     int        `json:"longest_streak"`
	ProductivityScore float64    `json:"productivity_score"`
	Weekly            []WeekStat `json:"weekly"`
	DailyTrend        []DayTrend `json:"daily_trend"`
}

// CheckoutSession is the payment checkout handle returned by the backend.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Response envelopes. The backend wraps every collection and entity in a
// single-key object.

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type meResponse struct {
	User  User   `json:"user"`
	Goals []Goal `json:"goals"`
}

type registerResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type goalResponse struct {
	Message string `json:"message"`
	Goal    Goal   `json:"goal"`
}

type habitsResponse struct {
	Habits []Habit `json:"habits"`
}

type habitResponse struct {
	Habit Habit `json:"habit"`
}

type logHabitResponse struct {
	Message   string `json:"message"`
	Completed bool   `json:"completed"`
}

type heatmapResponse struct {
	Heatmap map[string]int `json:"heatmap"`
}

type skillsResponse struct {
	Skills []Skill `json:"skills"`
}

type skillResponse struct {
	Skill Skill `json:"skill"`
}

type topicResponse struct {
	Topic Topic `json:"topic"`
}

type skillProgressResponse struct {
	Skill    Skill    `json:"skill"`
	Progress Progress `json:"progress"`
}

type progressResponse struct {
	Progress Progress `json:"progress"`
}

type questionsResponse struct {
	Message   string     `json:"message"`
	Questions []Question `json:"questions"`
}
