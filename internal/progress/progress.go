package progress

import (
	"time"

	"github.com/google/uuid"
)

type GameSession struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	GameTitle   string    `json:"game_title" db:"game_title"`
	Score       int       `json:"score" db:"score"`
	Duration    int       `json:"duration" db:"duration"` // seconds
	MoodBefore  *int      `json:"mood_before,omitempty" db:"mood_before"`
	MoodAfter   *int      `json:"mood_after,omitempty" db:"mood_after"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}

type AssessmentResult struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Score       int       `json:"score" db:"score"`
	Insights    string    `json:"insights" db:"insights"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}

type SaveGameSessionRequest struct {
	GameTitle  string `json:"game_title" validate:"required"`
	Score      int    `json:"score"`
	Duration   int    `json:"duration"`
	MoodBefore *int   `json:"mood_before,omitempty"`
	MoodAfter  *int   `json:"mood_after,omitempty"`
}

type SaveAssessmentRequest struct {
	Score    int    `json:"score"`
	Insights string `json:"insights"`
}

type WeeklyActivity struct {
	Day   string `json:"day"`
	Games int    `json:"games"`
}

type UserProgress struct {
	TotalGames       int              `json:"total_games"`
	TotalAssessments int              `json:"total_assessments"`
	AvgMoodDelta     float64          `json:"avg_mood_delta"`
	CurrentStreak    int              `json:"current_streak"`
	LongestStreak    int              `json:"longest_streak"`
	WeeklyActivity   []WeeklyActivity `json:"weekly_activity"`
}
