package services

import (
	"context"
	"fmt"
	"log"

	"moodliftAPI/internal/progress"
	"moodliftAPI/internal/rewards"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressService struct {
	db             *pgxpool.Pool
	rewardsService *RewardsService
}

func NewProgressService(db *pgxpool.Pool, rewardsService *RewardsService) *ProgressService {
	return &ProgressService{db: db, rewardsService: rewardsService}
}

// SaveGameSession stores a completed breathing/grounding game and awards
// the game activity points.
func (s *ProgressService) SaveGameSession(ctx context.Context, clerkID string, req *progress.SaveGameSessionRequest) (*progress.GameSession, error) {
	if req.GameTitle == "" {
		return nil, fmt.Errorf("game title is required")
	}

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	INSERT INTO game_sessions (user_id, game_title, score, duration, mood_before, mood_after, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	RETURNING id, user_id, game_title, score, duration, mood_before, mood_after, completed_at
	`

	session := &progress.GameSession{}
	err = s.db.QueryRow(ctx, query, userID, req.GameTitle, req.Score, req.Duration, req.MoodBefore, req.MoodAfter).Scan(
		&session.ID,
		&session.UserID,
		&session.GameTitle,
		&session.Score,
		&session.Duration,
		&session.MoodBefore,
		&session.MoodAfter,
		&session.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save game session: %w", err)
	}

	description := "Completed " + req.GameTitle
	if _, err := s.rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityGame, &description); err != nil {
		log.Printf("SaveGameSession: failed to award game points: %v", err)
	}

	return session, nil
}

// SaveAssessmentResult stores a wellness assessment and awards the
// assessment activity points.
func (s *ProgressService) SaveAssessmentResult(ctx context.Context, clerkID string, req *progress.SaveAssessmentRequest) (*progress.AssessmentResult, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	INSERT INTO assessment_results (user_id, score, insights, completed_at)
	VALUES ($1, $2, $3, NOW())
	RETURNING id, user_id, score, insights, completed_at
	`

	result := &progress.AssessmentResult{}
	err = s.db.QueryRow(ctx, query, userID, req.Score, req.Insights).Scan(
		&result.ID,
		&result.UserID,
		&result.Score,
		&result.Insights,
		&result.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	description := "Completed wellness assessment"
	if _, err := s.rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityAssessment, &description); err != nil {
		log.Printf("SaveAssessmentResult: failed to award assessment points: %v", err)
	}

	return result, nil
}

// GetUserProgress aggregates game, assessment, mood and streak data for
// the progress dashboard.
func (s *ProgressService) GetUserProgress(ctx context.Context, clerkID string) (*progress.UserProgress, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT
		(SELECT COUNT(*) FROM game_sessions WHERE user_id = $1) as total_games,
		(SELECT COUNT(*) FROM assessment_results WHERE user_id = $1) as total_assessments,
		(SELECT COALESCE(AVG(mood_after - mood_before), 0)
		 FROM game_sessions
		 WHERE user_id = $1 AND mood_before IS NOT NULL AND mood_after IS NOT NULL) as avg_mood_delta,
		COALESCE((SELECT current_streak FROM streaks WHERE user_id = $1), 0) as current_streak,
		COALESCE((SELECT longest_streak FROM streaks WHERE user_id = $1), 0) as longest_streak
	`

	p := &progress.UserProgress{}
	err = s.db.QueryRow(ctx, query, userID).Scan(
		&p.TotalGames,
		&p.TotalAssessments,
		&p.AvgMoodDelta,
		&p.CurrentStreak,
		&p.LongestStreak,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}

	weeklyQuery := `
	SELECT to_char(completed_at, 'Dy') as day, COUNT(*) as games
	FROM game_sessions
	WHERE user_id = $1 AND completed_at >= CURRENT_DATE - 6
	GROUP BY to_char(completed_at, 'Dy'), date_trunc('day', completed_at)
	ORDER BY date_trunc('day', completed_at)
	`

	rows, err := s.db.Query(ctx, weeklyQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly activity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wa progress.WeeklyActivity
		if err := rows.Scan(&wa.Day, &wa.Games); err != nil {
			return nil, fmt.Errorf("failed to scan weekly activity: %w", err)
		}
		p.WeeklyActivity = append(p.WeeklyActivity, wa)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return p, nil
}
