package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"moodliftAPI/internal/mood"
	"moodliftAPI/internal/rewards"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MoodService struct {
	db             *pgxpool.Pool
	rewardsService *RewardsService
}

func NewMoodService(db *pgxpool.Pool, rewardsService *RewardsService) *MoodService {
	return &MoodService{db: db, rewardsService: rewardsService}
}

// RecordMood upserts today's mood for the user. The first check-in of the
// day counts as content engagement for the rewards ledger; re-recording the
// same day just replaces the mood.
func (s *MoodService) RecordMood(ctx context.Context, clerkID string, moodType mood.MoodType) (*mood.DailyMood, error) {
	if !moodType.IsValid() {
		return nil, fmt.Errorf("unknown mood type: %s", moodType)
	}

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	var existedToday bool
	err = s.db.QueryRow(ctx, `
	SELECT EXISTS(SELECT 1 FROM daily_moods WHERE user_id = $1 AND mood_date = CURRENT_DATE)
	`, userID).Scan(&existedToday)
	if err != nil {
		return nil, fmt.Errorf("failed to check today's mood: %w", err)
	}

	query := `
	INSERT INTO daily_moods (user_id, mood, mood_date, recorded_at)
	VALUES ($1, $2, CURRENT_DATE, NOW())
	ON CONFLICT (user_id, mood_date)
	DO UPDATE SET mood = $2, recorded_at = NOW()
	RETURNING id, user_id, mood, mood_date, recorded_at
	`

	dm := &mood.DailyMood{}
	err = s.db.QueryRow(ctx, query, userID, moodType).Scan(&dm.ID, &dm.UserID, &dm.Mood, &dm.MoodDate, &dm.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record mood: %w", err)
	}

	if !existedToday {
		description := "Daily mood check-in"
		if _, err := s.rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityContentEngagement, &description); err != nil {
			log.Printf("RecordMood: failed to award engagement points: %v", err)
		}
	}

	return dm, nil
}

func (s *MoodService) GetTodayMood(ctx context.Context, clerkID string) (*mood.DailyMood, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT id, user_id, mood, mood_date, recorded_at
	FROM daily_moods
	WHERE user_id = $1 AND mood_date = CURRENT_DATE
	`

	dm := &mood.DailyMood{}
	err = s.db.QueryRow(ctx, query, userID).Scan(&dm.ID, &dm.UserID, &dm.Mood, &dm.MoodDate, &dm.RecordedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get today's mood: %w", err)
	}

	return dm, nil
}

func (s *MoodService) GetMoodHistory(ctx context.Context, clerkID string, days int) ([]*mood.DailyMood, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if days <= 0 {
		days = 30
	}

	query := `
	SELECT id, user_id, mood, mood_date, recorded_at
	FROM daily_moods
	WHERE user_id = $1 AND mood_date >= CURRENT_DATE - $2::int
	ORDER BY mood_date DESC
	`

	rows, err := s.db.Query(ctx, query, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mood history: %w", err)
	}
	defer rows.Close()

	var moods []*mood.DailyMood
	for rows.Next() {
		dm := &mood.DailyMood{}
		err := rows.Scan(&dm.ID, &dm.UserID, &dm.Mood, &dm.MoodDate, &dm.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		moods = append(moods, dm)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return moods, nil
}
