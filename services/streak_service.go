package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"moodliftAPI/internal/rewards"
	"moodliftAPI/internal/streak"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StreakService struct {
	db             *pgxpool.Pool
	rewardsService *RewardsService
}

func NewStreakService(db *pgxpool.Pool, rewardsService *RewardsService) *StreakService {
	return &StreakService{db: db, rewardsService: rewardsService}
}

type CheckInResult struct {
	Streak        *streak.Streak      `json:"streak"`
	Update        streak.StreakUpdate `json:"update"`
	PointsAwarded int                 `json:"points_awarded"`
}

// RecordDailyCheckIn runs once per session start: loads the user's streak
// row, applies the streak rules against today and persists the result. The
// daily login points are awarded at most once per calendar day; a repeated
// check-in the same day is a no-op on both counts.
func (s *StreakService) RecordDailyCheckIn(ctx context.Context, clerkID string) (*CheckInResult, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	current, err := s.getStreakByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := streak.NormalizeDate(time.Now().UTC())

	var update streak.StreakUpdate
	if current == nil {
		update = streak.ComputeStreakUpdate(0, 0, nil, today)
	} else {
		update = streak.ComputeStreakUpdate(current.CurrentStreak, current.LongestStreak, current.LastActivityDate, today)
	}

	query := `
	INSERT INTO streaks (user_id, current_streak, longest_streak, last_activity_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	ON CONFLICT (user_id)
	DO UPDATE SET
		current_streak = $2,
		longest_streak = $3,
		last_activity_date = $4,
		updated_at = NOW()
	RETURNING id, user_id, current_streak, longest_streak, last_activity_date, created_at, updated_at
	`

	updated := &streak.Streak{}
	err = s.db.QueryRow(ctx, query, userID, update.CurrentStreak, update.LongestStreak, today).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.CurrentStreak,
		&updated.LongestStreak,
		&updated.LastActivityDate,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to persist streak: %w", err)
	}

	result := &CheckInResult{Streak: updated, Update: update}

	alreadyLogged, err := s.rewardsService.HasActivityToday(ctx, clerkID, rewards.ActivityDailyLogin)
	if err != nil {
		return nil, err
	}
	if !alreadyLogged {
		activityResult, err := s.rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityDailyLogin, nil)
		if err != nil {
			// Streak is already saved; surface the points failure to the
			// caller instead of pretending points were granted.
			return nil, fmt.Errorf("check-in saved but daily login points failed: %w", err)
		}
		result.PointsAwarded = activityResult.PointsAwarded
	}

	if update.CurrentStreak > 0 && update.CurrentStreak%7 == 0 && !update.StreakBroken {
		if err := s.rewardsService.notificationService.NotifyStreakMilestone(ctx, userID, update.CurrentStreak); err != nil {
			log.Printf("RecordDailyCheckIn: streak milestone notification failed: %v", err)
		}
	}

	return result, nil
}

func (s *StreakService) GetStreak(ctx context.Context, clerkID string) (*streak.Streak, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	record, err := s.getStreakByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// A user with no recorded activity reads as a zero streak.
		return &streak.Streak{UserID: userID}, nil
	}

	return record, nil
}

func (s *StreakService) getStreakByUserID(ctx context.Context, userID uuid.UUID) (*streak.Streak, error) {
	query := `
	SELECT id, user_id, current_streak, longest_streak, last_activity_date, created_at, updated_at
	FROM streaks
	WHERE user_id = $1
	`

	record := &streak.Streak{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&record.ID,
		&record.UserID,
		&record.CurrentStreak,
		&record.LongestStreak,
		&record.LastActivityDate,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	return record, nil
}
