package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"moodliftAPI/internal/rewards"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RewardsService struct {
	db                  *pgxpool.Pool
	notificationService *NotificationService
}

func NewRewardsService(db *pgxpool.Pool, notificationService *NotificationService) *RewardsService {
	return &RewardsService{db: db, notificationService: notificationService}
}

// RecordActivity appends one immutable ledger row, bumps the cached total
// atomically and evaluates badge unlocks, all inside one transaction. A
// failure anywhere rolls the whole thing back, so the ledger and the total
// can never diverge.
func (s *RewardsService) RecordActivity(ctx context.Context, clerkID string, kind rewards.ActivityKind, description *string) (*rewards.RecordActivityResult, error) {
	points, ok := rewards.PointsFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown activity kind: %s", kind)
	}

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertActivityQuery := `
	INSERT INTO reward_activities (user_id, activity_kind, points_earned, description, activity_date, created_at)
	VALUES ($1, $2, $3, $4, CURRENT_DATE, NOW())
	`
	_, err = tx.Exec(ctx, insertActivityQuery, userID, kind, points, description)
	if err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	var newTotal int
	totalQuery := `
	INSERT INTO user_rewards (user_id, total_points, created_at, updated_at)
	VALUES ($1, $2, NOW(), NOW())
	ON CONFLICT (user_id)
	DO UPDATE SET total_points = user_rewards.total_points + $2, updated_at = NOW()
	RETURNING total_points
	`
	err = tx.QueryRow(ctx, totalQuery, userID, points).Scan(&newTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to update total points: %w", err)
	}

	unlocked, err := s.evaluateBadgesTx(ctx, tx, userID, newTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate badges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit activity: %w", err)
	}

	// Push notifications happen after commit so a dead push provider can
	// never roll back earned points.
	for _, badge := range unlocked {
		s.notificationService.NotifyBadgeUnlocked(ctx, userID, badge)
	}

	return &rewards.RecordActivityResult{
		PointsAwarded:  points,
		NewTotal:       newTotal,
		UnlockedBadges: unlocked,
	}, nil
}

// evaluateBadgesTx awards every catalog badge the new total qualifies for
// and the user does not already hold. The unique (user_id, badge_id) index
// makes re-evaluation idempotent.
func (s *RewardsService) evaluateBadgesTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, totalPoints int) ([]*rewards.Badge, error) {
	rows, err := tx.Query(ctx, `
	SELECT id, name, description, icon, points_required, created_at
	FROM badges
	ORDER BY points_required ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch badge catalog: %w", err)
	}

	var catalog []*rewards.Badge
	for rows.Next() {
		b := &rewards.Badge{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.PointsRequired, &b.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		catalog = append(catalog, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	heldRows, err := tx.Query(ctx, `SELECT badge_id FROM user_badges WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user badges: %w", err)
	}

	held := make(map[uuid.UUID]bool)
	for heldRows.Next() {
		var id uuid.UUID
		if err := heldRows.Scan(&id); err != nil {
			heldRows.Close()
			return nil, fmt.Errorf("failed to scan user badge: %w", err)
		}
		held[id] = true
	}
	heldRows.Close()
	if err := heldRows.Err(); err != nil {
		return nil, err
	}

	unlocked := rewards.NewlyUnlocked(catalog, held, totalPoints)
	for _, badge := range unlocked {
		_, err := tx.Exec(ctx, `
		INSERT INTO user_badges (user_id, badge_id, earned_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, badge_id) DO NOTHING
		`, userID, badge.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to award badge %s: %w", badge.ID, err)
		}
	}

	return unlocked, nil
}

// EvaluateBadges re-runs badge evaluation against the user's current total,
// outside of any activity. Safe to call repeatedly.
func (s *RewardsService) EvaluateBadges(ctx context.Context, clerkID string) ([]*rewards.Badge, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	totalPoints, err := s.totalPointsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	unlocked, err := s.evaluateBadgesTx(ctx, tx, userID, totalPoints)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit badge evaluation: %w", err)
	}

	return unlocked, nil
}

func (s *RewardsService) totalPointsFor(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := s.db.QueryRow(ctx, `SELECT total_points FROM user_rewards WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get total points: %w", err)
	}
	return total, nil
}

// GetUserRewards returns the user's rewards row, lazily creating a zero
// total for a user with no recorded activity.
func (s *RewardsService) GetUserRewards(ctx context.Context, clerkID string) (*rewards.UserRewards, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	INSERT INTO user_rewards (user_id, total_points, created_at, updated_at)
	VALUES ($1, 0, NOW(), NOW())
	ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING id, user_id, total_points, created_at, updated_at
	`

	ur := &rewards.UserRewards{}
	err = s.db.QueryRow(ctx, query, userID).Scan(&ur.ID, &ur.UserID, &ur.TotalPoints, &ur.CreatedAt, &ur.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user rewards: %w", err)
	}

	return ur, nil
}

// RecomputeTotal re-sums the ledger and rewrites the cached total. The
// ledger is the source of truth; this exists for reconciliation.
func (s *RewardsService) RecomputeTotal(ctx context.Context, clerkID string) (int, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("user not found: %w", err)
	}

	var total int
	query := `
	INSERT INTO user_rewards (user_id, total_points, created_at, updated_at)
	VALUES ($1, (SELECT COALESCE(SUM(points_earned), 0) FROM reward_activities WHERE user_id = $1), NOW(), NOW())
	ON CONFLICT (user_id)
	DO UPDATE SET total_points = (SELECT COALESCE(SUM(points_earned), 0) FROM reward_activities WHERE user_id = $1), updated_at = NOW()
	RETURNING total_points
	`
	err = s.db.QueryRow(ctx, query, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute total: %w", err)
	}

	return total, nil
}

func (s *RewardsService) GetRecentActivities(ctx context.Context, clerkID string, windowDays int) ([]*rewards.Activity, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if windowDays <= 0 {
		windowDays = 30
	}

	query := `
	SELECT id, user_id, activity_kind, points_earned, description, activity_date, created_at
	FROM reward_activities
	WHERE user_id = $1 AND activity_date >= CURRENT_DATE - $2::int
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID, windowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer rows.Close()

	var activities []*rewards.Activity
	for rows.Next() {
		a := &rewards.Activity{}
		err := rows.Scan(&a.ID, &a.UserID, &a.ActivityKind, &a.PointsEarned, &a.Description, &a.ActivityDate, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

// HasActivityToday reports whether the user already earned points for this
// kind today. The check-in flow uses it to keep daily_login once a day.
func (s *RewardsService) HasActivityToday(ctx context.Context, clerkID string, kind rewards.ActivityKind) (bool, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return false, fmt.Errorf("user not found: %w", err)
	}

	var exists bool
	query := `
	SELECT EXISTS(
		SELECT 1 FROM reward_activities
		WHERE user_id = $1 AND activity_kind = $2 AND activity_date = CURRENT_DATE
	)
	`
	err = s.db.QueryRow(ctx, query, userID, kind).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check today's activity: %w", err)
	}

	return exists, nil
}

func (s *RewardsService) GetBadges(ctx context.Context, clerkID string) ([]*rewards.BadgeWithStatus, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT
		b.id,
		b.name,
		b.description,
		b.icon,
		b.points_required,
		b.created_at,
		CASE WHEN ub.id IS NOT NULL THEN true ELSE false END as earned,
		ub.earned_at
	FROM badges b
	LEFT JOIN user_badges ub ON b.id = ub.badge_id AND ub.user_id = $1
	ORDER BY earned DESC, b.points_required ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch badges: %w", err)
	}
	defer rows.Close()

	var badges []*rewards.BadgeWithStatus
	for rows.Next() {
		b := &rewards.BadgeWithStatus{}
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Description,
			&b.Icon,
			&b.PointsRequired,
			&b.CreatedAt,
			&b.Earned,
			&b.EarnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return badges, nil
}

func (s *RewardsService) GetMilestones(ctx context.Context) ([]*rewards.Milestone, error) {
	query := `
	SELECT id, level, name, description, points_threshold, created_at
	FROM milestones
	ORDER BY level ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*rewards.Milestone
	for rows.Next() {
		m := &rewards.Milestone{}
		err := rows.Scan(&m.ID, &m.Level, &m.Name, &m.Description, &m.PointsThreshold, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return milestones, nil
}

// GetRewardsSummary assembles the dashboard view: total, surrounding
// milestones, recent ledger entries and earned badges.
func (s *RewardsService) GetRewardsSummary(ctx context.Context, clerkID string) (*rewards.RewardsSummary, error) {
	ur, err := s.GetUserRewards(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.GetMilestones(ctx)
	if err != nil {
		return nil, err
	}

	activities, err := s.GetRecentActivities(ctx, clerkID, 30)
	if err != nil {
		return nil, err
	}

	earned, err := s.getEarnedBadges(ctx, ur.UserID)
	if err != nil {
		log.Printf("GetRewardsSummary: failed to fetch earned badges: %v", err)
		earned = nil
	}

	return &rewards.RewardsSummary{
		TotalPoints:      ur.TotalPoints,
		CurrentMilestone: rewards.CurrentMilestone(milestones, ur.TotalPoints),
		NextMilestone:    rewards.NextMilestone(milestones, ur.TotalPoints),
		RecentActivities: activities,
		EarnedBadges:     earned,
	}, nil
}

func (s *RewardsService) getEarnedBadges(ctx context.Context, userID uuid.UUID) ([]*rewards.UserBadge, error) {
	query := `
	SELECT id, user_id, badge_id, earned_at
	FROM user_badges
	WHERE user_id = $1
	ORDER BY earned_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earned []*rewards.UserBadge
	for rows.Next() {
		ub := &rewards.UserBadge{}
		if err := rows.Scan(&ub.ID, &ub.UserID, &ub.BadgeID, &ub.EarnedAt); err != nil {
			return nil, err
		}
		earned = append(earned, ub)
	}

	return earned, rows.Err()
}

// GetCurrentMilestone and GetNextMilestone expose milestone lookups for the
// profile surfaces without pulling the whole summary.
func (s *RewardsService) GetCurrentMilestone(ctx context.Context, clerkID string) (*rewards.Milestone, error) {
	ur, err := s.GetUserRewards(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.GetMilestones(ctx)
	if err != nil {
		return nil, err
	}

	return rewards.CurrentMilestone(milestones, ur.TotalPoints), nil
}

func (s *RewardsService) GetNextMilestone(ctx context.Context, clerkID string) (*rewards.Milestone, error) {
	ur, err := s.GetUserRewards(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.GetMilestones(ctx)
	if err != nil {
		return nil, err
	}

	return rewards.NextMilestone(milestones, ur.TotalPoints), nil
}
