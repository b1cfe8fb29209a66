package rewards

import (
	"time"

	"github.com/google/uuid"
)

type ActivityKind string

const (
	ActivityDailyLogin        ActivityKind = "daily_login"
	ActivityAssessment        ActivityKind = "assessment"
	ActivityGame              ActivityKind = "game"
	ActivityContentEngagement ActivityKind = "content_engagement"
)

// activityPoints is the single source of point values. Every ledger row
// gets its points from here, never from the caller.
var activityPoints = map[ActivityKind]int{
	ActivityDailyLogin:        10,
	ActivityAssessment:        25,
	ActivityGame:              15,
	ActivityContentEngagement: 5,
}

// PointsFor returns the catalog value for kind, or false for an unknown kind.
func PointsFor(kind ActivityKind) (int, bool) {
	points, ok := activityPoints[kind]
	return points, ok
}

type Activity struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	UserID       uuid.UUID    `json:"user_id" db:"user_id"`
	ActivityKind ActivityKind `json:"activity_kind" db:"activity_kind"`
	PointsEarned int          `json:"points_earned" db:"points_earned"`
	Description  *string      `json:"description,omitempty" db:"description"`
	ActivityDate time.Time    `json:"activity_date" db:"activity_date"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

type UserRewards struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	TotalPoints int       `json:"total_points" db:"total_points"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Badge struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Icon           string    `json:"icon" db:"icon"`
	PointsRequired int       `json:"points_required" db:"points_required"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type UserBadge struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	BadgeID  uuid.UUID `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}

type BadgeWithStatus struct {
	Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

type Milestone struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Level           int       `json:"level" db:"level"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	PointsThreshold int       `json:"points_threshold" db:"points_threshold"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type RecordActivityRequest struct {
	ActivityKind ActivityKind `json:"activity_kind" validate:"required"`
	Description  *string      `json:"description,omitempty"`
}

type RecordActivityResult struct {
	PointsAwarded  int      `json:"points_awarded"`
	NewTotal       int      `json:"new_total"`
	UnlockedBadges []*Badge `json:"unlocked_badges,omitempty"`
}

type RewardsSummary struct {
	TotalPoints      int          `json:"total_points"`
	CurrentMilestone *Milestone   `json:"current_milestone,omitempty"`
	NextMilestone    *Milestone   `json:"next_milestone,omitempty"`
	RecentActivities []*Activity  `json:"recent_activities"`
	EarnedBadges     []*UserBadge `json:"earned_badges"`
}

// NewlyUnlocked returns the catalog badges that totalPoints qualifies for
// and the user does not already hold. Order is not significant.
func NewlyUnlocked(catalog []*Badge, held map[uuid.UUID]bool, totalPoints int) []*Badge {
	var unlocked []*Badge
	for _, b := range catalog {
		if held[b.ID] {
			continue
		}
		if b.PointsRequired <= totalPoints {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

// CurrentMilestone picks the milestone with the greatest threshold not
// exceeding totalPoints, breaking threshold ties by highest level.
func CurrentMilestone(milestones []*Milestone, totalPoints int) *Milestone {
	var current *Milestone
	for _, m := range milestones {
		if m.PointsThreshold > totalPoints {
			continue
		}
		if current == nil ||
			m.PointsThreshold > current.PointsThreshold ||
			(m.PointsThreshold == current.PointsThreshold && m.Level > current.Level) {
			current = m
		}
	}
	return current
}

// NextMilestone picks the milestone with the smallest threshold above
// totalPoints, breaking threshold ties by lowest level.
func NextMilestone(milestones []*Milestone, totalPoints int) *Milestone {
	var next *Milestone
	for _, m := range milestones {
		if m.PointsThreshold <= totalPoints {
			continue
		}
		if next == nil ||
			m.PointsThreshold < next.PointsThreshold ||
			(m.PointsThreshold == next.PointsThreshold && m.Level < next.Level) {
			next = m
		}
	}
	return next
}
