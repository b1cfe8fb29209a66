package streak

import (
	"time"

	"github.com/google/uuid"
)

type Streak struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	CurrentStreak    int        `json:"current_streak" db:"current_streak"`
	LongestStreak    int        `json:"longest_streak" db:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date" db:"last_activity_date"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type StreakUpdate struct {
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	IsNewStreak   bool `json:"is_new_streak"`
	StreakBroken  bool `json:"streak_broken"`
}

// NormalizeDate strips the time component so streak math only ever
// compares calendar days.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeStreakUpdate applies the daily check-in rules against today:
// first activity starts a streak at 1, a same-day repeat is a no-op,
// yesterday's activity extends the streak, anything else resets it.
// Callers persist the result together with lastActivityDate = today.
func ComputeStreakUpdate(currentStreak, longestStreak int, lastActivityDate *time.Time, today time.Time) StreakUpdate {
	today = NormalizeDate(today)
	yesterday := today.AddDate(0, 0, -1)

	if lastActivityDate == nil {
		longest := longestStreak
		if longest < 1 {
			longest = 1
		}
		return StreakUpdate{
			CurrentStreak: 1,
			LongestStreak: longest,
			IsNewStreak:   true,
			StreakBroken:  false,
		}
	}

	last := NormalizeDate(*lastActivityDate)

	if last.Equal(today) {
		return StreakUpdate{
			CurrentStreak: currentStreak,
			LongestStreak: longestStreak,
			IsNewStreak:   false,
			StreakBroken:  false,
		}
	}

	if last.Equal(yesterday) {
		newStreak := currentStreak + 1
		longest := longestStreak
		if newStreak > longest {
			longest = newStreak
		}
		return StreakUpdate{
			CurrentStreak: newStreak,
			LongestStreak: longest,
			IsNewStreak:   false,
			StreakBroken:  false,
		}
	}

	// Gap of 2+ days. A future-dated last activity is treated the same way.
	return StreakUpdate{
		CurrentStreak: 1,
		LongestStreak: longestStreak,
		IsNewStreak:   true,
		StreakBroken:  true,
	}
}
