package workers

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StreakNotifier is the slice of the notification service the reminder
// worker needs.
type StreakNotifier interface {
	NotifyStreakAtRisk(ctx context.Context, userID uuid.UUID, days int) error
}

// StartStreakReminderWorker starts a background routine that nudges users
// whose streak would break today. Runs hourly; each user gets at most one
// reminder per day.
func StartStreakReminderWorker(db *pgxpool.Pool, notifier StreakNotifier) {
	ticker := time.NewTicker(1 * time.Hour)

	go func() {
		for range ticker.C {
			remindAtRiskStreaks(db, notifier)
		}
	}()
}

func remindAtRiskStreaks(db *pgxpool.Pool, notifier StreakNotifier) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Users who checked in yesterday but not yet today, skipping anyone
	// already reminded today.
	query := `
	SELECT s.user_id, s.current_streak
	FROM streaks s
	WHERE s.current_streak > 0
	  AND s.last_activity_date = CURRENT_DATE - 1
	  AND NOT EXISTS (
		SELECT 1 FROM notifications n
		WHERE n.user_id = s.user_id
		  AND n.type = 'streak_reminder'
		  AND n.created_at >= CURRENT_DATE
	  )
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		log.Printf("Error querying at-risk streaks: %v", err)
		return
	}
	defer rows.Close()

	type atRisk struct {
		userID uuid.UUID
		days   int
	}

	var users []atRisk
	for rows.Next() {
		var u atRisk
		if err := rows.Scan(&u.userID, &u.days); err != nil {
			continue
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error reading at-risk streaks: %v", err)
		return
	}

	for _, u := range users {
		if err := notifier.NotifyStreakAtRisk(ctx, u.userID, u.days); err != nil {
			log.Printf("Failed to remind user %s: %v", u.userID, err)
		}
	}

	if len(users) > 0 {
		log.Printf("Sent %d streak reminders", len(users))
	}
}
