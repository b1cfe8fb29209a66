package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"moodliftAPI/internal/notification"
	"moodliftAPI/internal/rewards"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PushProvider delivers notifications to user devices. FCM in production,
// nil in tests and local development.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

type NotificationService struct {
	db           *pgxpool.Pool
	pushProvider PushProvider
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{db: db}
}

// SetPushProvider injects the push backend after startup checks pass.
func (s *NotificationService) SetPushProvider(p PushProvider) {
	s.pushProvider = p
}

func (s *NotificationService) createNotification(ctx context.Context, userID uuid.UUID, notifType notification.NotificationType, title, message string, data map[string]any) (*notification.Notification, error) {
	dataJSON, _ := json.Marshal(data)

	query := `
	INSERT INTO notifications (user_id, type, title, message, is_read, data, created_at)
	VALUES ($1, $2, $3, $4, false, $5, NOW())
	RETURNING id, user_id, type, title, message, is_read, created_at
	`

	notif := &notification.Notification{Data: data}
	err := s.db.QueryRow(ctx, query, userID, notifType, title, message, dataJSON).Scan(
		&notif.ID,
		&notif.UserID,
		&notif.Type,
		&notif.Title,
		&notif.Message,
		&notif.IsRead,
		&notif.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.dispatchPush(ctx, userID, title, message, data)

	return notif, nil
}

func (s *NotificationService) dispatchPush(ctx context.Context, userID uuid.UUID, title, body string, data map[string]any) {
	if s.pushProvider == nil {
		return
	}

	tokens, err := s.getDeviceTokens(ctx, userID)
	if err != nil {
		log.Printf("dispatchPush: failed to load device tokens: %v", err)
		return
	}

	if err := s.pushProvider.SendPush(ctx, tokens, title, body, data); err != nil {
		log.Printf("dispatchPush: push delivery failed: %v", err)
	}
}

// NotifyBadgeUnlocked records and pushes a badge unlock. Best effort: a
// failure here never unwinds the award.
func (s *NotificationService) NotifyBadgeUnlocked(ctx context.Context, userID uuid.UUID, badge *rewards.Badge) {
	title := "Badge unlocked!"
	message := fmt.Sprintf("You earned the %s badge. Keep it up!", badge.Name)
	data := map[string]any{"badge_id": badge.ID.String(), "badge_name": badge.Name}

	if _, err := s.createNotification(ctx, userID, notification.NotificationBadgeUnlocked, title, message, data); err != nil {
		log.Printf("NotifyBadgeUnlocked: %v", err)
	}
}

func (s *NotificationService) NotifyMilestoneReached(ctx context.Context, userID uuid.UUID, milestone *rewards.Milestone) error {
	title := "Milestone reached!"
	message := fmt.Sprintf("You reached %s (level %d).", milestone.Name, milestone.Level)
	data := map[string]any{"milestone_id": milestone.ID.String(), "level": milestone.Level}

	_, err := s.createNotification(ctx, userID, notification.NotificationMilestoneReached, title, message, data)
	return err
}

func (s *NotificationService) NotifyStreakMilestone(ctx context.Context, userID uuid.UUID, days int) error {
	title := "Streak milestone!"
	message := fmt.Sprintf("%d days in a row. Amazing consistency!", days)
	data := map[string]any{"days": days}

	_, err := s.createNotification(ctx, userID, notification.NotificationStreakMilestone, title, message, data)
	return err
}

// NotifyStreakAtRisk nudges a user whose streak would break today. The
// reminder worker deduplicates, so this just records and pushes.
func (s *NotificationService) NotifyStreakAtRisk(ctx context.Context, userID uuid.UUID, days int) error {
	title := "Your streak is at risk!"
	message := fmt.Sprintf("Check in today to keep your %d-day streak alive.", days)
	data := map[string]any{"days": days}

	_, err := s.createNotification(ctx, userID, notification.NotificationStreakReminder, title, message, data)
	return err
}

func (s *NotificationService) GetNotifications(ctx context.Context, clerkID string, limit int) ([]*notification.Notification, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
	SELECT id, user_id, type, title, message, is_read, data, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n := &notification.Notification{}
		var dataJSON []byte
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &dataJSON, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(dataJSON) > 0 {
			json.Unmarshal(dataJSON, &n.Data)
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, clerkID string) (int, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("user not found: %w", err)
	}

	var count int
	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uuid.UUID, clerkID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	result, err := s.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, clerkID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	_, err = s.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID string, req *notification.RegisterDeviceRequest) error {
	if req.Token == "" {
		return fmt.Errorf("device token is required")
	}

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	query := `
	INSERT INTO device_tokens (user_id, token, platform, created_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (token) DO UPDATE SET user_id = $1, platform = $3
	`

	_, err = s.db.Exec(ctx, query, userID, req.Token, req.Platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	return nil
}

func (s *NotificationService) getDeviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `SELECT id, user_id, token, platform, created_at FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &t.CreatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}

	return tokens, rows.Err()
}
