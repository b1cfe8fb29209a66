package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodliftAPI/internal/mood"
)

func TestRecordMoodUpsertsDailyEntry(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	moodService := NewMoodService(pool, rewardsService)

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	recorded, err := moodService.RecordMood(ctx, clerkID, mood.MoodStressed)
	require.NoError(t, err)
	assert.Equal(t, mood.MoodStressed, recorded.Mood)

	// Recording again the same day replaces the mood instead of stacking rows.
	updated, err := moodService.RecordMood(ctx, clerkID, mood.MoodHappy)
	require.NoError(t, err)
	assert.Equal(t, mood.MoodHappy, updated.Mood)

	today, err := moodService.GetTodayMood(ctx, clerkID)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, mood.MoodHappy, today.Mood)

	history, err := moodService.GetMoodHistory(ctx, clerkID, 7)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRecordMoodAwardsEngagementPointsOncePerDay(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	moodService := NewMoodService(pool, rewardsService)

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	_, err := moodService.RecordMood(ctx, clerkID, mood.MoodSad)
	require.NoError(t, err)

	_, err = moodService.RecordMood(ctx, clerkID, mood.MoodAnxious)
	require.NoError(t, err)

	ur, err := rewardsService.GetUserRewards(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, 5, ur.TotalPoints, "Only the first mood of the day earns points")
}

func TestRecordMoodRejectsUnknownMood(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	moodService := NewMoodService(pool, rewardsService)

	clerkID := createTestUser(t, pool, userService)

	_, err := moodService.RecordMood(context.Background(), clerkID, "furious")
	assert.Error(t, err)
}

func TestGetTodayMoodWhenNoneRecorded(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	moodService := NewMoodService(pool, rewardsService)

	clerkID := createTestUser(t, pool, userService)

	today, err := moodService.GetTodayMood(context.Background(), clerkID)
	require.NoError(t, err)
	assert.Nil(t, today)
}
