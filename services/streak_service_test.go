package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstCheckInStartsStreak(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	streakService := NewStreakService(pool, rewardsService)

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	result, err := streakService.RecordDailyCheckIn(ctx, clerkID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak.CurrentStreak)
	assert.Equal(t, 1, result.Streak.LongestStreak)
	assert.True(t, result.Update.IsNewStreak)
	assert.False(t, result.Update.StreakBroken)
	assert.Equal(t, 10, result.PointsAwarded, "First check-in of the day awards login points")
}

func TestRepeatedCheckInSameDayIsNoOp(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	streakService := NewStreakService(pool, rewardsService)

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	first, err := streakService.RecordDailyCheckIn(ctx, clerkID)
	require.NoError(t, err)

	second, err := streakService.RecordDailyCheckIn(ctx, clerkID)
	require.NoError(t, err)

	assert.Equal(t, first.Streak.CurrentStreak, second.Streak.CurrentStreak)
	assert.Equal(t, first.Streak.LongestStreak, second.Streak.LongestStreak)
	assert.False(t, second.Update.IsNewStreak)
	assert.False(t, second.Update.StreakBroken)
	assert.Equal(t, 0, second.PointsAwarded, "Same-day check-in must not award points twice")

	ur, err := rewardsService.GetUserRewards(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, 10, ur.TotalPoints)
}

func TestGetStreakForNewUser(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	streakService := NewStreakService(pool, rewardsService)

	clerkID := createTestUser(t, pool, userService)

	record, err := streakService.GetStreak(context.Background(), clerkID)
	require.NoError(t, err)
	assert.Equal(t, 0, record.CurrentStreak)
	assert.Equal(t, 0, record.LongestStreak)
	assert.Nil(t, record.LastActivityDate)
}

func TestGetStreakAfterCheckIn(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	streakService := NewStreakService(pool, rewardsService)

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	_, err := streakService.RecordDailyCheckIn(ctx, clerkID)
	require.NoError(t, err)

	record, err := streakService.GetStreak(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, 1, record.CurrentStreak)
	require.NotNil(t, record.LastActivityDate)
}

func TestCheckInUnknownUser(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	rewardsService := NewRewardsService(pool, NewNotificationService(pool))
	streakService := NewStreakService(pool, rewardsService)

	_, err := streakService.RecordDailyCheckIn(context.Background(), "user_does_not_exist")
	assert.Error(t, err)
}
