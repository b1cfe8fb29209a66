package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodliftAPI/internal/rewards"
)

func TestRecordActivityAppendsLedgerAndTotal(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	notificationService := NewNotificationService(pool)
	rewardsService := NewRewardsService(pool, notificationService)

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	result, err := rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityAssessment, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, result.PointsAwarded)
	assert.Equal(t, 25, result.NewTotal)

	result, err = rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityGame, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, result.PointsAwarded)
	assert.Equal(t, 40, result.NewTotal)

	ur, err := rewardsService.GetUserRewards(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, 40, ur.TotalPoints)

	activities, err := rewardsService.GetRecentActivities(ctx, clerkID, 7)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, rewards.ActivityGame, activities[0].ActivityKind, "Newest activity first")
}

func TestRecordActivityRejectsUnknownKind(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))

	clerkID := createTestUser(t, pool, userService)

	_, err := rewardsService.RecordActivity(context.Background(), clerkID, "premium_purchase", nil)
	assert.Error(t, err)

	ur, err := rewardsService.GetUserRewards(context.Background(), clerkID)
	require.NoError(t, err)
	assert.Equal(t, 0, ur.TotalPoints, "Rejected activity must not change the total")
}

func TestRecordActivityUnknownUser(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	rewardsService := NewRewardsService(pool, NewNotificationService(pool))

	_, err := rewardsService.RecordActivity(context.Background(), "user_does_not_exist", rewards.ActivityGame, nil)
	assert.Error(t, err)
}

func TestRecomputeTotalMatchesLedger(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	for _, kind := range []rewards.ActivityKind{
		rewards.ActivityDailyLogin,
		rewards.ActivityAssessment,
		rewards.ActivityContentEngagement,
	} {
		_, err := rewardsService.RecordActivity(ctx, clerkID, kind, nil)
		require.NoError(t, err)
	}

	total, err := rewardsService.RecomputeTotal(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, 40, total)

	ur, err := rewardsService.GetUserRewards(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, total, ur.TotalPoints, "Cached total must match the re-summed ledger")
}

func TestHasActivityToday(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	logged, err := rewardsService.HasActivityToday(ctx, clerkID, rewards.ActivityDailyLogin)
	require.NoError(t, err)
	assert.False(t, logged)

	_, err = rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityDailyLogin, nil)
	require.NoError(t, err)

	logged, err = rewardsService.HasActivityToday(ctx, clerkID, rewards.ActivityDailyLogin)
	require.NoError(t, err)
	assert.True(t, logged)

	otherKind, err := rewardsService.HasActivityToday(ctx, clerkID, rewards.ActivityGame)
	require.NoError(t, err)
	assert.False(t, otherKind, "Check is scoped per activity kind")
}

func TestGetUserRewardsLazyCreate(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))

	clerkID := createTestUser(t, pool, userService)

	ur, err := rewardsService.GetUserRewards(context.Background(), clerkID)
	require.NoError(t, err)
	assert.Equal(t, 0, ur.TotalPoints, "Fresh user starts at zero points")
}

func TestEvaluateBadgesIsIdempotent(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	_, err := rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityAssessment, nil)
	require.NoError(t, err)

	// Whatever the first pass unlocked, the second pass must unlock nothing.
	again, err := rewardsService.EvaluateBadges(ctx, clerkID)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestRewardsSummary(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	userService := NewUserService(pool)
	rewardsService := NewRewardsService(pool, NewNotificationService(pool))

	clerkID := createTestUser(t, pool, userService)
	ctx := context.Background()

	_, err := rewardsService.RecordActivity(ctx, clerkID, rewards.ActivityGame, nil)
	require.NoError(t, err)

	summary, err := rewardsService.GetRewardsSummary(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, 15, summary.TotalPoints)
	require.Len(t, summary.RecentActivities, 1)

	if summary.CurrentMilestone != nil {
		assert.LessOrEqual(t, summary.CurrentMilestone.PointsThreshold, summary.TotalPoints)
	}
	if summary.NextMilestone != nil {
		assert.Greater(t, summary.NextMilestone.PointsThreshold, summary.TotalPoints)
	}
}
