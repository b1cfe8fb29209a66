package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"moodliftAPI/internal/user"
)

// setupTestDB connects to the test database, skipping the test when no
// database is configured. Tests share the schema with the running app, so
// every test creates its own throwaway user and cleans up after itself.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	godotenv.Load("../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set, skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return pool
}

// createTestUser inserts a throwaway user and registers cleanup. Related
// rows (streaks, ledger, badges, notifications) cascade on delete.
func createTestUser(t *testing.T, pool *pgxpool.Pool, userService *UserService) (clerkID string) {
	t.Helper()

	ctx := context.Background()
	clerkID = "user_test_" + time.Now().Format("20060102150405.000000000")

	_, err := userService.CreateUser(ctx, &user.CreateUserRequest{
		ClerkID:   clerkID,
		Email:     "test_" + clerkID + "@example.com",
		Username:  "testuser_" + clerkID,
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		if err := userService.DeleteUserByClerkID(context.Background(), clerkID); err != nil {
			t.Logf("Warning: failed to cleanup test user: %v", err)
		}
	})

	return clerkID
}
