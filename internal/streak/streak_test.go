package streak

import (
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFirstEverActivity(t *testing.T) {
	result := ComputeStreakUpdate(0, 0, nil, date("2024-01-01"))

	if result.CurrentStreak != 1 {
		t.Errorf("Expected current streak 1, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 1 {
		t.Errorf("Expected longest streak 1, got %d", result.LongestStreak)
	}
	if !result.IsNewStreak {
		t.Error("Expected IsNewStreak to be true")
	}
	if result.StreakBroken {
		t.Error("Expected StreakBroken to be false")
	}
}

func TestFirstActivityKeepsLongestStreak(t *testing.T) {
	// A reset user may have history: longest must survive a fresh start.
	result := ComputeStreakUpdate(0, 8, nil, date("2024-01-01"))

	if result.CurrentStreak != 1 {
		t.Errorf("Expected current streak 1, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 8 {
		t.Errorf("Expected longest streak 8, got %d", result.LongestStreak)
	}
}

func TestSameDayIsIdempotent(t *testing.T) {
	today := date("2024-01-02")
	last := date("2024-01-02")

	first := ComputeStreakUpdate(5, 10, &last, today)
	second := ComputeStreakUpdate(first.CurrentStreak, first.LongestStreak, &last, today)

	if first != second {
		t.Errorf("Expected repeated same-day calls to be idempotent: %+v vs %+v", first, second)
	}
	if first.CurrentStreak != 5 || first.LongestStreak != 10 {
		t.Errorf("Expected unchanged streaks, got %+v", first)
	}
	if first.IsNewStreak || first.StreakBroken {
		t.Errorf("Expected no flags on a same-day call, got %+v", first)
	}
}

func TestConsecutiveDayIncrements(t *testing.T) {
	last := date("2024-01-01")
	result := ComputeStreakUpdate(5, 10, &last, date("2024-01-02"))

	if result.CurrentStreak != 6 {
		t.Errorf("Expected current streak 6, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 10 {
		t.Errorf("Expected longest streak 10, got %d", result.LongestStreak)
	}
	if result.IsNewStreak {
		t.Error("Expected IsNewStreak to be false")
	}
	if result.StreakBroken {
		t.Error("Expected StreakBroken to be false")
	}
}

func TestIncrementExtendsLongestStreak(t *testing.T) {
	last := date("2024-01-01")
	result := ComputeStreakUpdate(10, 10, &last, date("2024-01-02"))

	if result.CurrentStreak != 11 {
		t.Errorf("Expected current streak 11, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 11 {
		t.Errorf("Expected longest streak 11, got %d", result.LongestStreak)
	}
}

func TestGapResetsStreak(t *testing.T) {
	last := date("2024-01-01")
	result := ComputeStreakUpdate(5, 5, &last, date("2024-01-03"))

	if result.CurrentStreak != 1 {
		t.Errorf("Expected current streak 1, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 5 {
		t.Errorf("Expected longest streak 5, got %d", result.LongestStreak)
	}
	if !result.IsNewStreak {
		t.Error("Expected IsNewStreak to be true")
	}
	if !result.StreakBroken {
		t.Error("Expected StreakBroken to be true")
	}
}

func TestFutureLastActivityTreatedAsGap(t *testing.T) {
	last := date("2024-02-01")
	result := ComputeStreakUpdate(5, 7, &last, date("2024-01-02"))

	if result.CurrentStreak != 1 {
		t.Errorf("Expected current streak 1, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 7 {
		t.Errorf("Expected longest streak 7, got %d", result.LongestStreak)
	}
	if !result.StreakBroken {
		t.Error("Expected StreakBroken to be true")
	}
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	cases := []struct {
		name    string
		current int
		longest int
		last    string
		today   string
	}{
		{"first activity", 0, 0, "", "2024-01-01"},
		{"same day", 3, 3, "2024-05-10", "2024-05-10"},
		{"increment", 3, 3, "2024-05-10", "2024-05-11"},
		{"increment past longest", 9, 9, "2024-05-10", "2024-05-11"},
		{"gap", 4, 6, "2024-05-01", "2024-05-10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var last *time.Time
			if tc.last != "" {
				d := date(tc.last)
				last = &d
			}

			result := ComputeStreakUpdate(tc.current, tc.longest, last, date(tc.today))
			if result.LongestStreak < result.CurrentStreak {
				t.Errorf("Invariant violated: longest %d < current %d", result.LongestStreak, result.CurrentStreak)
			}
		})
	}
}

func TestNormalizeDateStripsTime(t *testing.T) {
	ts := time.Date(2024, 3, 15, 23, 59, 58, 123, time.UTC)
	normalized := NormalizeDate(ts)

	if normalized.Hour() != 0 || normalized.Minute() != 0 || normalized.Second() != 0 {
		t.Errorf("Expected midnight, got %v", normalized)
	}
	if normalized.Year() != 2024 || normalized.Month() != 3 || normalized.Day() != 15 {
		t.Errorf("Expected same calendar day, got %v", normalized)
	}
}

func TestTimestampsOnSameDayCountAsSameDay(t *testing.T) {
	last := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	today := time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)

	result := ComputeStreakUpdate(2, 4, &last, today)
	if result.CurrentStreak != 2 || result.IsNewStreak || result.StreakBroken {
		t.Errorf("Expected same-day no-op, got %+v", result)
	}
}
