package rewards

import (
	"testing"

	"github.com/google/uuid"
)

func TestPointsCatalog(t *testing.T) {
	cases := []struct {
		kind   ActivityKind
		points int
	}{
		{ActivityDailyLogin, 10},
		{ActivityAssessment, 25},
		{ActivityGame, 15},
		{ActivityContentEngagement, 5},
	}

	for _, tc := range cases {
		points, ok := PointsFor(tc.kind)
		if !ok {
			t.Errorf("Expected %s to be a known activity kind", tc.kind)
			continue
		}
		if points != tc.points {
			t.Errorf("Expected %d points for %s, got %d", tc.points, tc.kind, points)
		}
	}
}

func TestPointsForUnknownKind(t *testing.T) {
	if _, ok := PointsFor("premium_purchase"); ok {
		t.Error("Expected unknown activity kind to be rejected")
	}
	if _, ok := PointsFor(""); ok {
		t.Error("Expected empty activity kind to be rejected")
	}
}

func badge(name string, pointsRequired int) *Badge {
	return &Badge{
		ID:             uuid.New(),
		Name:           name,
		PointsRequired: pointsRequired,
	}
}

func TestNewlyUnlockedQualifyingBadges(t *testing.T) {
	catalog := []*Badge{
		badge("First Steps", 10),
		badge("Getting Going", 50),
		badge("Committed", 200),
	}

	unlocked := NewlyUnlocked(catalog, map[uuid.UUID]bool{}, 60)
	if len(unlocked) != 2 {
		t.Fatalf("Expected 2 unlocked badges, got %d", len(unlocked))
	}
	for _, b := range unlocked {
		if b.PointsRequired > 60 {
			t.Errorf("Badge %s requires %d points but only 60 available", b.Name, b.PointsRequired)
		}
	}
}

func TestNewlyUnlockedSkipsHeldBadges(t *testing.T) {
	first := badge("First Steps", 10)
	second := badge("Getting Going", 50)
	catalog := []*Badge{first, second}
	held := map[uuid.UUID]bool{first.ID: true}

	unlocked := NewlyUnlocked(catalog, held, 100)
	if len(unlocked) != 1 {
		t.Fatalf("Expected 1 unlocked badge, got %d", len(unlocked))
	}
	if unlocked[0].ID != second.ID {
		t.Errorf("Expected badge %s, got %s", second.Name, unlocked[0].Name)
	}
}

func TestNewlyUnlockedIsIdempotent(t *testing.T) {
	catalog := []*Badge{badge("First Steps", 10)}
	held := map[uuid.UUID]bool{}

	unlocked := NewlyUnlocked(catalog, held, 25)
	if len(unlocked) != 1 {
		t.Fatalf("Expected 1 unlocked badge, got %d", len(unlocked))
	}

	held[unlocked[0].ID] = true
	again := NewlyUnlocked(catalog, held, 40)
	if len(again) != 0 {
		t.Errorf("Expected no badges on re-evaluation, got %d", len(again))
	}
}

func TestNewlyUnlockedThresholdIsInclusive(t *testing.T) {
	catalog := []*Badge{badge("First Steps", 10)}

	if unlocked := NewlyUnlocked(catalog, nil, 10); len(unlocked) != 1 {
		t.Errorf("Expected exact threshold to unlock, got %d badges", len(unlocked))
	}
	if unlocked := NewlyUnlocked(catalog, nil, 9); len(unlocked) != 0 {
		t.Errorf("Expected 9 points to unlock nothing, got %d badges", len(unlocked))
	}
}

func milestone(level int, threshold int) *Milestone {
	return &Milestone{
		ID:              uuid.New(),
		Level:           level,
		PointsThreshold: threshold,
	}
}

func TestCurrentMilestone(t *testing.T) {
	milestones := []*Milestone{
		milestone(1, 0),
		milestone(2, 100),
		milestone(3, 250),
	}

	cases := []struct {
		total int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{9999, 3},
	}

	for _, tc := range cases {
		current := CurrentMilestone(milestones, tc.total)
		if current == nil {
			t.Errorf("Expected a milestone for %d points, got nil", tc.total)
			continue
		}
		if current.Level != tc.level {
			t.Errorf("Expected level %d at %d points, got %d", tc.level, tc.total, current.Level)
		}
	}
}

func TestCurrentMilestoneBelowAll(t *testing.T) {
	milestones := []*Milestone{milestone(1, 50)}
	if current := CurrentMilestone(milestones, 10); current != nil {
		t.Errorf("Expected nil below every threshold, got level %d", current.Level)
	}
}

func TestNextMilestone(t *testing.T) {
	milestones := []*Milestone{
		milestone(1, 0),
		milestone(2, 100),
		milestone(3, 250),
	}

	cases := []struct {
		total int
		level int
	}{
		{0, 2},
		{99, 2},
		{100, 3},
		{249, 3},
	}

	for _, tc := range cases {
		next := NextMilestone(milestones, tc.total)
		if next == nil {
			t.Errorf("Expected a next milestone for %d points, got nil", tc.total)
			continue
		}
		if next.Level != tc.level {
			t.Errorf("Expected next level %d at %d points, got %d", tc.level, tc.total, next.Level)
		}
	}
}

func TestNextMilestoneAtTop(t *testing.T) {
	milestones := []*Milestone{milestone(1, 0), milestone(2, 100)}
	if next := NextMilestone(milestones, 100); next != nil {
		t.Errorf("Expected nil past the top threshold, got level %d", next.Level)
	}
}

func TestMilestoneThresholdTies(t *testing.T) {
	milestones := []*Milestone{
		milestone(2, 100),
		milestone(3, 100),
	}

	current := CurrentMilestone(milestones, 150)
	if current == nil || current.Level != 3 {
		t.Errorf("Expected tie to resolve to highest level, got %+v", current)
	}

	next := NextMilestone(milestones, 50)
	if next == nil || next.Level != 2 {
		t.Errorf("Expected tie to resolve to lowest level, got %+v", next)
	}
}

func TestCurrentAndNextNeverOverlap(t *testing.T) {
	milestones := []*Milestone{
		milestone(1, 0),
		milestone(2, 100),
		milestone(3, 250),
		milestone(4, 500),
	}

	for total := 0; total <= 600; total += 25 {
		current := CurrentMilestone(milestones, total)
		next := NextMilestone(milestones, total)

		if current != nil && current.PointsThreshold > total {
			t.Errorf("Current milestone at %d points has threshold %d", total, current.PointsThreshold)
		}
		if next != nil && next.PointsThreshold <= total {
			t.Errorf("Next milestone at %d points has threshold %d", total, next.PointsThreshold)
		}
		if current != nil && next != nil && current.ID == next.ID {
			t.Errorf("Same milestone returned as current and next at %d points", total)
		}
	}
}
