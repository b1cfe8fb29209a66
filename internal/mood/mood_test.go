package mood

import "testing"

func TestMoodTypeValidation(t *testing.T) {
	valid := []MoodType{MoodStressed, MoodSad, MoodAnxious, MoodBored, MoodHappy}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("Expected %s to be valid", m)
		}
	}

	invalid := []MoodType{"", "angry", "HAPPY", "happy "}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("Expected %q to be invalid", m)
		}
	}
}

func TestEveryMoodHasRecommendations(t *testing.T) {
	moods := []MoodType{MoodStressed, MoodSad, MoodAnxious, MoodBored, MoodHappy}
	for _, m := range moods {
		recs := RecommendationsFor(m)
		if len(recs) == 0 {
			t.Errorf("Expected recommendations for %s, got none", m)
		}
		for _, rec := range recs {
			if rec.Title == "" || rec.URL == "" {
				t.Errorf("Incomplete recommendation for %s: %+v", m, rec)
			}
		}
	}
}

func TestUnknownMoodGetsEmptyRecommendations(t *testing.T) {
	if recs := RecommendationsFor("confused"); len(recs) != 0 {
		t.Errorf("Expected empty list for unknown mood, got %d entries", len(recs))
	}
}
