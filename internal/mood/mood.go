package mood

import (
	"time"

	"github.com/google/uuid"
)

type MoodType string

const (
	MoodStressed MoodType = "stressed"
	MoodSad      MoodType = "sad"
	MoodAnxious  MoodType = "anxious"
	MoodBored    MoodType = "bored"
	MoodHappy    MoodType = "happy"
)

// IsValid reports whether m is one of the known mood types.
func (m MoodType) IsValid() bool {
	switch m {
	case MoodStressed, MoodSad, MoodAnxious, MoodBored, MoodHappy:
		return true
	}
	return false
}

type DailyMood struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Mood       MoodType  `json:"mood" db:"mood"`
	MoodDate   time.Time `json:"mood_date" db:"mood_date"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}

type RecordMoodRequest struct {
	Mood MoodType `json:"mood" validate:"required"`
}

type GameRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Reason      string `json:"reason"`
	Emoji       string `json:"emoji"`
}

var moodRecommendations = map[MoodType][]GameRecommendation{
	MoodStressed: {
		{
			Title:       "Box Breathing",
			Description: "Navy SEAL technique for instant calm",
			URL:         "/games/box-breathing",
			Reason:      "Box breathing is proven to lower cortisol levels",
			Emoji:       "📦",
		},
		{
			Title:       "Physical Grounding",
			Description: "Use physical sensations to calm your nervous system",
			URL:         "/games/physical-grounding",
			Reason:      "Grounding techniques interrupt stress cycles",
			Emoji:       "❄️",
		},
		{
			Title:       "Diaphragmatic Breathing",
			Description: "Deep belly breathing for nervous system calm",
			URL:         "/games/diaphragmatic-breathing",
			Reason:      "Activates parasympathetic nervous system",
			Emoji:       "🫁",
		},
	},
	MoodSad: {
		{
			Title:       "Name the Moment Technique",
			Description: "Practice self-reassurance with compassionate affirmations",
			URL:         "/games/name-the-moment",
			Reason:      "Self-compassion uplifts mood and self-esteem",
			Emoji:       "💝",
		},
		{
			Title:       "Self-Soothing (DBT Technique)",
			Description: "Use comforting sensations to soothe your emotions",
			URL:         "/games/self-soothing",
			Reason:      "Sensory grounding improves emotional state",
			Emoji:       "🌸",
		},
		{
			Title:       "Diaphragmatic Breathing",
			Description: "Deep belly breathing to lift your mood",
			URL:         "/games/diaphragmatic-breathing",
			Reason:      "Calming breathing reduces sadness",
			Emoji:       "🫁",
		},
	},
	MoodAnxious: {
		{
			Title:       "Cognitive Grounding",
			Description: "Engage your mind to shift focus and reduce anxiety",
			URL:         "/games/cognitive-grounding",
			Reason:      "Mental exercises interrupt anxiety spirals",
			Emoji:       "🧠",
		},
		{
			Title:       "Describe the Room Technique",
			Description: "Ground yourself using all five senses",
			URL:         "/games/describe-room",
			Reason:      "Sensory awareness reduces anxiety symptoms",
			Emoji:       "👁️",
		},
		{
			Title:       "Box Breathing",
			Description: "Structured breathing to regain control",
			URL:         "/games/box-breathing",
			Reason:      "Rhythmic breathing settles racing thoughts",
			Emoji:       "📦",
		},
	},
	MoodBored: {
		{
			Title:       "Cognitive Grounding",
			Description: "Give your mind a structured challenge",
			URL:         "/games/cognitive-grounding",
			Reason:      "Mental engagement counters restlessness",
			Emoji:       "🧠",
		},
		{
			Title:       "Describe the Room Technique",
			Description: "Rediscover your surroundings through your senses",
			URL:         "/games/describe-room",
			Reason:      "Curiosity exercises make the familiar interesting",
			Emoji:       "👁️",
		},
	},
	MoodHappy: {
		{
			Title:       "Name the Moment Technique",
			Description: "Anchor the good feeling with a mindful pause",
			URL:         "/games/name-the-moment",
			Reason:      "Savoring positive moments extends them",
			Emoji:       "💝",
		},
		{
			Title:       "Self-Soothing (DBT Technique)",
			Description: "Build a comfort toolkit while you feel good",
			URL:         "/games/self-soothing",
			Reason:      "Practicing while calm makes techniques stick",
			Emoji:       "🌸",
		},
	},
}

// RecommendationsFor returns the curated game list for a mood. Unknown
// moods get an empty list rather than an error.
func RecommendationsFor(m MoodType) []GameRecommendation {
	return moodRecommendations[m]
}
