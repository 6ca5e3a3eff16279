package entity

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type WordStatus string

const (
	StatusLearning WordStatus = "learning"
	StatusMastered WordStatus = "mastered"
)

type SessionType string

const (
	SessionFlashcard SessionType = "flashcard"
	SessionQuiz      SessionType = "quiz"
)

type User struct {
	ID                   uuid.UUID `json:"id"`
	FullName             string    `json:"full_name"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	GoogleID             *string   `json:"-"`
	AvatarURL            *string   `json:"avatar_url,omitempty"`
	Bio                  *string   `json:"bio,omitempty"`
	Streak               int       `json:"streak"`
	BestStreak           int       `json:"best_streak"`
	Level                int       `json:"level"`
	DailyGoal            int       `json:"daily_goal"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	SoundEffectsEnabled  bool      `json:"sound_effects_enabled"`
	DarkModeEnabled      bool      `json:"dark_mode_enabled"`
	CreatedAt            time.Time `json:"created_at"`
}

type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

type Word struct {
	ID         uuid.UUID  `json:"id"`
	DeckID     uuid.UUID  `json:"deck_id"`
	Word       string     `json:"word"`
	Definition string     `json:"definition"`
	Example    *string    `json:"example,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
}

type StudySession struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	DeckID          uuid.UUID   `json:"deck_id"`
	SessionType     SessionType `json:"session_type"`
	ScorePercentage *int        `json:"score_percentage,omitempty"`
	WordsReviewed   int         `json:"words_reviewed"`
	DurationSeconds int         `json:"duration_seconds"`
	CompletedAt     time.Time   `json:"completed_at"`
}

type UserWordProgress struct {
	UserID         uuid.UUID  `json:"user_id"`
	WordID         uuid.UUID  `json:"word_id"`
	Status         WordStatus `json:"status"`
	LastReviewedAt time.Time  `json:"last_reviewed_at"`
	CorrectStreak  int        `json:"correct_streak"`
}

type Achievement struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IconName    string    `json:"icon_name"`
}

type UserAchievement struct {
	UserID        uuid.UUID `json:"user_id"`
	AchievementID uuid.UUID `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

// AchievementDetail is a catalog row annotated with the user's unlock state.
type AchievementDetail struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IconName    string     `json:"icon_name"`
	IsUnlocked  bool       `json:"is_unlocked"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

// DeckDetail is a deck with its words and runtime-computed progress figures.
type DeckDetail struct {
	Deck
	Words             []*Word `json:"words"`
	MasteryPercentage float64 `json:"mastery_percentage"`
	WordsMastered     int     `json:"words_mastered"`
	WordsLearning     int     `json:"words_learning"`
	EasyCount         int     `json:"easy_count"`
	MediumCount       int     `json:"medium_count"`
	HardCount         int     `json:"hard_count"`
}

type WeeklyActivity struct {
	Day          string `json:"day"`
	WordsStudied int    `json:"words_studied"`
}

type MonthlyProgress struct {
	Month        string `json:"month"`
	WordsStudied int    `json:"words_studied"`
}

type DifficultyBreakdown struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// DashboardStats is recomputed from session and progress rows on every
// request, nothing here is incrementally maintained.
type DashboardStats struct {
	StudyTimeSeconds    int                 `json:"study_time_seconds"`
	AccuracyRate        float64             `json:"accuracy_rate"`
	TotalWordsMastered  int                 `json:"total_words_mastered"`
	DaysActive          int                 `json:"days_active"`
	WeeklyWordsGoal     int                 `json:"weekly_words_goal"`
	WeeklyWordsProgress int                 `json:"weekly_words_progress"`
	MonthlyProgress     []MonthlyProgress   `json:"monthly_progress"`
	DifficultyBreakdown DifficultyBreakdown `json:"difficulty_breakdown"`
	WeeklyActivity      []WeeklyActivity    `json:"weekly_activity"`
}
