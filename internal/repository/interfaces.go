package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Selsinee/luma-backend/pkg/entity"
)

// Patch types carry only the fields present in an update payload.
// A nil field means "leave the stored value untouched".

type UserProfilePatch struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}

type UserSettingsPatch struct {
	DailyGoal            *int
	NotificationsEnabled *bool
	SoundEffectsEnabled  *bool
	DarkModeEnabled      *bool
}

type DeckPatch struct {
	Title       *string
	Description *string
	Category    *string
}

type WordPatch struct {
	Word       *string
	Definition *string
	Example    *string
	Difficulty *entity.Difficulty
}

// SessionWordCount pairs a session's completion instant with its
// reviewed-words figure.
type SessionWordCount struct {
	CompletedAt time.Time
	Words       int
}

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Applies present profile fields only
	UpdateProfile(ctx context.Context, uid uuid.UUID, patch *UserProfilePatch) error
	// Applies present settings fields only
	UpdateSettings(ctx context.Context, uid uuid.UUID, patch *UserSettingsPatch) error
	// Stores recalculated daily streak counters
	UpdateStreak(ctx context.Context, uid uuid.UUID, streak, bestStreak int) error
	// Deletes user with owned decks, sessions and progress rows
	Delete(ctx context.Context, uid uuid.UUID) error
}

type DecksRepositoryI interface {
	// Creates new deck. Only UserID, Title, Description, Category are read
	Create(ctx context.Context, deck *entity.Deck) (uuid.UUID, error)
	// Searches deck with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Deck, error)
	// Lists decks owned by user. Category filters by equality when non-nil
	GetByUserID(ctx context.Context, uid uuid.UUID, category *string, limit, offset int) ([]*entity.Deck, error)
	// Applies present deck fields only
	Update(ctx context.Context, id uuid.UUID, patch *DeckPatch) error
	// Deletes deck with id. Words and sessions cascade in the database
	Delete(ctx context.Context, id uuid.UUID) error
}

type WordsRepositoryI interface {
	// Creates new word inside its deck
	Create(ctx context.Context, word *entity.Word) (uuid.UUID, error)
	// Searches word with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Word, error)
	// Lists all words of a deck
	GetByDeckID(ctx context.Context, deckID uuid.UUID) ([]*entity.Word, error)
	// Applies present word fields only
	Update(ctx context.Context, id uuid.UUID, patch *WordPatch) error
	// Deletes word with id
	Delete(ctx context.Context, id uuid.UUID) error
	// Returns count of all words in a deck
	CountByDeck(ctx context.Context, deckID uuid.UUID) (int, error)
	// Returns count of deck words the user has mastered
	CountMastered(ctx context.Context, deckID, userID uuid.UUID) (int, error)
	// Tallies deck words per difficulty, independent of progress
	CountByDifficulty(ctx context.Context, deckID uuid.UUID) (entity.DifficultyBreakdown, error)
}

type SessionsRepositoryI interface {
	// Stores a completed session, fills generated ID and CompletedAt
	Create(ctx context.Context, session *entity.StudySession) error
	// Sum of duration_seconds over all user's sessions, 0 if none
	TotalDuration(ctx context.Context, uid uuid.UUID) (int, error)
	// Average score over quiz sessions only, 0 if none
	QuizAccuracy(ctx context.Context, uid uuid.UUID) (float64, error)
	// Sum of words_reviewed over sessions completed at or after since
	WordsReviewedSince(ctx context.Context, uid uuid.UUID, since time.Time) (int, error)
	// Completion instants with reviewed-word counts at or after since,
	// chronological. Calendar attribution belongs to the caller
	WordCountsSince(ctx context.Context, uid uuid.UUID, since time.Time) ([]SessionWordCount, error)
	// Completion time of the user's most recent session, nil if none
	LastCompletedAt(ctx context.Context, uid uuid.UUID) (*time.Time, error)
}

type ProgressRepositoryI interface {
	// Searches progress row by its composite key
	Get(ctx context.Context, userID, wordID uuid.UUID) (*entity.UserWordProgress, error)
	// Creates progress row, fills LastReviewedAt
	Create(ctx context.Context, progress *entity.UserWordProgress) error
	// Rewrites status and correct_streak, touches last_reviewed_at
	Update(ctx context.Context, progress *entity.UserWordProgress) error
	// Count of the user's mastered words across all decks
	CountMastered(ctx context.Context, uid uuid.UUID) (int, error)
	// Tallies the user's progress rows by the word's difficulty
	DifficultyBreakdown(ctx context.Context, uid uuid.UUID) (entity.DifficultyBreakdown, error)
}

type AchievementsRepositoryI interface {
	// Lists the whole catalog with the user's unlock state
	ListForUser(ctx context.Context, uid uuid.UUID) ([]*entity.AchievementDetail, error)
	// Searches catalog row by its unique title
	FindByTitle(ctx context.Context, title string) (*entity.Achievement, error)
	// Grants achievement to user, no-op when already earned
	Award(ctx context.Context, uid, achievementID uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
