package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Selsinee/luma-backend/pkg/entity"
)

type RegisterRequest struct {
	FullName string `validate:"required,min=1,max=255"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=72"`
}

type UpdateProfileRequest struct {
	FullName  *string `validate:"omitempty,min=1,max=255"`
	Bio       *string
	AvatarURL *string
}

type UpdateSettingsRequest struct {
	DailyGoal            *int `validate:"omitempty,min=1,max=1000"`
	NotificationsEnabled *bool
	SoundEffectsEnabled  *bool
	DarkModeEnabled      *bool
}

type CreateDeckRequest struct {
	Title       string `validate:"required,printable,min=1,max=255"`
	Description *string
	Category    string `validate:"required,min=1,max=100"`
}

type UpdateDeckRequest struct {
	Title       *string `validate:"omitempty,min=1,max=255"`
	Description *string
	Category    *string `validate:"omitempty,min=1,max=100"`
}

type CreateWordRequest struct {
	Word       string `validate:"required,printable,min=1,max=255"`
	Definition string `validate:"required"`
	Example    *string
	Difficulty entity.Difficulty `validate:"required,oneof=easy medium hard"`
}

type UpdateWordRequest struct {
	Word       *string `validate:"omitempty,min=1,max=255"`
	Definition *string `validate:"omitempty,min=1"`
	Example    *string
	Difficulty *entity.Difficulty `validate:"omitempty,oneof=easy medium hard"`
}

type LogSessionRequest struct {
	DeckID          uuid.UUID          `validate:"required"`
	SessionType     entity.SessionType `validate:"required,oneof=flashcard quiz"`
	ScorePercentage *int               `validate:"omitempty,min=0,max=100"`
	WordsReviewed   int                `validate:"min=0"`
	DurationSeconds int                `validate:"min=0"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type UserServiceI interface {
	// Validates credentials, hashes the password, creates the row.
	// Returns the stored user with its generated ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back the user's data
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Applies only the provided profile fields
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*entity.User, error)
	// Applies only the provided settings fields
	UpdateSettings(ctx context.Context, id uuid.UUID, req *UpdateSettingsRequest) (*entity.User, error)
	// Whole achievement catalog with the user's unlock state
	ListAchievements(ctx context.Context, id uuid.UUID) ([]*entity.AchievementDetail, error)
}

type DeckServiceI interface {
	CreateDeck(ctx context.Context, uid uuid.UUID, req *CreateDeckRequest) (*entity.Deck, error)
	// Lists the user's decks, optionally filtered by category
	GetUserDecks(ctx context.Context, uid uuid.UUID, category *string, pagination PaginationOpts) ([]*entity.Deck, error)
	// Deck with words and runtime mastery figures. Owner only
	GetDeckDetail(ctx context.Context, deckID, userID uuid.UUID) (*entity.DeckDetail, error)
	UpdateDeck(ctx context.Context, deckID, userID uuid.UUID, req *UpdateDeckRequest) (*entity.Deck, error)
	DeleteDeck(ctx context.Context, deckID, userID uuid.UUID) error
}

type WordServiceI interface {
	AddWord(ctx context.Context, deckID, userID uuid.UUID, req *CreateWordRequest) (*entity.Word, error)
	UpdateWord(ctx context.Context, deckID, wordID, userID uuid.UUID, req *UpdateWordRequest) (*entity.Word, error)
	DeleteWord(ctx context.Context, deckID, wordID, userID uuid.UUID) error
}

type StudyServiceI interface {
	// Records a completed session and advances the user's daily streak
	LogSession(ctx context.Context, userID uuid.UUID, req *LogSessionRequest) (*entity.StudySession, error)
	// Resolve-or-create of the (user, word) progress row with the
	// correct_streak rules, then threshold achievement checks
	UpdateWordProgress(ctx context.Context, userID, wordID uuid.UUID, status entity.WordStatus) (*entity.UserWordProgress, error)
}

type StatsServiceI interface {
	// Aggregates the dashboard figures fresh from stored rows
	GetDashboardStats(ctx context.Context, userID uuid.UUID) (*entity.DashboardStats, error)
}
