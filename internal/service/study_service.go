package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/internal/repository"
	"github.com/Selsinee/luma-backend/pkg/entity"
)

// Mastered-word thresholds of the seeded achievement catalog.
var masteryAchievements = []struct {
	Title     string
	Threshold int
}{
	{Title: "First Steps", Threshold: 10},
	{Title: "Word Master", Threshold: 100},
}

type StudyService struct {
	decksRepo        repository.DecksRepositoryI
	wordsRepo        repository.WordsRepositoryI
	sessionsRepo     repository.SessionsRepositoryI
	progressRepo     repository.ProgressRepositoryI
	usersRepo        repository.UsersRepositoryI
	achievementsRepo repository.AchievementsRepositoryI
}

func NewStudyService(
	decksRepo repository.DecksRepositoryI,
	wordsRepo repository.WordsRepositoryI,
	sessionsRepo repository.SessionsRepositoryI,
	progressRepo repository.ProgressRepositoryI,
	usersRepo repository.UsersRepositoryI,
	achievementsRepo repository.AchievementsRepositoryI,
) *StudyService {
	if decksRepo == nil || wordsRepo == nil || sessionsRepo == nil ||
		progressRepo == nil || usersRepo == nil || achievementsRepo == nil {
		log.Fatal("provided nil repos to study service")
	}
	return &StudyService{
		decksRepo:        decksRepo,
		wordsRepo:        wordsRepo,
		sessionsRepo:     sessionsRepo,
		progressRepo:     progressRepo,
		usersRepo:        usersRepo,
		achievementsRepo: achievementsRepo,
	}
}

func (serv *StudyService) LogSession(ctx context.Context, userID uuid.UUID, req *LogSessionRequest) (*entity.StudySession, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidInput, err)
	}
	deck, err := serv.decksRepo.GetByID(ctx, req.DeckID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeckNotFound) {
			return nil, err
		}
		return nil, errors.New("decks repository error: " + err.Error())
	}
	if deck.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	// Previous session time is read before the insert so the new row
	// doesn't shadow it.
	lastCompleted, err := serv.sessionsRepo.LastCompletedAt(ctx, userID)
	if err != nil {
		return nil, errors.New("sessions repository error: " + err.Error())
	}
	session := entity.StudySession{
		UserID:          userID,
		DeckID:          req.DeckID,
		SessionType:     req.SessionType,
		ScorePercentage: req.ScorePercentage,
		WordsReviewed:   req.WordsReviewed,
		DurationSeconds: req.DurationSeconds,
	}
	if err = serv.sessionsRepo.Create(ctx, &session); err != nil {
		return nil, errors.New("sessions repository error: " + err.Error())
	}
	if err = serv.advanceDailyStreak(ctx, userID, lastCompleted, session.CompletedAt); err != nil {
		// The session itself is stored, a failed streak write only
		// delays the counter until the next session.
		slog.Warn("daily streak update failed", slog.String("error", err.Error()))
	}
	return &session, nil
}

func (serv *StudyService) advanceDailyStreak(ctx context.Context, userID uuid.UUID, lastCompleted *time.Time, now time.Time) error {
	user, err := serv.usersRepo.FindByID(ctx, userID)
	if err != nil {
		return errors.New("users repository error: " + err.Error())
	}
	today := truncateToDay(now)
	streak := 1
	if lastCompleted != nil {
		switch truncateToDay(*lastCompleted) {
		case today:
			streak = user.Streak
			if streak < 1 {
				streak = 1
			}
		case today.AddDate(0, 0, -1):
			streak = user.Streak + 1
		}
	}
	best := user.BestStreak
	if streak > best {
		best = streak
	}
	if streak == user.Streak && best == user.BestStreak {
		return nil
	}
	return serv.usersRepo.UpdateStreak(ctx, userID, streak, best)
}

func (serv *StudyService) UpdateWordProgress(ctx context.Context, userID, wordID uuid.UUID, status entity.WordStatus) (*entity.UserWordProgress, error) {
	if status != entity.StatusLearning && status != entity.StatusMastered {
		return nil, errors.Join(errorvalues.ErrInvalidInput, errors.New("unknown word status: "+string(status)))
	}
	word, err := serv.wordsRepo.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWordNotFound) {
			return nil, err
		}
		return nil, errors.New("words repository error: " + err.Error())
	}
	deck, err := serv.decksRepo.GetByID(ctx, word.DeckID)
	if err != nil {
		return nil, errors.New("decks repository error: " + err.Error())
	}
	if deck.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	progress, err := serv.progressRepo.Get(ctx, userID, wordID)
	switch {
	case err == nil:
		progress.Status = status
		// Re-marking a mastered word still bumps the streak, any other
		// status resets it.
		if status == entity.StatusMastered {
			progress.CorrectStreak++
		} else {
			progress.CorrectStreak = 0
		}
		if err = serv.progressRepo.Update(ctx, progress); err != nil {
			return nil, errors.New("progress repository error: " + err.Error())
		}
	case errors.Is(err, errorvalues.ErrProgressNotFound):
		progress = &entity.UserWordProgress{
			UserID: userID,
			WordID: wordID,
			Status: status,
		}
		if status == entity.StatusMastered {
			progress.CorrectStreak = 1
		}
		if err = serv.progressRepo.Create(ctx, progress); err != nil {
			return nil, errors.New("progress repository error: " + err.Error())
		}
	default:
		return nil, errors.New("progress repository error: " + err.Error())
	}
	if status == entity.StatusMastered {
		if err = serv.checkMasteryAchievements(ctx, userID); err != nil {
			slog.Warn("achievement check failed", slog.String("error", err.Error()))
		}
	}
	return progress, nil
}

func (serv *StudyService) checkMasteryAchievements(ctx context.Context, userID uuid.UUID) error {
	mastered, err := serv.progressRepo.CountMastered(ctx, userID)
	if err != nil {
		return errors.New("progress repository error: " + err.Error())
	}
	for _, a := range masteryAchievements {
		if mastered < a.Threshold {
			continue
		}
		achievement, err := serv.achievementsRepo.FindByTitle(ctx, a.Title)
		if err != nil {
			if errors.Is(err, errorvalues.ErrAchievementNotFound) {
				continue
			}
			return errors.New("achievements repository error: " + err.Error())
		}
		if err = serv.achievementsRepo.Award(ctx, userID, achievement.ID); err != nil {
			return errors.New("achievements repository error: " + err.Error())
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
