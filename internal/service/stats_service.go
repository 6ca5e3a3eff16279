package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/internal/repository"
	"github.com/Selsinee/luma-backend/pkg/entity"
)

const (
	monthlyWindowDays = 180
	weeklyWindowDays  = 7
	daysPerWeek       = 7
)

// StatsService computes the dashboard figures fresh from session and
// progress rows on every call. Nothing is cached or incrementally
// maintained, so any row change shows up in the next fetch.
type StatsService struct {
	usersRepo    repository.UsersRepositoryI
	sessionsRepo repository.SessionsRepositoryI
	progressRepo repository.ProgressRepositoryI
}

func NewStatsService(
	usersRepo repository.UsersRepositoryI,
	sessionsRepo repository.SessionsRepositoryI,
	progressRepo repository.ProgressRepositoryI,
) *StatsService {
	if usersRepo == nil || sessionsRepo == nil || progressRepo == nil {
		log.Fatal("provided nil repos to stats service")
	}
	return &StatsService{
		usersRepo:    usersRepo,
		sessionsRepo: sessionsRepo,
		progressRepo: progressRepo,
	}
}

func (serv *StatsService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*entity.DashboardStats, error) {
	user, err := serv.usersRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("users repository error: " + err.Error())
	}
	now := time.Now()

	studyTime, err := serv.sessionsRepo.TotalDuration(ctx, userID)
	if err != nil {
		return nil, errors.New("sessions repository error: " + err.Error())
	}
	accuracy, err := serv.sessionsRepo.QuizAccuracy(ctx, userID)
	if err != nil {
		return nil, errors.New("sessions repository error: " + err.Error())
	}
	mastered, err := serv.progressRepo.CountMastered(ctx, userID)
	if err != nil {
		return nil, errors.New("progress repository error: " + err.Error())
	}
	weeklyProgress, err := serv.sessionsRepo.WordsReviewedSince(ctx, userID, startOfWeek(now))
	if err != nil {
		return nil, errors.New("sessions repository error: " + err.Error())
	}
	sessions, err := serv.sessionsRepo.WordCountsSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, errors.New("sessions repository error: " + err.Error())
	}
	breakdown, err := serv.progressRepo.DifficultyBreakdown(ctx, userID)
	if err != nil {
		return nil, errors.New("progress repository error: " + err.Error())
	}

	return &entity.DashboardStats{
		StudyTimeSeconds:    studyTime,
		AccuracyRate:        accuracy,
		TotalWordsMastered:  mastered,
		DaysActive:          countActiveDays(sessions),
		WeeklyWordsGoal:     user.DailyGoal * daysPerWeek,
		WeeklyWordsProgress: weeklyProgress,
		MonthlyProgress:     monthlyProgress(sessions, now),
		DifficultyBreakdown: breakdown,
		WeeklyActivity:      weeklyActivity(sessions, now),
	}, nil
}

// Calendar attribution of sessions happens here, not in SQL, so every
// figure dates sessions in one zone: the server's local one. The
// database connection may render timestamps in any zone it likes.

// countActiveDays counts distinct local calendar dates with at least
// one session.
func countActiveDays(sessions []repository.SessionWordCount) int {
	days := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		days[s.CompletedAt.Local().Format(time.DateOnly)] = struct{}{}
	}
	return len(days)
}

// monthlyProgress groups the trailing 180 days by calendar month.
// Months with no sessions are absent from the result.
func monthlyProgress(sessions []repository.SessionWordCount, now time.Time) []entity.MonthlyProgress {
	since := now.AddDate(0, 0, -monthlyWindowDays)
	totals := make(map[string]int)
	order := make([]time.Time, 0, 6)
	for _, s := range sessions {
		if s.CompletedAt.Before(since) {
			continue
		}
		month := truncateToMonth(s.CompletedAt.Local())
		key := month.Format("2006-01")
		if _, seen := totals[key]; !seen {
			order = append(order, month)
		}
		totals[key] += s.Words
	}
	result := make([]entity.MonthlyProgress, 0, len(order))
	for _, month := range order {
		result = append(result, entity.MonthlyProgress{
			Month:        month.Month().String()[:3],
			WordsStudied: totals[month.Format("2006-01")],
		})
	}
	return result
}

// weeklyActivity always yields exactly 7 buckets, from 6 days ago
// through today, with zeroes for idle days.
func weeklyActivity(sessions []repository.SessionWordCount, now time.Time) []entity.WeeklyActivity {
	windowStart := truncateToDay(now).AddDate(0, 0, -(weeklyWindowDays - 1))
	byDate := make(map[string]int, weeklyWindowDays)
	for _, s := range sessions {
		completed := s.CompletedAt.Local()
		if completed.Before(windowStart) {
			continue
		}
		byDate[completed.Format(time.DateOnly)] += s.Words
	}
	result := make([]entity.WeeklyActivity, 0, weeklyWindowDays)
	for i := 0; i < weeklyWindowDays; i++ {
		day := windowStart.AddDate(0, 0, i)
		result = append(result, entity.WeeklyActivity{
			Day:          day.Weekday().String()[:3],
			WordsStudied: byDate[day.Format(time.DateOnly)],
		})
	}
	return result
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfWeek is the most recent Monday midnight at or before t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return truncateToDay(t).AddDate(0, 0, -offset)
}
