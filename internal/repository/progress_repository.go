package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/pkg/cleanup"
	"github.com/Selsinee/luma-backend/pkg/entity"
)

type ProgressRepository struct {
	conn PgConnection
}

func NewProgressRepo(cfg DBConfig) *ProgressRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for progressRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for progressRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ProgressRepository{
		conn: pool,
	}
}

func NewProgressRepoWithConn(conn PgConnection) *ProgressRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for progressRepo: " + err.Error())
	}
	return &ProgressRepository{
		conn: conn,
	}
}

func (pr *ProgressRepository) Get(ctx context.Context, userID, wordID uuid.UUID) (*entity.UserWordProgress, error) {
	progress := entity.UserWordProgress{
		UserID: userID,
		WordID: wordID,
	}
	row := pr.conn.QueryRow(ctx, `SELECT status, last_reviewed_at, correct_streak FROM user_word_progress WHERE user_id = $1 AND word_id = $2;`,
		userID,
		wordID,
	)
	if err := row.Scan((*string)(&progress.Status), &progress.LastReviewedAt, &progress.CorrectStreak); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrProgressNotFound
		}
		return nil, errors.New("getting word progress error: " + err.Error())
	}
	return &progress, nil
}

func (pr *ProgressRepository) Create(ctx context.Context, progress *entity.UserWordProgress) error {
	if progress == nil {
		return errors.New("progress is nil")
	}
	row := pr.conn.QueryRow(ctx, `INSERT INTO user_word_progress (user_id, word_id, status, correct_streak) VALUES ($1, $2, $3, $4) RETURNING last_reviewed_at;`,
		progress.UserID,
		progress.WordID,
		progress.Status,
		progress.CorrectStreak,
	)
	if err := row.Scan(&progress.LastReviewedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrProgressExists
			// FK violation
			case "23503":
				return errorvalues.ErrWordNotFound
			}
		}
		return errors.New("creating word progress error: " + err.Error())
	}
	return nil
}

func (pr *ProgressRepository) Update(ctx context.Context, progress *entity.UserWordProgress) error {
	if progress == nil {
		return errors.New("progress is nil")
	}
	row := pr.conn.QueryRow(ctx, `UPDATE user_word_progress SET status = $1, correct_streak = $2, last_reviewed_at = NOW() WHERE user_id = $3 AND word_id = $4 RETURNING last_reviewed_at;`,
		progress.Status,
		progress.CorrectStreak,
		progress.UserID,
		progress.WordID,
	)
	if err := row.Scan(&progress.LastReviewedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorvalues.ErrProgressNotFound
		}
		return errors.New("updating word progress error: " + err.Error())
	}
	return nil
}

func (pr *ProgressRepository) CountMastered(ctx context.Context, uid uuid.UUID) (int, error) {
	row := pr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM user_word_progress WHERE user_id = $1 AND status = 'mastered';`, uid)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting mastered words: " + err.Error())
	}
	return count, nil
}

func (pr *ProgressRepository) DifficultyBreakdown(ctx context.Context, uid uuid.UUID) (entity.DifficultyBreakdown, error) {
	var breakdown entity.DifficultyBreakdown
	rows, err := pr.conn.Query(ctx, `SELECT w.difficulty, COUNT(*) FROM user_word_progress p JOIN words w ON w.id = p.word_id WHERE p.user_id = $1 GROUP BY w.difficulty;`, uid)
	if err != nil {
		return breakdown, errors.New("error tallying progress by difficulty: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var difficulty string
		var count int
		if err = rows.Scan(&difficulty, &count); err != nil {
			return breakdown, errors.New("difficulty row parsing error: " + err.Error())
		}
		switch entity.Difficulty(difficulty) {
		case entity.DifficultyEasy:
			breakdown.Easy = count
		case entity.DifficultyMedium:
			breakdown.Medium = count
		case entity.DifficultyHard:
			breakdown.Hard = count
		}
	}
	if rows.Err() != nil {
		return breakdown, errors.New("unexpected difficulty rows error: " + rows.Err().Error())
	}
	return breakdown, nil
}
