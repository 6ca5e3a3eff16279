package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/pkg/cleanup"
	"github.com/Selsinee/luma-backend/pkg/entity"
)

type SessionsRepository struct {
	conn PgConnection
}

func NewSessionsRepo(cfg DBConfig) *SessionsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for sessionsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for sessionsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &SessionsRepository{
		conn: pool,
	}
}

func NewSessionsRepoWithConn(conn PgConnection) *SessionsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for sessionsRepo: " + err.Error())
	}
	return &SessionsRepository{
		conn: conn,
	}
}

func (sr *SessionsRepository) Create(ctx context.Context, session *entity.StudySession) error {
	if session == nil {
		return errors.New("session is nil")
	}
	row := sr.conn.QueryRow(ctx, `INSERT INTO study_sessions (user_id, deck_id, session_type, score_percentage, words_reviewed, duration_seconds) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, completed_at;`,
		session.UserID,
		session.DeckID,
		session.SessionType,
		session.ScorePercentage,
		session.WordsReviewed,
		session.DurationSeconds,
	)
	if err := row.Scan(&session.ID, &session.CompletedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrDeckNotFound
			}
		}
		return errors.New("creating session db error: " + err.Error())
	}
	return nil
}

func (sr *SessionsRepository) TotalDuration(ctx context.Context, uid uuid.UUID) (int, error) {
	row := sr.conn.QueryRow(ctx, `SELECT COALESCE(SUM(duration_seconds), 0) FROM study_sessions WHERE user_id = $1;`, uid)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, errors.New("error summing study time: " + err.Error())
	}
	return total, nil
}

func (sr *SessionsRepository) QuizAccuracy(ctx context.Context, uid uuid.UUID) (float64, error) {
	// Average of an empty set is 0, not NULL
	row := sr.conn.QueryRow(ctx, `SELECT COALESCE(AVG(score_percentage), 0) FROM study_sessions WHERE user_id = $1 AND session_type = 'quiz';`, uid)
	var accuracy float64
	if err := row.Scan(&accuracy); err != nil {
		return 0, errors.New("error averaging quiz scores: " + err.Error())
	}
	return accuracy, nil
}

func (sr *SessionsRepository) WordsReviewedSince(ctx context.Context, uid uuid.UUID, since time.Time) (int, error) {
	row := sr.conn.QueryRow(ctx, `SELECT COALESCE(SUM(words_reviewed), 0) FROM study_sessions WHERE user_id = $1 AND completed_at >= $2;`, uid, since)
	var words int
	if err := row.Scan(&words); err != nil {
		return 0, errors.New("error summing reviewed words: " + err.Error())
	}
	return words, nil
}

// WordCountsSince returns raw completion instants so callers can
// attribute sessions to calendar days in one zone of their choosing.
func (sr *SessionsRepository) WordCountsSince(ctx context.Context, uid uuid.UUID, since time.Time) ([]SessionWordCount, error) {
	rows, err := sr.conn.Query(ctx, `SELECT completed_at, words_reviewed FROM study_sessions WHERE user_id = $1 AND completed_at >= $2 ORDER BY completed_at;`,
		uid,
		since,
	)
	if err != nil {
		return nil, errors.New("error listing session word counts: " + err.Error())
	}
	defer rows.Close()
	result := make([]SessionWordCount, 0, 16)
	for rows.Next() {
		var count SessionWordCount
		if err = rows.Scan(&count.CompletedAt, &count.Words); err != nil {
			return nil, errors.New("session word count parsing error: " + err.Error())
		}
		result = append(result, count)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected session rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (sr *SessionsRepository) LastCompletedAt(ctx context.Context, uid uuid.UUID) (*time.Time, error) {
	row := sr.conn.QueryRow(ctx, `SELECT completed_at FROM study_sessions WHERE user_id = $1 ORDER BY completed_at DESC LIMIT 1;`, uid)
	var completedAt time.Time
	if err := row.Scan(&completedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.New("getting last session time error: " + err.Error())
	}
	return &completedAt, nil
}
