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

type WordsRepository struct {
	conn PgConnection
}

func NewWordsRepo(cfg DBConfig) *WordsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for wordsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for wordsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &WordsRepository{
		conn: pool,
	}
}

func NewWordsRepoWithConn(conn PgConnection) *WordsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for wordsRepo: " + err.Error())
	}
	return &WordsRepository{
		conn: conn,
	}
}

func (wr *WordsRepository) Create(ctx context.Context, word *entity.Word) (uuid.UUID, error) {
	var id uuid.UUID
	row := wr.conn.QueryRow(ctx, `INSERT INTO words (deck_id, word, definition, example, difficulty) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		word.DeckID,
		word.Word,
		word.Definition,
		word.Example,
		word.Difficulty,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrDeckNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating word db error: " + err.Error())
	}
	return id, nil
}

func (wr *WordsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Word, error) {
	var word entity.Word
	word.ID = id
	row := wr.conn.QueryRow(ctx, `SELECT deck_id, word, definition, example, difficulty FROM words WHERE id = $1;`, id)
	if err := row.Scan(&word.DeckID, &word.Word, &word.Definition, &word.Example, (*string)(&word.Difficulty)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrWordNotFound
		}
		return nil, errors.New("getting word by id error: " + err.Error())
	}
	return &word, nil
}

func (wr *WordsRepository) GetByDeckID(ctx context.Context, deckID uuid.UUID) ([]*entity.Word, error) {
	words := make([]*entity.Word, 0)
	// created_at keeps insertion order, id breaks exact-time ties
	rows, err := wr.conn.Query(ctx, `SELECT id, deck_id, word, definition, example, difficulty FROM words WHERE deck_id = $1 ORDER BY created_at, id;`, deckID)
	if err != nil {
		return nil, errors.New("getting words by deck error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		w := entity.Word{}
		err = rows.Scan(&w.ID, &w.DeckID, &w.Word, &w.Definition, &w.Example, (*string)(&w.Difficulty))
		if err != nil {
			return nil, errors.New("unmarshalling word error: " + err.Error())
		}
		words = append(words, &w)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return words, nil
}

func (wr *WordsRepository) Update(ctx context.Context, id uuid.UUID, patch *WordPatch) error {
	if patch == nil {
		return errors.New("patch is nil")
	}
	ct, err := wr.conn.Exec(ctx, `UPDATE words SET word = COALESCE($1, word), definition = COALESCE($2, definition), example = COALESCE($3, example), difficulty = COALESCE($4::word_difficulty, difficulty) WHERE id = $5;`,
		patch.Word,
		patch.Definition,
		patch.Example,
		(*string)(patch.Difficulty),
		id,
	)
	if err != nil {
		return errors.New("error updating word: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrWordNotFound
	}
	return nil
}

func (wr *WordsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := wr.conn.Exec(ctx, `DELETE FROM words WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting word: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrWordNotFound
	}
	return nil
}

func (wr *WordsRepository) CountByDeck(ctx context.Context, deckID uuid.UUID) (int, error) {
	row := wr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM words WHERE deck_id = $1;`, deckID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting deck words: " + err.Error())
	}
	return count, nil
}

func (wr *WordsRepository) CountMastered(ctx context.Context, deckID, userID uuid.UUID) (int, error) {
	row := wr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM user_word_progress p JOIN words w ON w.id = p.word_id WHERE w.deck_id = $1 AND p.user_id = $2 AND p.status = 'mastered';`,
		deckID,
		userID,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting mastered deck words: " + err.Error())
	}
	return count, nil
}

func (wr *WordsRepository) CountByDifficulty(ctx context.Context, deckID uuid.UUID) (entity.DifficultyBreakdown, error) {
	var breakdown entity.DifficultyBreakdown
	rows, err := wr.conn.Query(ctx, `SELECT difficulty, COUNT(*) FROM words WHERE deck_id = $1 GROUP BY difficulty;`, deckID)
	if err != nil {
		return breakdown, errors.New("error counting words by difficulty: " + err.Error())
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
