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

type DecksRepository struct {
	conn PgConnection
}

func NewDecksRepo(cfg DBConfig) *DecksRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for decksRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for decksRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &DecksRepository{
		conn: pool,
	}
}

func NewDecksRepoWithConn(conn PgConnection) *DecksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for decksRepo: " + err.Error())
	}
	return &DecksRepository{
		conn: conn,
	}
}

func (dr *DecksRepository) Create(ctx context.Context, deck *entity.Deck) (uuid.UUID, error) {
	var id uuid.UUID
	row := dr.conn.QueryRow(ctx, `INSERT INTO decks (user_id, title, description, category) VALUES ($1, $2, $3, $4) RETURNING id;`,
		deck.UserID,
		deck.Title,
		deck.Description,
		deck.Category,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating deck db error: " + err.Error())
	}
	return id, nil
}

func (dr *DecksRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Deck, error) {
	var deck entity.Deck
	deck.ID = id
	row := dr.conn.QueryRow(ctx, `SELECT user_id, title, description, category, created_at FROM decks WHERE id = $1;`, id)
	if err := row.Scan(&deck.UserID, &deck.Title, &deck.Description, &deck.Category, &deck.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDeckNotFound
		}
		return nil, errors.New("getting deck by id error: " + err.Error())
	}
	return &deck, nil
}

func (dr *DecksRepository) GetByUserID(ctx context.Context, uid uuid.UUID, category *string, limit, offset int) ([]*entity.Deck, error) {
	decks := make([]*entity.Deck, 0)
	rows, err := dr.conn.Query(ctx, `SELECT id, user_id, title, description, category, created_at FROM decks WHERE user_id = $1 AND ($2::varchar IS NULL OR category = $2) ORDER BY created_at LIMIT $3 OFFSET $4;`,
		uid, category, limit, offset)
	if err != nil {
		return nil, errors.New("getting decks by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		d := entity.Deck{}
		err = rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.Category, &d.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling deck error: " + err.Error())
		}
		decks = append(decks, &d)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return decks, nil
}

func (dr *DecksRepository) Update(ctx context.Context, id uuid.UUID, patch *DeckPatch) error {
	if patch == nil {
		return errors.New("patch is nil")
	}
	ct, err := dr.conn.Exec(ctx, `UPDATE decks SET title = COALESCE($1, title), description = COALESCE($2, description), category = COALESCE($3, category) WHERE id = $4;`,
		patch.Title,
		patch.Description,
		patch.Category,
		id,
	)
	if err != nil {
		return errors.New("error updating deck: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDeckNotFound
	}
	return nil
}

func (dr *DecksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := dr.conn.Exec(ctx, `DELETE FROM decks WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting deck: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDeckNotFound
	}
	return nil
}
