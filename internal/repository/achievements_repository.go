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

type AchievementsRepository struct {
	conn PgConnection
}

func NewAchievementsRepo(cfg DBConfig) *AchievementsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for achievementsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for achievementsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &AchievementsRepository{
		conn: pool,
	}
}

func NewAchievementsRepoWithConn(conn PgConnection) *AchievementsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for achievementsRepo: " + err.Error())
	}
	return &AchievementsRepository{
		conn: conn,
	}
}

func (ar *AchievementsRepository) ListForUser(ctx context.Context, uid uuid.UUID) ([]*entity.AchievementDetail, error) {
	rows, err := ar.conn.Query(ctx, `SELECT a.id, a.title, a.description, a.icon_name, ua.earned_at FROM achievements a LEFT JOIN user_achievements ua ON ua.achievement_id = a.id AND ua.user_id = $1 ORDER BY a.title;`, uid)
	if err != nil {
		return nil, errors.New("listing achievements error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.AchievementDetail, 0)
	for rows.Next() {
		detail := entity.AchievementDetail{}
		err = rows.Scan(&detail.ID, &detail.Title, &detail.Description, &detail.IconName, &detail.EarnedAt)
		if err != nil {
			return nil, errors.New("achievement row parsing error: " + err.Error())
		}
		detail.IsUnlocked = detail.EarnedAt != nil
		result = append(result, &detail)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected achievement rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (ar *AchievementsRepository) FindByTitle(ctx context.Context, title string) (*entity.Achievement, error) {
	var achievement entity.Achievement
	row := ar.conn.QueryRow(ctx, `SELECT id, title, description, icon_name FROM achievements WHERE title = $1;`, title)
	if err := row.Scan(&achievement.ID, &achievement.Title, &achievement.Description, &achievement.IconName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrAchievementNotFound
		}
		return nil, errors.New("searching achievement by title error: " + err.Error())
	}
	return &achievement, nil
}

func (ar *AchievementsRepository) Award(ctx context.Context, uid, achievementID uuid.UUID) error {
	// Create-if-absent on the composite key, re-awarding is a no-op
	_, err := ar.conn.Exec(ctx, `INSERT INTO user_achievements (user_id, achievement_id) VALUES ($1, $2) ON CONFLICT (user_id, achievement_id) DO NOTHING;`,
		uid,
		achievementID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("awarding achievement error: " + err.Error())
	}
	return nil
}
