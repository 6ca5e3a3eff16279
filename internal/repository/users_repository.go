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

const userColumns = `id, full_name, email, COALESCE(password_hash, ''), google_id, avatar_url, bio, streak, best_streak, level, daily_goal, notifications_enabled, sound_effects_enabled, dark_mode_enabled, created_at`

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(cfg DBConfig) *UsersRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for usersRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &UsersRepository{
		conn: pool,
	}
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	_, err := ur.conn.Exec(ctx, `INSERT INTO users (full_name, email, password_hash) VALUES ($1, $2, $3);`,
		user.FullName,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrEmailTaken
			}
		}
		return errors.New("creating user db error: " + err.Error())
	}
	return nil
}

func (ur *UsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := ur.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
	return scanUser(row)
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	row := ur.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, uid)
	return scanUser(row)
}

func (ur *UsersRepository) UpdateProfile(ctx context.Context, uid uuid.UUID, patch *UserProfilePatch) error {
	if patch == nil {
		return errors.New("patch is nil")
	}
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET full_name = COALESCE($1, full_name), bio = COALESCE($2, bio), avatar_url = COALESCE($3, avatar_url) WHERE id = $4;`,
		patch.FullName,
		patch.Bio,
		patch.AvatarURL,
		uid,
	)
	if err != nil {
		return errors.New("updating user profile error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) UpdateSettings(ctx context.Context, uid uuid.UUID, patch *UserSettingsPatch) error {
	if patch == nil {
		return errors.New("patch is nil")
	}
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET daily_goal = COALESCE($1, daily_goal), notifications_enabled = COALESCE($2, notifications_enabled), sound_effects_enabled = COALESCE($3, sound_effects_enabled), dark_mode_enabled = COALESCE($4, dark_mode_enabled) WHERE id = $5;`,
		patch.DailyGoal,
		patch.NotificationsEnabled,
		patch.SoundEffectsEnabled,
		patch.DarkModeEnabled,
		uid,
	)
	if err != nil {
		return errors.New("updating user settings error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) UpdateStreak(ctx context.Context, uid uuid.UUID, streak, bestStreak int) error {
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET streak = $1, best_streak = $2 WHERE id = $3;`,
		streak,
		bestStreak,
		uid,
	)
	if err != nil {
		return errors.New("updating user streak error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	ct, err := ur.conn.Exec(ctx, `DELETE FROM users WHERE id = $1;`, uid)
	if err != nil {
		return errors.New("deleting user error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.GoogleID,
		&user.AvatarURL,
		&user.Bio,
		&user.Streak,
		&user.BestStreak,
		&user.Level,
		&user.DailyGoal,
		&user.NotificationsEnabled,
		&user.SoundEffectsEnabled,
		&user.DarkModeEnabled,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user error: " + err.Error())
	}
	return &user, nil
}
