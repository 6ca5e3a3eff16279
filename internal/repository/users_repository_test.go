package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/internal/repository"
	"github.com/Selsinee/luma-backend/pkg/entity"
)

var userRowColumns = []string{
	"id", "full_name", "email", "password_hash", "google_id", "avatar_url", "bio",
	"streak", "best_streak", "level", "daily_goal",
	"notifications_enabled", "sound_effects_enabled", "dark_mode_enabled", "created_at",
}

const selectUserColumns = `SELECT id, full_name, email, COALESCE(password_hash, ''), google_id, avatar_url, bio, streak, best_streak, level, daily_goal, notifications_enabled, sound_effects_enabled, dark_mode_enabled, created_at FROM users`

func testUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		FullName:     "Test User",
		Email:        "test@example.com",
		PasswordHash: "test_password_hash",
		Streak:       3,
		BestStreak:   5,
		Level:        1,
		DailyGoal:    10,
		CreatedAt:    time.Now(),
	}
}

func userRow(user *entity.User) *pgxmock.Rows {
	return pgxmock.NewRows(userRowColumns).AddRow(
		user.ID, user.FullName, user.Email, user.PasswordHash, user.GoogleID,
		user.AvatarURL, user.Bio, user.Streak, user.BestStreak, user.Level,
		user.DailyGoal, user.NotificationsEnabled, user.SoundEffectsEnabled,
		user.DarkModeEnabled, user.CreatedAt,
	)
}

func TestCreateUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	user := entity.User{
		FullName:     "Test User",
		Email:        "test@example.com",
		PasswordHash: "test_password_hash",
	}
	query := regexp.QuoteMeta(`INSERT INTO users (full_name, email, password_hash) VALUES ($1, $2, $3);`)
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	t.Run("successfully created", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.FullName, user.Email, user.PasswordHash).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Create(ctx, &user)
		assert.NoError(t, err)
	})
	t.Run("email already registered", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.FullName, user.Email, user.PasswordHash).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		err := repo.Create(ctx, &user)
		assert.ErrorIs(t, err, errorvalues.ErrEmailTaken)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(user.FullName, user.Email, user.PasswordHash).
			WillReturnError(errors.New("db error"))
		err := repo.Create(ctx, &user)
		assert.Error(t, err)
	})
}

func TestFindUserByEmail(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testUser()
	query := regexp.QuoteMeta(selectUserColumns + ` WHERE email = $1;`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnRows(userRow(user))
		result, err := repo.FindByEmail(ctx, user.Email)
		assert.NoError(t, err)
		assert.Equal(t, *user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByEmail(ctx, user.Email)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.Email).
			WillReturnError(errors.New("db error"))
		_, err := repo.FindByEmail(ctx, user.Email)
		assert.Error(t, err)
	})
}

func TestFindUserByID(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	user := testUser()
	query := regexp.QuoteMeta(selectUserColumns + ` WHERE id = $1;`)
	t.Run("found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnRows(userRow(user))
		result, err := repo.FindByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, *user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestUpdateUserProfile(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	uid := uuid.New()
	fullName := "Renamed User"
	patch := repository.UserProfilePatch{
		FullName: &fullName,
	}
	query := regexp.QuoteMeta(`UPDATE users SET full_name = COALESCE($1, full_name), bio = COALESCE($2, bio), avatar_url = COALESCE($3, avatar_url) WHERE id = $4;`)
	t.Run("updated", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(patch.FullName, patch.Bio, patch.AvatarURL, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.UpdateProfile(ctx, uid, &patch)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(patch.FullName, patch.Bio, patch.AvatarURL, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.UpdateProfile(ctx, uid, &patch)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(patch.FullName, patch.Bio, patch.AvatarURL, uid).
			WillReturnError(errors.New("db error"))
		err := repo.UpdateProfile(ctx, uid, &patch)
		assert.Error(t, err)
	})
}

func TestUpdateUserSettings(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	uid := uuid.New()
	goal := 20
	dark := true
	patch := repository.UserSettingsPatch{
		DailyGoal:       &goal,
		DarkModeEnabled: &dark,
	}
	query := regexp.QuoteMeta(`UPDATE users SET daily_goal = COALESCE($1, daily_goal), notifications_enabled = COALESCE($2, notifications_enabled), sound_effects_enabled = COALESCE($3, sound_effects_enabled), dark_mode_enabled = COALESCE($4, dark_mode_enabled) WHERE id = $5;`)
	t.Run("updated", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(patch.DailyGoal, patch.NotificationsEnabled, patch.SoundEffectsEnabled, patch.DarkModeEnabled, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.UpdateSettings(ctx, uid, &patch)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(patch.DailyGoal, patch.NotificationsEnabled, patch.SoundEffectsEnabled, patch.DarkModeEnabled, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.UpdateSettings(ctx, uid, &patch)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestUpdateUserStreak(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	uid := uuid.New()
	query := regexp.QuoteMeta(`UPDATE users SET streak = $1, best_streak = $2 WHERE id = $3;`)
	t.Run("updated", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(4, 7, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.UpdateStreak(ctx, uid, 4, 7)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(4, 7, uid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.UpdateStreak(ctx, uid, 4, 7)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewUsersRepoWithConn(conn)
	uid := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1;`)
	t.Run("deleted", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		err := repo.Delete(ctx, uid)
		assert.NoError(t, err)
	})
	t.Run("not found", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		err := repo.Delete(ctx, uid)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).
			WithArgs(uid).
			WillReturnError(errors.New("db error"))
		err := repo.Delete(ctx, uid)
		assert.Error(t, err)
	})
}
