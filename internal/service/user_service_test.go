package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/internal/repository"
	"github.com/Selsinee/luma-backend/internal/service"
	"github.com/Selsinee/luma-backend/pkg/entity"
)

func TestUserServiceIntegrational(t *testing.T) {
	dbCfg := setupUsersTestDB(t)
	repo := repository.NewUsersRepo(dbCfg)
	achievementsRepo := repository.NewAchievementsRepo(dbCfg)
	us := service.NewUserService(repo, achievementsRepo)
	ctx := context.Background()
	email := "learner@example.com"
	password := "test_password"
	var user *entity.User
	var err error
	t.Run("registered user", func(t *testing.T) {
		user, err = us.Register(ctx, &service.RegisterRequest{
			FullName: "Test Learner",
			Email:    email,
			Password: password,
		})
		assert.NoError(t, err)
		assert.Equal(t, email, user.Email)
		assert.Equal(t, 10, user.DailyGoal)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
	})
	t.Run("error registering taken email", func(t *testing.T) {
		_, err = us.Register(ctx, &service.RegisterRequest{
			FullName: "Another Learner",
			Email:    email,
			Password: password,
		})
		assert.ErrorIs(t, err, errorvalues.ErrEmailTaken)
	})
	t.Run("error registering short password", func(t *testing.T) {
		_, err = us.Register(ctx, &service.RegisterRequest{
			FullName: "Short Password",
			Email:    "short@example.com",
			Password: "short",
		})
		assert.ErrorIs(t, err, errorvalues.ErrInvalidInput)
	})
	t.Run("login", func(t *testing.T) {
		res, err := us.Login(ctx, email, password)
		assert.NoError(t, err)
		assert.Equal(t, *user, *res)
	})
	t.Run("error login with wrong password", func(t *testing.T) {
		_, err := us.Login(ctx, email, "wrong_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("error login on unexisted email", func(t *testing.T) {
		_, err := us.Login(ctx, "nobody@example.com", password)
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("found by id", func(t *testing.T) {
		res, err := us.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, *user, *res)
	})
	t.Run("not found by id", func(t *testing.T) {
		_, err := us.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("profile patch leaves absent fields untouched", func(t *testing.T) {
		bio := "I collect words"
		res, err := us.UpdateProfile(ctx, user.ID, &service.UpdateProfileRequest{
			Bio: &bio,
		})
		assert.NoError(t, err)
		assert.Equal(t, bio, *res.Bio)
		assert.Equal(t, user.FullName, res.FullName)
		user = res
	})
	t.Run("settings patch leaves absent fields untouched", func(t *testing.T) {
		goal := 25
		res, err := us.UpdateSettings(ctx, user.ID, &service.UpdateSettingsRequest{
			DailyGoal: &goal,
		})
		assert.NoError(t, err)
		assert.Equal(t, goal, res.DailyGoal)
		assert.Equal(t, user.NotificationsEnabled, res.NotificationsEnabled)
		assert.Equal(t, user.DarkModeEnabled, res.DarkModeEnabled)
	})
	t.Run("seeded achievements are locked for a fresh user", func(t *testing.T) {
		achievements, err := us.ListAchievements(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, 5, len(achievements))
		for _, a := range achievements {
			assert.False(t, a.IsUnlocked)
			assert.Nil(t, a.EarnedAt)
		}
	})
}

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupUsersTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("luma"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	err = goose.Up(conn, "../../migrations")
	if err != nil {
		t.Fatal(err)
	}

	conn.Close()
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	return &testPGConfig{
		connStr: connStr,
	}
}
