package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/internal/repository"
	"github.com/Selsinee/luma-backend/pkg/entity"
)

type UserService struct {
	repo             repository.UsersRepositoryI
	achievementsRepo repository.AchievementsRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI, achievementsRepo repository.AchievementsRepositoryI) *UserService {
	return &UserService{
		repo:             usersRepo,
		achievementsRepo: achievementsRepo,
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			joined := errorvalues.ErrInvalidInput
			for _, fieldErr := range validationError {
				joined = errors.Join(joined, fieldErr)
			}
			return nil, joined
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	passwordHash, err := Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	err = us.repo.Create(ctx, &entity.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrEmailTaken) {
			return nil, err
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	user, err := us.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := us.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrWrongCredentials
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*entity.User, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidInput, err)
	}
	err = us.repo.UpdateProfile(ctx, id, &repository.UserProfilePatch{
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository updating error: " + err.Error())
	}
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) UpdateSettings(ctx context.Context, id uuid.UUID, req *UpdateSettingsRequest) (*entity.User, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidInput, err)
	}
	err = us.repo.UpdateSettings(ctx, id, &repository.UserSettingsPatch{
		DailyGoal:            req.DailyGoal,
		NotificationsEnabled: req.NotificationsEnabled,
		SoundEffectsEnabled:  req.SoundEffectsEnabled,
		DarkModeEnabled:      req.DarkModeEnabled,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository updating error: " + err.Error())
	}
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) ListAchievements(ctx context.Context, id uuid.UUID) ([]*entity.AchievementDetail, error) {
	achievements, err := us.achievementsRepo.ListForUser(ctx, id)
	if err != nil {
		return nil, errors.New("achievements repository error: " + err.Error())
	}
	return achievements, nil
}

func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
