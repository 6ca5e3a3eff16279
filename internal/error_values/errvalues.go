package errorvalues

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user doesn't exist")
	ErrWrongCredentials    = errors.New("wrong email or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrDeckNotFound        = errors.New("deck doesn't exist")
	ErrWordNotFound        = errors.New("word doesn't exist")
	ErrProgressNotFound    = errors.New("word progress doesn't exist")
	ErrProgressExists      = errors.New("word progress already exists")
	ErrAchievementNotFound = errors.New("achievement doesn't exist")
	ErrOwnerNotFound       = errors.New("owner doesn't exist")
	ErrWrongOwner          = errors.New("resource has different owner")
)
