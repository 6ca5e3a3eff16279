package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/internal/repository"
	"github.com/Selsinee/luma-backend/pkg/entity"
)

type WordService struct {
	decksRepo repository.DecksRepositoryI
	wordsRepo repository.WordsRepositoryI
}

func NewWordService(decksRepo repository.DecksRepositoryI, wordsRepo repository.WordsRepositoryI) *WordService {
	if decksRepo == nil || wordsRepo == nil {
		log.Fatal("provided nil repos to word service")
	}
	return &WordService{
		decksRepo: decksRepo,
		wordsRepo: wordsRepo,
	}
}

func (ws *WordService) AddWord(ctx context.Context, deckID, userID uuid.UUID, req *CreateWordRequest) (*entity.Word, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidInput, err)
	}
	if err = ws.checkDeckOwner(ctx, deckID, userID); err != nil {
		return nil, err
	}
	w := entity.Word{
		DeckID:     deckID,
		Word:       req.Word,
		Definition: req.Definition,
		Example:    req.Example,
		Difficulty: req.Difficulty,
	}
	id, err := ws.wordsRepo.Create(ctx, &w)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeckNotFound) {
			return nil, err
		}
		return nil, errors.New("words repository error: " + err.Error())
	}
	word, err := ws.wordsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("words repository error: " + err.Error())
	}
	return word, nil
}

func (ws *WordService) UpdateWord(ctx context.Context, deckID, wordID, userID uuid.UUID, req *UpdateWordRequest) (*entity.Word, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidInput, err)
	}
	if err = ws.checkDeckOwner(ctx, deckID, userID); err != nil {
		return nil, err
	}
	err = ws.wordsRepo.Update(ctx, wordID, &repository.WordPatch{
		Word:       req.Word,
		Definition: req.Definition,
		Example:    req.Example,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrWordNotFound) {
			return nil, err
		}
		return nil, errors.New("words repository error: " + err.Error())
	}
	word, err := ws.wordsRepo.GetByID(ctx, wordID)
	if err != nil {
		return nil, errors.New("words repository error: " + err.Error())
	}
	return word, nil
}

func (ws *WordService) DeleteWord(ctx context.Context, deckID, wordID, userID uuid.UUID) error {
	if err := ws.checkDeckOwner(ctx, deckID, userID); err != nil {
		return err
	}
	err := ws.wordsRepo.Delete(ctx, wordID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWordNotFound) {
			return err
		}
		return errors.New("words repository error: " + err.Error())
	}
	return nil
}

func (ws *WordService) checkDeckOwner(ctx context.Context, deckID, userID uuid.UUID) error {
	deck, err := ws.decksRepo.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeckNotFound) {
			return err
		}
		return errors.New("decks repository error: " + err.Error())
	}
	if deck.UserID != userID {
		return errorvalues.ErrWrongOwner
	}
	return nil
}
