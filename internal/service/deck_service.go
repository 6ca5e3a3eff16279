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

type DeckService struct {
	decksRepo repository.DecksRepositoryI
	wordsRepo repository.WordsRepositoryI
}

func NewDeckService(decksRepo repository.DecksRepositoryI, wordsRepo repository.WordsRepositoryI) *DeckService {
	if decksRepo == nil || wordsRepo == nil {
		log.Fatal("provided nil repos to deck service")
	}
	return &DeckService{
		decksRepo: decksRepo,
		wordsRepo: wordsRepo,
	}
}

func (ds *DeckService) CreateDeck(ctx context.Context, uid uuid.UUID, req *CreateDeckRequest) (*entity.Deck, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidInput, err)
	}
	d := entity.Deck{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	id, err := ds.decksRepo.Create(ctx, &d)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("decks repository error: " + err.Error())
	}
	deck, err := ds.decksRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeckNotFound) {
			return nil, err
		}
		return nil, errors.New("decks repository error: " + err.Error())
	}
	return deck, nil
}

func (ds *DeckService) GetUserDecks(ctx context.Context, uid uuid.UUID, category *string, pagination PaginationOpts) ([]*entity.Deck, error) {
	decks, err := ds.decksRepo.GetByUserID(ctx, uid, category, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("decks repository error: " + err.Error())
	}
	return decks, nil
}

func (ds *DeckService) GetDeckDetail(ctx context.Context, deckID, userID uuid.UUID) (*entity.DeckDetail, error) {
	deck, err := ds.ownedDeck(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}
	words, err := ds.wordsRepo.GetByDeckID(ctx, deckID)
	if err != nil {
		return nil, errors.New("words repository error: " + err.Error())
	}
	totalWords, err := ds.wordsRepo.CountByDeck(ctx, deckID)
	if err != nil {
		return nil, errors.New("words repository error: " + err.Error())
	}
	mastered, err := ds.wordsRepo.CountMastered(ctx, deckID, userID)
	if err != nil {
		return nil, errors.New("words repository error: " + err.Error())
	}
	breakdown, err := ds.wordsRepo.CountByDifficulty(ctx, deckID)
	if err != nil {
		return nil, errors.New("words repository error: " + err.Error())
	}
	masteryPercentage := 0.0
	if totalWords > 0 {
		masteryPercentage = float64(mastered) / float64(totalWords) * 100
	}
	return &entity.DeckDetail{
		Deck:              *deck,
		Words:             words,
		MasteryPercentage: masteryPercentage,
		WordsMastered:     mastered,
		WordsLearning:     totalWords - mastered,
		EasyCount:         breakdown.Easy,
		MediumCount:       breakdown.Medium,
		HardCount:         breakdown.Hard,
	}, nil
}

func (ds *DeckService) UpdateDeck(ctx context.Context, deckID, userID uuid.UUID, req *UpdateDeckRequest) (*entity.Deck, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidInput, err)
	}
	if _, err = ds.ownedDeck(ctx, deckID, userID); err != nil {
		return nil, err
	}
	err = ds.decksRepo.Update(ctx, deckID, &repository.DeckPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeckNotFound) {
			return nil, err
		}
		return nil, errors.New("decks repository error: " + err.Error())
	}
	deck, err := ds.decksRepo.GetByID(ctx, deckID)
	if err != nil {
		return nil, errors.New("decks repository error: " + err.Error())
	}
	return deck, nil
}

func (ds *DeckService) DeleteDeck(ctx context.Context, deckID, userID uuid.UUID) error {
	if _, err := ds.ownedDeck(ctx, deckID, userID); err != nil {
		return err
	}
	err := ds.decksRepo.Delete(ctx, deckID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeckNotFound) {
			return err
		}
		return errors.New("decks repository error: " + err.Error())
	}
	return nil
}

// ownedDeck resolves the deck and enforces the ownership convention
// shared by every deck and word mutation.
func (ds *DeckService) ownedDeck(ctx context.Context, deckID, userID uuid.UUID) (*entity.Deck, error) {
	deck, err := ds.decksRepo.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDeckNotFound) {
			return nil, err
		}
		return nil, errors.New("decks repository error: " + err.Error())
	}
	if deck.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return deck, nil
}
