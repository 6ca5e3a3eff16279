package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/internal/service"
	"github.com/Selsinee/luma-backend/pkg/entity"
	"github.com/Selsinee/luma-backend/pkg/httputil"
)

type CreateDeckRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
}

type UpdateDeckRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type GetDecksResponse struct {
	UserID string         `json:"uid"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Decks  []*entity.Deck `json:"decks"`
}

func (s *Server) CreateDeck(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create deck error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	var req CreateDeckRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create deck error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	deck, err := s.deckService.CreateDeck(ctx, uid, &service.CreateDeckRequest{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidInput):
			logger.Error("create deck error: invalid input", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create deck error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create deck: user doesn't exist")
		default:
			logger.Error("create deck error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating deck")
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, deck)
	logger.Info("deck created")
}

func (s *Server) GetDecks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get decks error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	decks, err := s.deckService.GetUserDecks(ctx, uid, category, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting decks list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting decks list")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetDecksResponse{
		UserID: uid.String(),
		Page:   page,
		Limit:  limit,
		Decks:  decks,
	})
	logger.Info("decks provided")
}

func (s *Server) GetDeck(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get deck error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	deckID, err := uuid.Parse(r.PathValue("deckID"))
	if err != nil {
		logger.Error("get deck error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid deck id in path value")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	detail, err := s.deckService.GetDeckDetail(ctx, deckID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDeckNotFound):
			logger.Error("get deck error: unexist deck")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "deck not found")
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get deck error: deck has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized to access this deck")
		default:
			logger.Error("get deck error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting deck")
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, detail)
	logger.Info("deck detail provided")
}

func (s *Server) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update deck error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	deckID, err := uuid.Parse(r.PathValue("deckID"))
	if err != nil {
		logger.Error("update deck error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid deck id in path value")
		return
	}
	var req UpdateDeckRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update deck error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	deck, err := s.deckService.UpdateDeck(ctx, deckID, uid, &service.UpdateDeckRequest{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidInput):
			logger.Error("update deck error: invalid input", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errorvalues.ErrDeckNotFound):
			logger.Error("update deck error: unexist deck")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "deck not found")
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update deck error: deck has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized to update this deck")
		default:
			logger.Error("update deck error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating deck")
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, deck)
	logger.Info("deck updated")
}

func (s *Server) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("deck deletion error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	deckID, err := uuid.Parse(r.PathValue("deckID"))
	if err != nil {
		logger.Error("deck deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid deck id in path value")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.deckService.DeleteDeck(ctx, deckID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDeckNotFound):
			logger.Error("deck deletion error: unexist deck")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "deck not found")
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("deck deletion error: deck has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized to delete this deck")
		default:
			logger.Error("deck deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting deck")
		}
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("deck deleted")
}
