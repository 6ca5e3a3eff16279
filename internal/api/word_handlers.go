package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	errorvalues "github.com/Selsinee/luma-backend/internal/error_values"
	"github.com/Selsinee/luma-backend/internal/service"
	"github.com/Selsinee/luma-backend/pkg/entity"
	"github.com/Selsinee/luma-backend/pkg/httputil"
)

type CreateWordRequest struct {
	Word       string            `json:"word"`
	Definition string            `json:"definition"`
	Example    *string           `json:"example"`
	Difficulty entity.Difficulty `json:"difficulty"`
}

type UpdateWordRequest struct {
	Word       *string            `json:"word"`
	Definition *string            `json:"definition"`
	Example    *string            `json:"example"`
	Difficulty *entity.Difficulty `json:"difficulty"`
}

func (s *Server) AddWord(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("add word error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	deckID, err := uuid.Parse(r.PathValue("deckID"))
	if err != nil {
		logger.Error("add word error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid deck id in path value")
		return
	}
	var req CreateWordRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("add word error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	word, err := s.wordService.AddWord(ctx, deckID, uid, &service.CreateWordRequest{
		Word:       req.Word,
		Definition: req.Definition,
		Example:    req.Example,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidInput):
			logger.Error("add word error: invalid input", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errorvalues.ErrDeckNotFound):
			logger.Error("add word error: unexist deck")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "deck not found")
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("add word error: deck has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized to modify this deck")
		default:
			logger.Error("add word error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while adding word")
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, word)
	logger.Info("word added")
}

func (s *Server) UpdateWord(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update word error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	deckID, err := uuid.Parse(r.PathValue("deckID"))
	if err != nil {
		logger.Error("update word error: invalid deck id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid deck id in path value")
		return
	}
	wordID, err := uuid.Parse(r.PathValue("wordID"))
	if err != nil {
		logger.Error("update word error: invalid word id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid word id in path value")
		return
	}
	var req UpdateWordRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update word error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	word, err := s.wordService.UpdateWord(ctx, deckID, wordID, uid, &service.UpdateWordRequest{
		Word:       req.Word,
		Definition: req.Definition,
		Example:    req.Example,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidInput):
			logger.Error("update word error: invalid input", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errorvalues.ErrDeckNotFound):
			logger.Error("update word error: unexist deck")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "deck not found")
		case errors.Is(err, errorvalues.ErrWordNotFound):
			logger.Error("update word error: unexist word")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "word not found")
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update word error: deck has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized to modify this deck")
		default:
			logger.Error("update word error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating word")
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, word)
	logger.Info("word updated")
}

func (s *Server) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("word deletion error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	deckID, err := uuid.Parse(r.PathValue("deckID"))
	if err != nil {
		logger.Error("word deletion error: invalid deck id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid deck id in path value")
		return
	}
	wordID, err := uuid.Parse(r.PathValue("wordID"))
	if err != nil {
		logger.Error("word deletion error: invalid word id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid word id in path value")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.wordService.DeleteWord(ctx, deckID, wordID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDeckNotFound):
			logger.Error("word deletion error: unexist deck")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "deck not found")
		case errors.Is(err, errorvalues.ErrWordNotFound):
			logger.Error("word deletion error: unexist word")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "word not found")
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("word deletion error: deck has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized to modify this deck")
		default:
			logger.Error("word deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting word")
		}
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("word deleted")
}
