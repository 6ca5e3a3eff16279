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

type LogSessionRequest struct {
	DeckID          uuid.UUID          `json:"deck_id"`
	SessionType     entity.SessionType `json:"session_type"`
	ScorePercentage *int               `json:"score_percentage"`
	WordsReviewed   int                `json:"words_reviewed"`
	DurationSeconds int                `json:"duration_seconds"`
}

type UpdateProgressRequest struct {
	Status entity.WordStatus `json:"status"`
}

func (s *Server) LogSession(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("log session error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	var req LogSessionRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("log session error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	session, err := s.studyService.LogSession(ctx, uid, &service.LogSessionRequest{
		DeckID:          req.DeckID,
		SessionType:     req.SessionType,
		ScorePercentage: req.ScorePercentage,
		WordsReviewed:   req.WordsReviewed,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidInput):
			logger.Error("log session error: invalid input", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errorvalues.ErrDeckNotFound):
			logger.Error("log session error: unexist deck")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "deck not found")
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("log session error: deck has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized to study this deck")
		default:
			logger.Error("log session error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging session")
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, session)
	logger.Info("study session logged")
}

func (s *Server) UpdateWordProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update progress error: unauthorized")
		writeUnauthenticated(w, "no authorization")
		return
	}
	wordID, err := uuid.Parse(r.PathValue("wordID"))
	if err != nil {
		logger.Error("update progress error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid word id in path value")
		return
	}
	var req UpdateProgressRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update progress error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	progress, err := s.studyService.UpdateWordProgress(ctx, uid, wordID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidInput):
			logger.Error("update progress error: invalid input", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errorvalues.ErrWordNotFound):
			logger.Error("update progress error: unexist word")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "word not found")
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update progress error: word belongs to another user's deck")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized to review this word")
		default:
			logger.Error("update progress error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating progress")
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, progress)
	logger.Info("word progress updated")
}
