// Package rest serves the JSON API under /api/v1 on a grpc-gateway ServeMux.
package rest

import (
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyhub/internal/adapter/mapping"
	"github.com/eslsoft/studyhub/internal/usecase"
)

const prefix = "/api/v1"

// Handler binds the study usecases to HTTP routes.
type Handler struct {
	decks    usecase.DeckUsecase
	cards    usecase.FlashcardUsecase
	reviews  usecase.ReviewUsecase
	progress usecase.ProgressUsecase
	sessions usecase.StudySessionUsecase
	limits   mapping.PageLimits
	logger   *logrus.Logger
}

func NewHandler(
	decks usecase.DeckUsecase,
	cards usecase.FlashcardUsecase,
	reviews usecase.ReviewUsecase,
	progress usecase.ProgressUsecase,
	sessions usecase.StudySessionUsecase,
	limits mapping.PageLimits,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		decks:    decks,
		cards:    cards,
		reviews:  reviews,
		progress: progress,
		sessions: sessions,
		limits:   limits,
		logger:   logger,
	}
}

type route struct {
	method  string
	pattern string
	handler runtime.HandlerFunc
}

// Register adds every route to mux. The mux tries the most recently registered
// pattern first, so literal segments are registered after the {id} patterns
// they would otherwise collide with.
func (h *Handler) Register(mux *runtime.ServeMux) error {
	routes := []route{
		{http.MethodGet, "/flashcard-decks", h.listDecks},
		{http.MethodPost, "/flashcard-decks", h.createDeck},
		{http.MethodGet, "/flashcard-decks/{id}", h.getDeck},
		{http.MethodPatch, "/flashcard-decks/{id}", h.updateDeck},
		{http.MethodDelete, "/flashcard-decks/{id}", h.deleteDeck},
		{http.MethodGet, "/flashcard-decks/{id}/cards", h.listDeckCards},

		{http.MethodPost, "/flashcards", h.createFlashcard},
		{http.MethodGet, "/flashcards/{id}", h.getFlashcard},
		{http.MethodPatch, "/flashcards/{id}", h.updateFlashcard},
		{http.MethodDelete, "/flashcards/{id}", h.deleteFlashcard},
		{http.MethodGet, "/flashcards/due", h.listDueFlashcards},
		{http.MethodPost, "/flashcards/{id}/review", h.recordReview},
		{http.MethodGet, "/flashcards/{id}/reviews", h.listReviews},

		{http.MethodGet, "/progress/daily", h.listDailyProgress},
		{http.MethodPost, "/progress/daily", h.createDailyProgress},
		{http.MethodGet, "/progress/daily/{date}", h.getDailyProgress},
		{http.MethodPatch, "/progress/daily/{date}", h.updateDailyProgress},
		{http.MethodGet, "/progress/streak", h.getStreak},

		{http.MethodGet, "/study-sessions", h.listStudySessions},
		{http.MethodPost, "/study-sessions", h.createStudySession},
		{http.MethodGet, "/study-sessions/{id}", h.getStudySession},
		{http.MethodPatch, "/study-sessions/{id}", h.updateStudySession},
		{http.MethodDelete, "/study-sessions/{id}", h.deleteStudySession},
		{http.MethodPost, "/study-sessions/{id}/complete", h.completeStudySession},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, prefix+rt.pattern, rt.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return nil
}
