package rest

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/eslsoft/studyhub/internal/adapter/identity"
	"github.com/eslsoft/studyhub/internal/adapter/mapping"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
)

func (h *Handler) listDecks(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	page, err := h.page(q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	subjectID, err := queryUUID(q, "subject_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	archived, err := queryBool(q, "is_archived")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	decks, total, err := h.decks.ListDecks(r.Context(), &repository.ListDeckQuery{
		Pagination:  page,
		FilterOrder: filterOrder(q),
		UserID:      userID,
		SubjectID:   subjectID,
		IsArchived:  archived,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, lo.Map(decks, func(d entity.FlashcardDeck, _ int) mapping.Deck { return mapping.ToDeck(&d) }), total)
}

func (h *Handler) createDeck(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.DeckCreate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	deck, err := h.decks.CreateDeck(r.Context(), userID, mapping.FromDeckCreate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, mapping.ToDeck(deck))
}

func (h *Handler) getDeck(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidDeckID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	deck, err := h.decks.GetDeck(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToDeck(deck))
}

func (h *Handler) updateDeck(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidDeckID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.DeckUpdate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	deck, err := h.decks.UpdateDeck(r.Context(), userID, id, mapping.FromDeckUpdate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToDeck(deck))
}

func (h *Handler) deleteDeck(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidDeckID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.decks.DeleteDeck(r.Context(), userID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listDeckCards(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidDeckID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	page, err := h.page(q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	suspended, err := queryBool(q, "is_suspended")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cards, total, err := h.decks.ListDeckCards(r.Context(), &repository.ListFlashcardQuery{
		Pagination:  page,
		UserID:      userID,
		DeckID:      id,
		IsSuspended: suspended,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, lo.Map(cards, func(c entity.Flashcard, _ int) mapping.Flashcard { return mapping.ToFlashcard(&c) }), total)
}
