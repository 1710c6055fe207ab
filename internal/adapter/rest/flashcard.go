package rest

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/eslsoft/studyhub/internal/adapter/identity"
	"github.com/eslsoft/studyhub/internal/adapter/mapping"
	"github.com/eslsoft/studyhub/internal/entity"
)

func (h *Handler) createFlashcard(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.FlashcardCreate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	card, err := h.cards.CreateFlashcard(r.Context(), userID, mapping.FromFlashcardCreate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, mapping.ToFlashcard(card))
}

func (h *Handler) getFlashcard(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidFlashcardID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	card, err := h.cards.GetFlashcard(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToFlashcard(card))
}

func (h *Handler) updateFlashcard(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidFlashcardID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.FlashcardUpdate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	card, err := h.cards.UpdateFlashcard(r.Context(), userID, id, mapping.FromFlashcardUpdate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToFlashcard(card))
}

func (h *Handler) deleteFlashcard(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidFlashcardID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.cards.DeleteFlashcard(r.Context(), userID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listDueFlashcards(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page, err := h.page(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	cards, err := h.cards.ListDueFlashcards(r.Context(), userID, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, lo.Map(cards, func(c entity.Flashcard, _ int) mapping.Flashcard { return mapping.ToFlashcard(&c) }))
}

func (h *Handler) recordReview(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidFlashcardID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.ReviewCreate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	review, err := h.reviews.RecordReview(r.Context(), userID, id, mapping.FromReviewCreate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, mapping.ToReview(review))
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidFlashcardID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	page, err := h.page(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	reviews, total, err := h.reviews.ListReviews(r.Context(), userID, id, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, lo.Map(reviews, func(rv entity.FlashcardReview, _ int) mapping.Review { return mapping.ToReview(&rv) }), total)
}
