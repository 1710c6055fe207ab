package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/studyhub/internal/adapter/identity"
	"github.com/eslsoft/studyhub/internal/adapter/mapping"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
)

func (h *Handler) listDailyProgress(w http.ResponseWriter, r *http.Request, _ map[string]string) {
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
	records, total, err := h.progress.ListDailyProgress(r.Context(), &repository.ListDailyProgressQuery{
		Pagination:  page,
		FilterOrder: filterOrder(q),
		UserID:      userID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, lo.Map(records, func(p entity.DailyProgress, _ int) mapping.DailyProgress { return mapping.ToDailyProgress(&p) }), total)
}

func (h *Handler) createDailyProgress(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.DailyProgressCreate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.progress.CreateDailyProgress(r.Context(), userID, mapping.FromDailyProgressCreate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, mapping.ToDailyProgress(record))
}

func (h *Handler) getDailyProgress(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	date, err := pathDate(params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.progress.GetDailyProgress(r.Context(), userID, date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToDailyProgress(record))
}

func (h *Handler) updateDailyProgress(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	date, err := pathDate(params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.DailyProgressUpdate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.progress.UpdateDailyProgress(r.Context(), userID, date, mapping.FromDailyProgressUpdate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToDailyProgress(record))
}

func (h *Handler) getStreak(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	streak, err := h.progress.GetStreak(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToStreak(streak))
}

func pathDate(params map[string]string) (time.Time, error) {
	date, err := mapping.ParseDate(params["date"])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", mapping.ErrMalformedRequest, err)
	}
	return date, nil
}
