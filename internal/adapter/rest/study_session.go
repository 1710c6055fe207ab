package rest

import (
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/studyhub/internal/adapter/identity"
	"github.com/eslsoft/studyhub/internal/adapter/mapping"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
)

func (h *Handler) listStudySessions(w http.ResponseWriter, r *http.Request, _ map[string]string) {
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
	var sessionType *string
	if v := strings.TrimSpace(q.Get("session_type")); v != "" {
		sessionType = &v
	}

	sessions, total, err := h.sessions.ListStudySessions(r.Context(), &repository.ListStudySessionQuery{
		Pagination:  page,
		UserID:      userID,
		SubjectID:   subjectID,
		SessionType: sessionType,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, lo.Map(sessions, func(s entity.StudySession, _ int) mapping.StudySession { return mapping.ToStudySession(&s) }), total)
}

func (h *Handler) createStudySession(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.StudySessionCreate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	session, err := h.sessions.StartStudySession(r.Context(), userID, mapping.FromStudySessionCreate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, mapping.ToStudySession(session))
}

func (h *Handler) getStudySession(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidStudySessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	session, err := h.sessions.GetStudySession(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToStudySession(session))
}

func (h *Handler) updateStudySession(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidStudySessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payload mapping.StudySessionUpdate
	if err := decode(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return
	}
	session, err := h.sessions.UpdateStudySession(r.Context(), userID, id, mapping.FromStudySessionUpdate(payload))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToStudySession(session))
}

func (h *Handler) deleteStudySession(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidStudySessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.sessions.DeleteStudySession(r.Context(), userID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) completeStudySession(w http.ResponseWriter, r *http.Request, params map[string]string) {
	userID, err := identity.Require(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathUUID(params, "id", entity.ErrInvalidStudySessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	session, err := h.sessions.CompleteStudySession(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, mapping.ToStudySession(session))
}
