package usecase

import (
	"strings"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

// ContentSanitizer strips unsafe markup from user supplied card text.
type ContentSanitizer interface {
	Sanitize(s string) string
}

type plainSanitizer struct{}

func (plainSanitizer) Sanitize(s string) string { return s }

func validatePage(p repository.Pagination) error {
	if p.Skip < 0 || p.Limit < 0 {
		return entity.ErrInvalidPagination
	}
	return nil
}

func requireUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return entity.ErrInvalidUserID
	}
	return nil
}

func sanitizeText(s ContentSanitizer, v string) string {
	return strings.TrimSpace(s.Sanitize(v))
}

func sanitizeOptional(s ContentSanitizer, v *string) *string {
	if v == nil {
		return nil
	}
	out := sanitizeText(s, *v)
	return &out
}
