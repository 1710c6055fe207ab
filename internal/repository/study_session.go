package repository

import (
	"context"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

// ListStudySessionQuery holds parameters for listing sessions, most recent start first.
type ListStudySessionQuery struct {
	Pagination

	UserID      uuid.UUID
	SubjectID   *uuid.UUID
	SessionType *string
}

// StudySessionRepository persists study sessions. Every lookup is scoped to the owning user.
type StudySessionRepository interface {
	Create(ctx context.Context, s *entity.StudySession) (*entity.StudySession, error)
	Update(ctx context.Context, s *entity.StudySession) (*entity.StudySession, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.StudySession, error)
	List(ctx context.Context, query *ListStudySessionQuery) ([]entity.StudySession, int64, error)
	// Delete removes the session and detaches the reviews that referenced it.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
