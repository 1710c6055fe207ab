package usecase

import (
	"context"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

// StudySessionUsecase manages a user's study sessions.
type StudySessionUsecase interface {
	StartStudySession(ctx context.Context, userID uuid.UUID, s *entity.StudySession) (*entity.StudySession, error)
	GetStudySession(ctx context.Context, userID, id uuid.UUID) (*entity.StudySession, error)
	UpdateStudySession(ctx context.Context, userID, id uuid.UUID, update entity.StudySessionUpdate) (*entity.StudySession, error)
	ListStudySessions(ctx context.Context, query *repository.ListStudySessionQuery) ([]entity.StudySession, int64, error)
	DeleteStudySession(ctx context.Context, userID, id uuid.UUID) error
	CompleteStudySession(ctx context.Context, userID, id uuid.UUID) (*entity.StudySession, error)
}

// NewStudySessionUsecase wires the repository with default behaviour.
func NewStudySessionUsecase(repo repository.StudySessionRepository) StudySessionUsecase {
	return &studySessionUsecase{
		repo:  repo,
		clock: time.Now,
		newID: uuid.New,
	}
}

type studySessionUsecase struct {
	repo  repository.StudySessionRepository
	clock func() time.Time
	newID func() uuid.UUID
}

// StartStudySession opens a session now. Only the subject and type are taken from s.
func (u *studySessionUsecase) StartStudySession(ctx context.Context, userID uuid.UUID, s *entity.StudySession) (*entity.StudySession, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, entity.ErrInvalidStudySession
	}
	session := entity.StudySession{
		ID:          u.newID(),
		UserID:      userID,
		SubjectID:   s.SubjectID,
		SessionType: s.SessionType,
	}
	session.Normalize(u.clock())
	if err := session.Validate(); err != nil {
		return nil, err
	}
	return u.repo.Create(ctx, &session)
}

func (u *studySessionUsecase) GetStudySession(ctx context.Context, userID, id uuid.UUID) (*entity.StudySession, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidStudySessionID
	}
	return u.repo.GetByID(ctx, userID, id)
}

func (u *studySessionUsecase) UpdateStudySession(ctx context.Context, userID, id uuid.UUID, update entity.StudySessionUpdate) (*entity.StudySession, error) {
	existing, err := u.GetStudySession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	update.Apply(existing)
	existing.Normalize(u.clock())
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	return u.repo.Update(ctx, existing)
}

func (u *studySessionUsecase) ListStudySessions(ctx context.Context, query *repository.ListStudySessionQuery) ([]entity.StudySession, int64, error) {
	if query == nil {
		return nil, 0, entity.ErrInvalidPagination
	}
	if err := requireUser(query.UserID); err != nil {
		return nil, 0, err
	}
	if err := validatePage(query.Pagination); err != nil {
		return nil, 0, err
	}
	return u.repo.List(ctx, query)
}

func (u *studySessionUsecase) DeleteStudySession(ctx context.Context, userID, id uuid.UUID) error {
	if id == uuid.Nil {
		return entity.ErrInvalidStudySessionID
	}
	return u.repo.Delete(ctx, userID, id)
}

func (u *studySessionUsecase) CompleteStudySession(ctx context.Context, userID, id uuid.UUID) (*entity.StudySession, error) {
	existing, err := u.GetStudySession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	existing.Complete(u.clock())
	return u.repo.Update(ctx, existing)
}
