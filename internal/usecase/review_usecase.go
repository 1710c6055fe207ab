package usecase

import (
	"context"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

// ReviewUsecase records graded reviews against a card's scheduling state.
type ReviewUsecase interface {
	RecordReview(ctx context.Context, userID, flashcardID uuid.UUID, sub entity.ReviewSubmission) (*entity.FlashcardReview, error)
	ListReviews(ctx context.Context, userID, flashcardID uuid.UUID, page repository.Pagination) ([]entity.FlashcardReview, int64, error)
}

// NewReviewUsecase wires the repositories with default behaviour.
func NewReviewUsecase(
	tx repository.Transactor,
	cards repository.FlashcardRepository,
	reviews repository.ReviewRepository,
	sessions repository.StudySessionRepository,
) ReviewUsecase {
	return &reviewUsecase{
		tx:       tx,
		cards:    cards,
		reviews:  reviews,
		sessions: sessions,
		clock:    time.Now,
		newID:    uuid.New,
	}
}

type reviewUsecase struct {
	tx       repository.Transactor
	cards    repository.FlashcardRepository
	reviews  repository.ReviewRepository
	sessions repository.StudySessionRepository
	clock    func() time.Time
	newID    func() uuid.UUID
}

func (u *reviewUsecase) RecordReview(ctx context.Context, userID, flashcardID uuid.UUID, sub entity.ReviewSubmission) (*entity.FlashcardReview, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if flashcardID == uuid.Nil {
		return nil, entity.ErrInvalidFlashcardID
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	var recorded *entity.FlashcardReview
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		// A session reference must name one of the caller's own sessions.
		if sub.SessionID != nil {
			if _, err := u.sessions.GetByID(ctx, userID, *sub.SessionID); err != nil {
				return err
			}
		}
		card, err := u.cards.GetForUpdate(ctx, userID, flashcardID)
		if err != nil {
			return err
		}
		updated, review, err := entity.RecordReview(*card, sub, userID, u.clock())
		if err != nil {
			return err
		}
		review.ID = u.newID()
		if _, err := u.cards.Update(ctx, &updated); err != nil {
			return err
		}
		recorded, err = u.reviews.Create(ctx, &review)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

func (u *reviewUsecase) ListReviews(ctx context.Context, userID, flashcardID uuid.UUID, page repository.Pagination) ([]entity.FlashcardReview, int64, error) {
	if flashcardID == uuid.Nil {
		return nil, 0, entity.ErrInvalidFlashcardID
	}
	if err := validatePage(page); err != nil {
		return nil, 0, err
	}
	if _, err := u.cards.GetByID(ctx, userID, flashcardID); err != nil {
		return nil, 0, err
	}
	return u.reviews.ListByFlashcard(ctx, userID, flashcardID, page)
}
