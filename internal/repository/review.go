package repository

import (
	"context"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

// ReviewRepository appends and reads review records. Records are never updated.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.FlashcardReview) (*entity.FlashcardReview, error)
	// ListByFlashcard returns the user's reviews of one card, newest first.
	ListByFlashcard(ctx context.Context, userID, flashcardID uuid.UUID, page Pagination) ([]entity.FlashcardReview, int64, error)
}
