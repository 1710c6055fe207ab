package repository

import (
	"context"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

// ListFlashcardQuery holds parameters for listing the cards of one deck.
type ListFlashcardQuery struct {
	Pagination

	UserID      uuid.UUID
	DeckID      uuid.UUID
	IsSuspended *bool
}

// FlashcardRepository persists flashcards. Ownership is resolved through the card's deck.
type FlashcardRepository interface {
	Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error)
	Update(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Flashcard, error)
	// GetForUpdate reads the card and locks it until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.Flashcard, error)
	List(ctx context.Context, query *ListFlashcardQuery) ([]entity.Flashcard, int64, error)
	// ListDue returns the user's due cards at asOf in storage order (created_at, id).
	ListDue(ctx context.Context, userID uuid.UUID, asOf time.Time, page Pagination) ([]entity.Flashcard, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
