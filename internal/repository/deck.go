package repository

import (
	"context"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

// ListDeckQuery holds parameters for listing a user's decks.
type ListDeckQuery struct {
	Pagination
	FilterOrder

	UserID     uuid.UUID
	SubjectID  *uuid.UUID
	IsArchived *bool
}

// DeckRepository persists flashcard decks. Every lookup is scoped to the owning user.
type DeckRepository interface {
	Create(ctx context.Context, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error)
	Update(ctx context.Context, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.FlashcardDeck, error)
	// GetForUpdate reads the deck and locks it until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.FlashcardDeck, error)
	List(ctx context.Context, query *ListDeckQuery) ([]entity.FlashcardDeck, int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
