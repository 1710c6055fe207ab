package usecase

import (
	"context"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

// DeckUsecase manages a user's flashcard decks.
type DeckUsecase interface {
	CreateDeck(ctx context.Context, userID uuid.UUID, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error)
	GetDeck(ctx context.Context, userID, id uuid.UUID) (*entity.FlashcardDeck, error)
	UpdateDeck(ctx context.Context, userID, id uuid.UUID, update entity.FlashcardDeckUpdate) (*entity.FlashcardDeck, error)
	ListDecks(ctx context.Context, query *repository.ListDeckQuery) ([]entity.FlashcardDeck, int64, error)
	DeleteDeck(ctx context.Context, userID, id uuid.UUID) error
	ListDeckCards(ctx context.Context, query *repository.ListFlashcardQuery) ([]entity.Flashcard, int64, error)
}

// NewDeckUsecase wires the repositories with default behaviour.
func NewDeckUsecase(tx repository.Transactor, decks repository.DeckRepository, cards repository.FlashcardRepository) DeckUsecase {
	return &deckUsecase{
		tx:    tx,
		decks: decks,
		cards: cards,
		clock: time.Now,
		newID: uuid.New,
	}
}

type deckUsecase struct {
	tx    repository.Transactor
	decks repository.DeckRepository
	cards repository.FlashcardRepository
	clock func() time.Time
	newID func() uuid.UUID
}

func (u *deckUsecase) CreateDeck(ctx context.Context, userID uuid.UUID, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, entity.ErrInvalidDeck
	}

	d := *deck
	d.ID = u.newID()
	d.UserID = userID
	d.TotalCards = 0
	d.MasteredCards = 0
	d.CreatedAt = time.Time{}
	d.Normalize(u.clock())
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return u.decks.Create(ctx, &d)
}

func (u *deckUsecase) GetDeck(ctx context.Context, userID, id uuid.UUID) (*entity.FlashcardDeck, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidDeckID
	}
	return u.decks.GetByID(ctx, userID, id)
}

func (u *deckUsecase) UpdateDeck(ctx context.Context, userID, id uuid.UUID, update entity.FlashcardDeckUpdate) (*entity.FlashcardDeck, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidDeckID
	}

	var updated *entity.FlashcardDeck
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := u.decks.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		update.Apply(existing)
		existing.Normalize(u.clock())
		if err := existing.Validate(); err != nil {
			return err
		}
		updated, err = u.decks.Update(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *deckUsecase) ListDecks(ctx context.Context, query *repository.ListDeckQuery) ([]entity.FlashcardDeck, int64, error) {
	if query == nil {
		return nil, 0, entity.ErrInvalidPagination
	}
	if err := requireUser(query.UserID); err != nil {
		return nil, 0, err
	}
	if err := validatePage(query.Pagination); err != nil {
		return nil, 0, err
	}
	return u.decks.List(ctx, query)
}

func (u *deckUsecase) DeleteDeck(ctx context.Context, userID, id uuid.UUID) error {
	if id == uuid.Nil {
		return entity.ErrInvalidDeckID
	}
	return u.decks.Delete(ctx, userID, id)
}

func (u *deckUsecase) ListDeckCards(ctx context.Context, query *repository.ListFlashcardQuery) ([]entity.Flashcard, int64, error) {
	if query == nil {
		return nil, 0, entity.ErrInvalidPagination
	}
	if query.DeckID == uuid.Nil {
		return nil, 0, entity.ErrInvalidDeckID
	}
	if err := validatePage(query.Pagination); err != nil {
		return nil, 0, err
	}
	if _, err := u.decks.GetByID(ctx, query.UserID, query.DeckID); err != nil {
		return nil, 0, err
	}
	return u.cards.List(ctx, query)
}
