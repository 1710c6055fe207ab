package usecase

import (
	"context"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

// FlashcardUsecase manages cards and keeps the owning deck's counters in step.
type FlashcardUsecase interface {
	CreateFlashcard(ctx context.Context, userID uuid.UUID, card *entity.Flashcard) (*entity.Flashcard, error)
	GetFlashcard(ctx context.Context, userID, id uuid.UUID) (*entity.Flashcard, error)
	UpdateFlashcard(ctx context.Context, userID, id uuid.UUID, update entity.FlashcardUpdate) (*entity.Flashcard, error)
	DeleteFlashcard(ctx context.Context, userID, id uuid.UUID) error
	ListDueFlashcards(ctx context.Context, userID uuid.UUID, page repository.Pagination) ([]entity.Flashcard, error)
}

// NewFlashcardUsecase wires the repositories. A nil sanitizer keeps content as submitted.
func NewFlashcardUsecase(tx repository.Transactor, decks repository.DeckRepository, cards repository.FlashcardRepository, sanitizer ContentSanitizer) FlashcardUsecase {
	if sanitizer == nil {
		sanitizer = plainSanitizer{}
	}
	return &flashcardUsecase{
		tx:        tx,
		decks:     decks,
		cards:     cards,
		sanitizer: sanitizer,
		clock:     time.Now,
		newID:     uuid.New,
	}
}

type flashcardUsecase struct {
	tx        repository.Transactor
	decks     repository.DeckRepository
	cards     repository.FlashcardRepository
	sanitizer ContentSanitizer
	clock     func() time.Time
	newID     func() uuid.UUID
}

func (u *flashcardUsecase) CreateFlashcard(ctx context.Context, userID uuid.UUID, card *entity.Flashcard) (*entity.Flashcard, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if card == nil {
		return nil, entity.ErrInvalidFlashcard
	}
	if card.DeckID == uuid.Nil {
		return nil, entity.ErrInvalidDeckID
	}

	fc := entity.Flashcard{
		ID:               u.newID(),
		DeckID:           card.DeckID,
		FrontContent:     sanitizeText(u.sanitizer, card.FrontContent),
		BackContent:      sanitizeText(u.sanitizer, card.BackContent),
		FrontContentType: card.FrontContentType,
		BackContentType:  card.BackContentType,
		Hint:             sanitizeOptional(u.sanitizer, card.Hint),
		Explanation:      sanitizeOptional(u.sanitizer, card.Explanation),
		DifficultyRating: card.DifficultyRating,
	}
	fc.Normalize(u.clock())
	if err := fc.Validate(); err != nil {
		return nil, err
	}

	var created *entity.Flashcard
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		deck, err := u.decks.GetForUpdate(ctx, userID, fc.DeckID)
		if err != nil {
			return err
		}
		created, err = u.cards.Create(ctx, &fc)
		if err != nil {
			return err
		}
		deck.OnCardCreated()
		_, err = u.decks.Update(ctx, deck)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (u *flashcardUsecase) GetFlashcard(ctx context.Context, userID, id uuid.UUID) (*entity.Flashcard, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidFlashcardID
	}
	return u.cards.GetByID(ctx, userID, id)
}

func (u *flashcardUsecase) UpdateFlashcard(ctx context.Context, userID, id uuid.UUID, update entity.FlashcardUpdate) (*entity.Flashcard, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidFlashcardID
	}
	if update.TouchesContent() {
		update.FrontContent.Value = sanitizeText(u.sanitizer, update.FrontContent.Value)
		update.BackContent.Value = sanitizeText(u.sanitizer, update.BackContent.Value)
		update.Hint.Value = sanitizeOptional(u.sanitizer, update.Hint.Value)
		update.Explanation.Value = sanitizeOptional(u.sanitizer, update.Explanation.Value)
	}

	var updated *entity.Flashcard
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := u.cards.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		update.Apply(existing)
		existing.Normalize(u.clock())
		if err := existing.Validate(); err != nil {
			return err
		}
		updated, err = u.cards.Update(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *flashcardUsecase) DeleteFlashcard(ctx context.Context, userID, id uuid.UUID) error {
	if id == uuid.Nil {
		return entity.ErrInvalidFlashcardID
	}
	return u.tx.WithinTx(ctx, func(ctx context.Context) error {
		card, err := u.cards.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		deck, err := u.decks.GetForUpdate(ctx, userID, card.DeckID)
		if err != nil {
			return err
		}
		if err := u.cards.Delete(ctx, card.ID); err != nil {
			return err
		}
		deck.OnCardDeleted()
		_, err = u.decks.Update(ctx, deck)
		return err
	})
}

func (u *flashcardUsecase) ListDueFlashcards(ctx context.Context, userID uuid.UUID, page repository.Pagination) ([]entity.Flashcard, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := validatePage(page); err != nil {
		return nil, err
	}
	if page.Empty() {
		return []entity.Flashcard{}, nil
	}
	return u.cards.ListDue(ctx, userID, u.clock(), page)
}
