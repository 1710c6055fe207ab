package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlashcardDeck groups flashcards owned by one user.
type FlashcardDeck struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SubjectID   *uuid.UUID
	Title       string
	Description *string
	IsPublic    bool
	IsArchived  bool

	// TotalCards tracks the number of live cards; MasteredCards is only ever set explicitly.
	TotalCards    int
	MasteredCards int

	CreatedAt     time.Time
	LastStudiedAt *time.Time
}

// FlashcardDeckUpdate is the explicit partial update accepted for a deck.
type FlashcardDeckUpdate struct {
	Title         Optional[string]
	Description   Optional[*string]
	SubjectID     Optional[*uuid.UUID]
	IsPublic      Optional[bool]
	IsArchived    Optional[bool]
	TotalCards    Optional[int]
	MasteredCards Optional[int]
	LastStudiedAt Optional[*time.Time]
}

// Apply merges the set fields of u into deck.
func (u FlashcardDeckUpdate) Apply(deck *FlashcardDeck) {
	apply(&deck.Title, u.Title)
	apply(&deck.Description, u.Description)
	apply(&deck.SubjectID, u.SubjectID)
	apply(&deck.IsPublic, u.IsPublic)
	apply(&deck.IsArchived, u.IsArchived)
	apply(&deck.TotalCards, u.TotalCards)
	apply(&deck.MasteredCards, u.MasteredCards)
	apply(&deck.LastStudiedAt, u.LastStudiedAt)
}

// Validate checks deck invariants before persistence.
func (d *FlashcardDeck) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrInvalidDeckName
	}
	if d.TotalCards < 0 || d.MasteredCards < 0 {
		return ErrInvalidDeck
	}
	return nil
}

// Normalize ensures defaults before persistence.
func (d *FlashcardDeck) Normalize(now time.Time) {
	d.Title = strings.TrimSpace(d.Title)
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.LastStudiedAt = utcPtr(d.LastStudiedAt)
}
