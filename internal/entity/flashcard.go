package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flashcard is a single card inside a deck together with its review scheduling state.
type Flashcard struct {
	ID               uuid.UUID
	DeckID           uuid.UUID
	FrontContent     string
	BackContent      string
	FrontContentType *string
	BackContentType  *string
	Hint             *string
	Explanation      *string
	DifficultyRating *int

	// Scheduling state. A nil EaseFactor means the card was never reviewed.
	EaseFactor     *float64
	IntervalDays   int
	Repetitions    int
	NextReviewDate *time.Time
	TotalReviews   int
	CorrectReviews int
	IsSuspended    bool

	CreatedAt time.Time
}

// FlashcardUpdate is the explicit partial update accepted for a flashcard.
type FlashcardUpdate struct {
	FrontContent     Optional[string]
	BackContent      Optional[string]
	FrontContentType Optional[*string]
	BackContentType  Optional[*string]
	Hint             Optional[*string]
	Explanation      Optional[*string]
	DifficultyRating Optional[*int]
	EaseFactor       Optional[*float64]
	IntervalDays     Optional[int]
	Repetitions      Optional[int]
	NextReviewDate   Optional[*time.Time]
	TotalReviews     Optional[int]
	CorrectReviews   Optional[int]
	IsSuspended      Optional[bool]
}

// Apply merges the set fields of u into card, field by field.
func (u FlashcardUpdate) Apply(card *Flashcard) {
	apply(&card.FrontContent, u.FrontContent)
	apply(&card.BackContent, u.BackContent)
	apply(&card.FrontContentType, u.FrontContentType)
	apply(&card.BackContentType, u.BackContentType)
	apply(&card.Hint, u.Hint)
	apply(&card.Explanation, u.Explanation)
	apply(&card.DifficultyRating, u.DifficultyRating)
	apply(&card.EaseFactor, u.EaseFactor)
	apply(&card.IntervalDays, u.IntervalDays)
	apply(&card.Repetitions, u.Repetitions)
	apply(&card.NextReviewDate, u.NextReviewDate)
	apply(&card.TotalReviews, u.TotalReviews)
	apply(&card.CorrectReviews, u.CorrectReviews)
	apply(&card.IsSuspended, u.IsSuspended)
}

// TouchesContent reports whether any text content field is part of the update.
func (u FlashcardUpdate) TouchesContent() bool {
	return u.FrontContent.Set || u.BackContent.Set || u.Hint.Set || u.Explanation.Set
}

// Validate checks the card invariants before persistence.
func (c *Flashcard) Validate() error {
	if strings.TrimSpace(c.FrontContent) == "" || strings.TrimSpace(c.BackContent) == "" {
		return ErrInvalidFlashcardContent
	}
	if c.EaseFactor != nil && *c.EaseFactor <= 0 {
		return ErrInvalidReviewState
	}
	if c.IntervalDays < 0 || c.Repetitions < 0 {
		return ErrInvalidReviewState
	}
	if c.TotalReviews < 0 || c.CorrectReviews < 0 || c.CorrectReviews > c.TotalReviews {
		return ErrInvalidReviewState
	}
	return nil
}

// Normalize ensures defaults before persistence.
func (c *Flashcard) Normalize(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.NextReviewDate = utcPtr(c.NextReviewDate)
}
