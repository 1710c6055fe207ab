package entity

import (
	"time"

	"github.com/google/uuid"
)

// FlashcardReview is the append-only audit record of one scheduling transition.
type FlashcardReview struct {
	ID                  uuid.UUID
	FlashcardID         uuid.UUID
	UserID              uuid.UUID
	SessionID           *uuid.UUID
	QualityRating       int
	ResponseTimeSeconds *int
	PreviousEaseFactor  *float64
	NewEaseFactor       *float64
	PreviousInterval    *int
	NewInterval         *int
	ReviewedAt          time.Time
}

// ReviewSubmission is what a client sends when grading a card.
// The next scheduling state is computed by the client; nil fields leave the card's state untouched.
type ReviewSubmission struct {
	QualityRating       int
	ResponseTimeSeconds *int
	SessionID           *uuid.UUID
	NewEaseFactor       *float64
	NewInterval         *int
	NextReviewDate      *time.Time
}
