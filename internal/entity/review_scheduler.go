package entity

import (
	"time"

	"github.com/google/uuid"
)

// Quality scale accepted by RecordReview. Ratings at or above PassThreshold count as correct.
const (
	MinQualityRating = 0
	MaxQualityRating = 5
	PassThreshold    = 3
)

// ValidateQualityRating rejects ratings outside the accepted scale.
func ValidateQualityRating(q int) error {
	if q < MinQualityRating || q > MaxQualityRating {
		return ErrInvalidQualityRating
	}
	return nil
}

// Validate checks a submission before it touches any card state.
func (s ReviewSubmission) Validate() error {
	if err := ValidateQualityRating(s.QualityRating); err != nil {
		return err
	}
	if s.ResponseTimeSeconds != nil && *s.ResponseTimeSeconds < 0 {
		return ErrInvalidResponseTime
	}
	if s.NewEaseFactor != nil && *s.NewEaseFactor <= 0 {
		return ErrInvalidReviewState
	}
	if s.NewInterval != nil && *s.NewInterval < 0 {
		return ErrInvalidReviewState
	}
	return nil
}

// Passed reports whether the submission counts as a correct recall.
func (s ReviewSubmission) Passed() bool {
	return s.QualityRating >= PassThreshold
}

// RecordReview applies one graded review to card and returns the updated card
// together with the audit record of the transition. The input card is not modified.
//
// The next ease factor, interval and due date are taken from the submission as-is;
// nil values keep the card's current state.
func RecordReview(card Flashcard, sub ReviewSubmission, userID uuid.UUID, now time.Time) (Flashcard, FlashcardReview, error) {
	if err := sub.Validate(); err != nil {
		return Flashcard{}, FlashcardReview{}, err
	}

	prevInterval := card.IntervalDays
	review := FlashcardReview{
		ID:                  uuid.New(),
		FlashcardID:         card.ID,
		UserID:              userID,
		SessionID:           sub.SessionID,
		QualityRating:       sub.QualityRating,
		ResponseTimeSeconds: sub.ResponseTimeSeconds,
		PreviousEaseFactor:  copyPtr(card.EaseFactor),
		PreviousInterval:    &prevInterval,
		ReviewedAt:          now.UTC(),
	}

	card.TotalReviews++
	if sub.Passed() {
		card.CorrectReviews++
		card.Repetitions++
	} else {
		card.Repetitions = 0
	}
	if sub.NewEaseFactor != nil {
		card.EaseFactor = copyPtr(sub.NewEaseFactor)
	}
	if sub.NewInterval != nil {
		card.IntervalDays = *sub.NewInterval
	}
	if sub.NextReviewDate != nil {
		card.NextReviewDate = utcPtr(sub.NextReviewDate)
	}

	newInterval := card.IntervalDays
	review.NewEaseFactor = copyPtr(card.EaseFactor)
	review.NewInterval = &newInterval

	return card, review, nil
}

// IsDue reports whether card should be offered for review at asOf.
// Cards that were never scheduled are always due unless suspended.
func IsDue(card Flashcard, asOf time.Time) bool {
	if card.IsSuspended {
		return false
	}
	return card.NextReviewDate == nil || !card.NextReviewDate.After(asOf)
}

// SelectDueCards filters cards by IsDue keeping their input order, then skips
// offset cards and takes at most limit.
func SelectDueCards(cards []Flashcard, asOf time.Time, offset, limit int) []Flashcard {
	out := []Flashcard{}
	if limit <= 0 {
		return out
	}
	if offset < 0 {
		offset = 0
	}
	skipped := 0
	for _, c := range cards {
		if !IsDue(c, asOf) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
