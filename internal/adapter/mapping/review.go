package mapping

import (
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

type Review struct {
	ID                  uuid.UUID  `json:"id"`
	FlashcardID         uuid.UUID  `json:"flashcard_id"`
	UserID              uuid.UUID  `json:"user_id"`
	SessionID           *uuid.UUID `json:"session_id"`
	QualityRating       int        `json:"quality_rating"`
	ResponseTimeSeconds *int       `json:"response_time_seconds"`
	PreviousEaseFactor  *float64   `json:"previous_ease_factor"`
	NewEaseFactor       *float64   `json:"new_ease_factor"`
	PreviousInterval    *int       `json:"previous_interval"`
	NewInterval         *int       `json:"new_interval"`
	ReviewedAt          time.Time  `json:"reviewed_at"`
}

// ReviewCreate is the grading payload. Client supplied previous_* values are
// not part of it; they are always read from the stored card.
type ReviewCreate struct {
	QualityRating       *int       `json:"quality_rating"`
	ResponseTimeSeconds *int       `json:"response_time_seconds"`
	SessionID           *uuid.UUID `json:"session_id"`
	NewEaseFactor       *float64   `json:"new_ease_factor"`
	NewInterval         *int       `json:"new_interval"`
	NextReviewDate      *time.Time `json:"next_review_date"`
}

type Streak struct {
	StreakDays    int   `json:"streak_days"`
	LastStudyDate *Date `json:"last_study_date"`
}

func ToReview(in *entity.FlashcardReview) Review {
	return Review{
		ID:                  in.ID,
		FlashcardID:         in.FlashcardID,
		UserID:              in.UserID,
		SessionID:           in.SessionID,
		QualityRating:       in.QualityRating,
		ResponseTimeSeconds: in.ResponseTimeSeconds,
		PreviousEaseFactor:  in.PreviousEaseFactor,
		NewEaseFactor:       in.NewEaseFactor,
		PreviousInterval:    in.PreviousInterval,
		NewInterval:         in.NewInterval,
		ReviewedAt:          in.ReviewedAt,
	}
}

// FromReviewCreate builds the submission; a missing quality rating is out of range.
func FromReviewCreate(in ReviewCreate) entity.ReviewSubmission {
	quality := entity.MinQualityRating - 1
	if in.QualityRating != nil {
		quality = *in.QualityRating
	}
	return entity.ReviewSubmission{
		QualityRating:       quality,
		ResponseTimeSeconds: in.ResponseTimeSeconds,
		SessionID:           in.SessionID,
		NewEaseFactor:       in.NewEaseFactor,
		NewInterval:         in.NewInterval,
		NextReviewDate:      in.NextReviewDate,
	}
}

func ToStreak(in entity.Streak) Streak {
	return Streak{StreakDays: in.Days, LastStudyDate: datePtr(in.LastStudyDate)}
}
