package mapping

import (
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

type StudySession struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	SubjectID       *uuid.UUID `json:"subject_id"`
	SessionType     *string    `json:"session_type"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	CardsReviewed   int        `json:"cards_reviewed"`
	CardsCorrect    int        `json:"cards_correct"`
	FocusScore      *float64   `json:"focus_score"`
	MoodRating      *int       `json:"mood_rating"`
	IsCompleted     bool       `json:"is_completed"`
}

type StudySessionCreate struct {
	SubjectID   *uuid.UUID `json:"subject_id"`
	SessionType *string    `json:"session_type"`
}

// StudySessionUpdate distinguishes absent fields from explicit nulls.
type StudySessionUpdate struct {
	SubjectID       entity.Optional[*uuid.UUID] `json:"subject_id"`
	SessionType     entity.Optional[*string]    `json:"session_type"`
	EndedAt         entity.Optional[*time.Time] `json:"ended_at"`
	DurationMinutes entity.Optional[*int]       `json:"duration_minutes"`
	CardsReviewed   entity.Optional[int]        `json:"cards_reviewed"`
	CardsCorrect    entity.Optional[int]        `json:"cards_correct"`
	FocusScore      entity.Optional[*float64]   `json:"focus_score"`
	MoodRating      entity.Optional[*int]       `json:"mood_rating"`
	IsCompleted     entity.Optional[bool]       `json:"is_completed"`
}

func ToStudySession(in *entity.StudySession) StudySession {
	return StudySession{
		ID:              in.ID,
		UserID:          in.UserID,
		SubjectID:       in.SubjectID,
		SessionType:     in.SessionType,
		StartedAt:       in.StartedAt,
		EndedAt:         in.EndedAt,
		DurationMinutes: in.DurationMinutes,
		CardsReviewed:   in.CardsReviewed,
		CardsCorrect:    in.CardsCorrect,
		FocusScore:      in.FocusScore,
		MoodRating:      in.MoodRating,
		IsCompleted:     in.IsCompleted,
	}
}

func FromStudySessionCreate(in StudySessionCreate) *entity.StudySession {
	return &entity.StudySession{
		SubjectID:   in.SubjectID,
		SessionType: in.SessionType,
	}
}

func FromStudySessionUpdate(in StudySessionUpdate) entity.StudySessionUpdate {
	return entity.StudySessionUpdate{
		SubjectID:       in.SubjectID,
		SessionType:     in.SessionType,
		EndedAt:         in.EndedAt,
		DurationMinutes: in.DurationMinutes,
		CardsReviewed:   in.CardsReviewed,
		CardsCorrect:    in.CardsCorrect,
		FocusScore:      in.FocusScore,
		MoodRating:      in.MoodRating,
		IsCompleted:     in.IsCompleted,
	}
}
