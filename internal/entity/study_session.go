package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StudySession is one sitting of study. Reviews may point at it through their SessionID.
type StudySession struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SubjectID   *uuid.UUID
	SessionType *string

	StartedAt       time.Time
	EndedAt         *time.Time
	DurationMinutes *int

	CardsReviewed int
	CardsCorrect  int
	FocusScore    *float64
	MoodRating    *int
	IsCompleted   bool
}

// StudySessionUpdate is the explicit partial update accepted for a session.
type StudySessionUpdate struct {
	SubjectID       Optional[*uuid.UUID]
	SessionType     Optional[*string]
	EndedAt         Optional[*time.Time]
	DurationMinutes Optional[*int]
	CardsReviewed   Optional[int]
	CardsCorrect    Optional[int]
	FocusScore      Optional[*float64]
	MoodRating      Optional[*int]
	IsCompleted     Optional[bool]
}

// Apply merges the set fields of u into s.
func (u StudySessionUpdate) Apply(s *StudySession) {
	apply(&s.SubjectID, u.SubjectID)
	apply(&s.SessionType, u.SessionType)
	apply(&s.EndedAt, u.EndedAt)
	apply(&s.DurationMinutes, u.DurationMinutes)
	apply(&s.CardsReviewed, u.CardsReviewed)
	apply(&s.CardsCorrect, u.CardsCorrect)
	apply(&s.FocusScore, u.FocusScore)
	apply(&s.MoodRating, u.MoodRating)
	apply(&s.IsCompleted, u.IsCompleted)
}

// Validate rejects negative tallies and an end before the start.
func (s *StudySession) Validate() error {
	if s.StartedAt.IsZero() {
		return ErrInvalidStudySession
	}
	if s.CardsReviewed < 0 || s.CardsCorrect < 0 || s.CardsCorrect > s.CardsReviewed {
		return ErrInvalidStudySession
	}
	if s.DurationMinutes != nil && *s.DurationMinutes < 0 {
		return ErrInvalidStudySession
	}
	if s.FocusScore != nil && *s.FocusScore < 0 {
		return ErrInvalidStudySession
	}
	if s.EndedAt != nil && s.EndedAt.Before(s.StartedAt) {
		return ErrInvalidStudySession
	}
	return nil
}

// Normalize fills the start time and drops a blank session type.
func (s *StudySession) Normalize(now time.Time) {
	if s.SessionType != nil {
		trimmed := strings.TrimSpace(*s.SessionType)
		if trimmed == "" {
			s.SessionType = nil
		} else {
			s.SessionType = &trimmed
		}
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = now
	}
	s.StartedAt = s.StartedAt.UTC()
	s.EndedAt = utcPtr(s.EndedAt)
}

// Complete closes the session at now and records its length in whole minutes.
// Completing twice moves the end forward.
func (s *StudySession) Complete(now time.Time) {
	end := now.UTC()
	if end.Before(s.StartedAt) {
		end = s.StartedAt
	}
	minutes := int(end.Sub(s.StartedAt) / time.Minute)
	s.EndedAt = &end
	s.DurationMinutes = &minutes
	s.IsCompleted = true
}
