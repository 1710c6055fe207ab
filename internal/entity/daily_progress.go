package entity

import (
	"time"

	"github.com/google/uuid"
)

// DailyProgress aggregates a user's study activity for one calendar date.
type DailyProgress struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Date              time.Time
	TotalStudyMinutes int
	CardsReviewed     int
	CardsMastered     int
	NotesCreated      int
	// StreakDays is a snapshot only; the live streak comes from ComputeStreak.
	StreakDays int
	CreatedAt  time.Time
}

// DailyProgressUpdate is the explicit partial update accepted for a progress row.
type DailyProgressUpdate struct {
	TotalStudyMinutes Optional[int]
	CardsReviewed     Optional[int]
	CardsMastered     Optional[int]
	NotesCreated      Optional[int]
	StreakDays        Optional[int]
}

// Apply merges the set fields of u into p.
func (u DailyProgressUpdate) Apply(p *DailyProgress) {
	apply(&p.TotalStudyMinutes, u.TotalStudyMinutes)
	apply(&p.CardsReviewed, u.CardsReviewed)
	apply(&p.CardsMastered, u.CardsMastered)
	apply(&p.NotesCreated, u.NotesCreated)
	apply(&p.StreakDays, u.StreakDays)
}

// Validate checks that every counter is non-negative.
func (p *DailyProgress) Validate() error {
	if p.Date.IsZero() {
		return ErrInvalidDailyProgress
	}
	for _, v := range []int{p.TotalStudyMinutes, p.CardsReviewed, p.CardsMastered, p.NotesCreated, p.StreakDays} {
		if v < 0 {
			return ErrInvalidDailyProgress
		}
	}
	return nil
}

// Normalize truncates the date and fills the creation time.
func (p *DailyProgress) Normalize(now time.Time) {
	p.Date = DateOf(p.Date)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.CreatedAt = p.CreatedAt.UTC()
}
