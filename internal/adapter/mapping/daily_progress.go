package mapping

import (
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

type DailyProgress struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Date              Date      `json:"date"`
	TotalStudyMinutes int       `json:"total_study_minutes"`
	CardsReviewed     int       `json:"cards_reviewed"`
	CardsMastered     int       `json:"cards_mastered"`
	NotesCreated      int       `json:"notes_created"`
	StreakDays        int       `json:"streak_days"`
	CreatedAt         time.Time `json:"created_at"`
}

type DailyProgressCreate struct {
	Date              *Date `json:"date"`
	TotalStudyMinutes int   `json:"total_study_minutes"`
	CardsReviewed     int   `json:"cards_reviewed"`
	CardsMastered     int   `json:"cards_mastered"`
	NotesCreated      int   `json:"notes_created"`
	StreakDays        int   `json:"streak_days"`
}

type DailyProgressUpdate struct {
	TotalStudyMinutes entity.Optional[int] `json:"total_study_minutes"`
	CardsReviewed     entity.Optional[int] `json:"cards_reviewed"`
	CardsMastered     entity.Optional[int] `json:"cards_mastered"`
	NotesCreated      entity.Optional[int] `json:"notes_created"`
	StreakDays        entity.Optional[int] `json:"streak_days"`
}

func ToDailyProgress(in *entity.DailyProgress) DailyProgress {
	return DailyProgress{
		ID:                in.ID,
		UserID:            in.UserID,
		Date:              NewDate(in.Date),
		TotalStudyMinutes: in.TotalStudyMinutes,
		CardsReviewed:     in.CardsReviewed,
		CardsMastered:     in.CardsMastered,
		NotesCreated:      in.NotesCreated,
		StreakDays:        in.StreakDays,
		CreatedAt:         in.CreatedAt,
	}
}

// FromDailyProgressCreate leaves Date zero when absent, which validation rejects.
func FromDailyProgressCreate(in DailyProgressCreate) *entity.DailyProgress {
	p := &entity.DailyProgress{
		TotalStudyMinutes: in.TotalStudyMinutes,
		CardsReviewed:     in.CardsReviewed,
		CardsMastered:     in.CardsMastered,
		NotesCreated:      in.NotesCreated,
		StreakDays:        in.StreakDays,
	}
	if in.Date != nil {
		p.Date = in.Date.Time()
	}
	return p
}

func FromDailyProgressUpdate(in DailyProgressUpdate) entity.DailyProgressUpdate {
	return entity.DailyProgressUpdate{
		TotalStudyMinutes: in.TotalStudyMinutes,
		CardsReviewed:     in.CardsReviewed,
		CardsMastered:     in.CardsMastered,
		NotesCreated:      in.NotesCreated,
		StreakDays:        in.StreakDays,
	}
}
