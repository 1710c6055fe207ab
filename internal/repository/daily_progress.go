package repository

import (
	"context"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

// ListDailyProgressQuery holds parameters for listing progress rows, newest date first.
type ListDailyProgressQuery struct {
	Pagination
	FilterOrder

	UserID uuid.UUID
}

// DailyProgressRepository persists one progress row per user and date.
type DailyProgressRepository interface {
	Create(ctx context.Context, p *entity.DailyProgress) (*entity.DailyProgress, error)
	Update(ctx context.Context, p *entity.DailyProgress) (*entity.DailyProgress, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.DailyProgress, error)
	List(ctx context.Context, query *ListDailyProgressQuery) ([]entity.DailyProgress, int64, error)
	// ListRecent returns at most limit rows for the user ordered by date descending.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entity.DailyProgress, error)
	// ListUserIDsByDate returns every user that has a row for date.
	ListUserIDsByDate(ctx context.Context, date time.Time) ([]uuid.UUID, error)
	UpdateStreakSnapshot(ctx context.Context, userID uuid.UUID, date time.Time, streakDays int) error
}
