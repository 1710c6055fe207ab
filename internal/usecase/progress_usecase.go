package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

// ProgressUsecase manages daily progress rows and derives study streaks from them.
type ProgressUsecase interface {
	CreateDailyProgress(ctx context.Context, userID uuid.UUID, p *entity.DailyProgress) (*entity.DailyProgress, error)
	GetDailyProgress(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.DailyProgress, error)
	UpdateDailyProgress(ctx context.Context, userID uuid.UUID, date time.Time, update entity.DailyProgressUpdate) (*entity.DailyProgress, error)
	ListDailyProgress(ctx context.Context, query *repository.ListDailyProgressQuery) ([]entity.DailyProgress, int64, error)
	GetStreak(ctx context.Context, userID uuid.UUID) (entity.Streak, error)
	// RefreshStreakSnapshots stores the live streak into today's row of every user that has one.
	RefreshStreakSnapshots(ctx context.Context) (int, error)
}

// NewProgressUsecase wires the repository with default behaviour.
func NewProgressUsecase(repo repository.DailyProgressRepository) ProgressUsecase {
	return &progressUsecase{
		repo:  repo,
		clock: time.Now,
		newID: uuid.New,
	}
}

type progressUsecase struct {
	repo  repository.DailyProgressRepository
	clock func() time.Time
	newID func() uuid.UUID
}

func (u *progressUsecase) CreateDailyProgress(ctx context.Context, userID uuid.UUID, p *entity.DailyProgress) (*entity.DailyProgress, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, entity.ErrInvalidDailyProgress
	}
	rec := *p
	rec.ID = u.newID()
	rec.UserID = userID
	rec.CreatedAt = time.Time{}
	rec.Normalize(u.clock())
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return u.repo.Create(ctx, &rec)
}

func (u *progressUsecase) GetDailyProgress(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.DailyProgress, error) {
	if date.IsZero() {
		return nil, entity.ErrInvalidDailyProgress
	}
	return u.repo.GetByDate(ctx, userID, entity.DateOf(date))
}

func (u *progressUsecase) UpdateDailyProgress(ctx context.Context, userID uuid.UUID, date time.Time, update entity.DailyProgressUpdate) (*entity.DailyProgress, error) {
	existing, err := u.GetDailyProgress(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	update.Apply(existing)
	existing.Normalize(u.clock())
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	return u.repo.Update(ctx, existing)
}

func (u *progressUsecase) ListDailyProgress(ctx context.Context, query *repository.ListDailyProgressQuery) ([]entity.DailyProgress, int64, error) {
	if query == nil {
		return nil, 0, entity.ErrInvalidPagination
	}
	if err := requireUser(query.UserID); err != nil {
		return nil, 0, err
	}
	if err := validatePage(query.Pagination); err != nil {
		return nil, 0, err
	}
	return u.repo.List(ctx, query)
}

func (u *progressUsecase) GetStreak(ctx context.Context, userID uuid.UUID) (entity.Streak, error) {
	if err := requireUser(userID); err != nil {
		return entity.Streak{}, err
	}
	records, err := u.repo.ListRecent(ctx, userID, entity.StreakWindowDays)
	if err != nil {
		return entity.Streak{}, err
	}
	return entity.ComputeStreak(records, u.clock().UTC()), nil
}

func (u *progressUsecase) RefreshStreakSnapshots(ctx context.Context) (int, error) {
	today := entity.DateOf(u.clock().UTC())
	users, err := u.repo.ListUserIDsByDate(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("list users for %s: %w", today.Format(time.DateOnly), err)
	}
	updated := 0
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		records, err := u.repo.ListRecent(ctx, userID, entity.StreakWindowDays)
		if err != nil {
			return updated, err
		}
		streak := entity.ComputeStreak(records, today)
		if err := u.repo.UpdateStreakSnapshot(ctx, userID, today, streak.Days); err != nil {
			return updated, fmt.Errorf("snapshot streak for %s: %w", userID, err)
		}
		updated++
	}
	return updated, nil
}
