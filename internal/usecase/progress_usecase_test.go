package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

func newProgressFixture(now time.Time) (ProgressUsecase, *fakeStore) {
	store := newFakeStore()
	uc := NewProgressUsecase(fakeProgressRepo{store})
	uc.(*progressUsecase).clock = func() time.Time { return now }
	return uc, store
}

func TestCreateDailyProgressRejectsDuplicate(t *testing.T) {
	now := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)
	uc, _ := newProgressFixture(now)
	user := uuid.New()

	created, err := uc.CreateDailyProgress(context.Background(), user, &entity.DailyProgress{Date: now, TotalStudyMinutes: 25})
	if err != nil {
		t.Fatalf("CreateDailyProgress failed: %v", err)
	}
	if !created.Date.Equal(entity.DateOf(now)) {
		t.Errorf("expected date truncated to %v, got %v", entity.DateOf(now), created.Date)
	}

	_, err = uc.CreateDailyProgress(context.Background(), user, &entity.DailyProgress{Date: now.Add(-time.Hour)})
	if !errors.Is(err, entity.ErrDuplicateDailyProgress) {
		t.Fatalf("expected ErrDuplicateDailyProgress, got %v", err)
	}

	if _, err := uc.CreateDailyProgress(context.Background(), uuid.New(), &entity.DailyProgress{Date: now}); err != nil {
		t.Errorf("another user may use the same date, got %v", err)
	}
	if _, err := uc.CreateDailyProgress(context.Background(), user, &entity.DailyProgress{Date: now.AddDate(0, 0, -1), CardsReviewed: -1}); !errors.Is(err, entity.ErrInvalidDailyProgress) {
		t.Errorf("expected ErrInvalidDailyProgress, got %v", err)
	}
}

func TestUpdateDailyProgress(t *testing.T) {
	now := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)
	uc, _ := newProgressFixture(now)
	user := uuid.New()
	if _, err := uc.CreateDailyProgress(context.Background(), user, &entity.DailyProgress{Date: now, TotalStudyMinutes: 10, NotesCreated: 2}); err != nil {
		t.Fatalf("CreateDailyProgress failed: %v", err)
	}

	updated, err := uc.UpdateDailyProgress(context.Background(), user, now, entity.DailyProgressUpdate{TotalStudyMinutes: entity.Some(40)})
	if err != nil {
		t.Fatalf("UpdateDailyProgress failed: %v", err)
	}
	if updated.TotalStudyMinutes != 40 || updated.NotesCreated != 2 {
		t.Errorf("unexpected row %+v", updated)
	}

	if _, err := uc.UpdateDailyProgress(context.Background(), user, now.AddDate(0, 0, -3), entity.DailyProgressUpdate{}); !errors.Is(err, entity.ErrDailyProgressNotFound) {
		t.Errorf("expected ErrDailyProgressNotFound, got %v", err)
	}
}

func TestGetStreak(t *testing.T) {
	now := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)
	uc, _ := newProgressFixture(now)
	user := uuid.New()

	streak, err := uc.GetStreak(context.Background(), user)
	if err != nil {
		t.Fatalf("GetStreak failed: %v", err)
	}
	if streak.Days != 0 || streak.LastStudyDate != nil {
		t.Errorf("expected empty streak, got %+v", streak)
	}

	for offset, minutes := range []int{30, 20, 0, 15} {
		day := now.AddDate(0, 0, -offset)
		if _, err := uc.CreateDailyProgress(context.Background(), user, &entity.DailyProgress{Date: day, TotalStudyMinutes: minutes}); err != nil {
			t.Fatalf("CreateDailyProgress failed: %v", err)
		}
	}

	streak, err = uc.GetStreak(context.Background(), user)
	if err != nil {
		t.Fatalf("GetStreak failed: %v", err)
	}
	if streak.Days != 2 {
		t.Errorf("expected 2 days, got %d", streak.Days)
	}
	if streak.LastStudyDate == nil || !streak.LastStudyDate.Equal(entity.DateOf(now)) {
		t.Errorf("expected last study date today, got %v", streak.LastStudyDate)
	}
}

func TestRefreshStreakSnapshots(t *testing.T) {
	now := time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC)
	uc, store := newProgressFixture(now)
	active := uuid.New()
	idle := uuid.New()

	for offset := 0; offset < 3; offset++ {
		if _, err := uc.CreateDailyProgress(context.Background(), active, &entity.DailyProgress{Date: now.AddDate(0, 0, -offset), TotalStudyMinutes: 10}); err != nil {
			t.Fatalf("CreateDailyProgress failed: %v", err)
		}
	}
	if _, err := uc.CreateDailyProgress(context.Background(), idle, &entity.DailyProgress{Date: now.AddDate(0, 0, -1), TotalStudyMinutes: 10}); err != nil {
		t.Fatalf("CreateDailyProgress failed: %v", err)
	}

	n, err := uc.RefreshStreakSnapshots(context.Background())
	if err != nil {
		t.Fatalf("RefreshStreakSnapshots failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected one refreshed user, got %d", n)
	}
	today, _ := fakeProgressRepo{store}.GetByDate(context.Background(), active, entity.DateOf(now))
	if today.StreakDays != 3 {
		t.Errorf("expected snapshot 3, got %d", today.StreakDays)
	}

	rows, total, err := uc.ListDailyProgress(context.Background(), &repository.ListDailyProgressQuery{UserID: active, Pagination: repository.Pagination{Limit: 2}})
	if err != nil {
		t.Fatalf("ListDailyProgress failed: %v", err)
	}
	if total != 3 || len(rows) != 2 || !rows[0].Date.Equal(entity.DateOf(now)) {
		t.Errorf("expected newest two of three rows, got %d of %d", len(rows), total)
	}
}
