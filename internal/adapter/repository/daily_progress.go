package repository

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

var progressColumns = []string{
	"id", "user_id", "date", "total_study_minutes", "cards_reviewed", "cards_mastered",
	"notes_created", "streak_days", "created_at",
}

// DailyProgressRepository stores one daily_progress row per user and date.
type DailyProgressRepository struct{ store *Store }

func NewDailyProgressRepository(store *Store) repository.DailyProgressRepository {
	return &DailyProgressRepository{store: store}
}

func (r *DailyProgressRepository) Create(ctx context.Context, p *entity.DailyProgress) (*entity.DailyProgress, error) {
	date := entity.DateOf(p.Date)
	ins := r.store.builder().Insert(tableProgress).
		Columns(progressColumns...).
		Values(
			p.ID, p.UserID, date, p.TotalStudyMinutes, p.CardsReviewed, p.CardsMastered,
			p.NotesCreated, p.StreakDays, p.CreatedAt.UTC(),
		)
	if _, err := r.store.run(ctx, ins); err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateDailyProgress
		}
		return nil, fmt.Errorf("create daily progress: %w", err)
	}
	return r.GetByDate(ctx, p.UserID, date)
}

func (r *DailyProgressRepository) Update(ctx context.Context, p *entity.DailyProgress) (*entity.DailyProgress, error) {
	date := entity.DateOf(p.Date)
	upd := r.store.builder().Update(tableProgress).
		Set("total_study_minutes", p.TotalStudyMinutes).
		Set("cards_reviewed", p.CardsReviewed).
		Set("cards_mastered", p.CardsMastered).
		Set("notes_created", p.NotesCreated).
		Set("streak_days", p.StreakDays).
		Where(sql.And(sql.EQ("user_id", p.UserID), sql.EQ("date", date)))
	affected, err := r.store.exec(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("update daily progress: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrDailyProgressNotFound
	}
	return r.GetByDate(ctx, p.UserID, date)
}

func (r *DailyProgressRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.DailyProgress, error) {
	t := r.store.builder().Table(tableProgress)
	sel := r.store.builder().Select(qualify(t, progressColumns)...).From(t).
		Where(sql.And(sql.EQ(t.C("user_id"), userID), sql.EQ(t.C("date"), entity.DateOf(date))))

	rows, err := r.collect(ctx, sel, 1)
	if err != nil {
		return nil, fmt.Errorf("get daily progress: %w", err)
	}
	if len(rows) == 0 {
		return nil, entity.ErrDailyProgressNotFound
	}
	return &rows[0], nil
}

func (r *DailyProgressRepository) List(ctx context.Context, query *repository.ListDailyProgressQuery) ([]entity.DailyProgress, int64, error) {
	var params listDailyProgressParams
	if err := bindQuery(query, &params, listDailyProgressSchema); err != nil {
		return nil, 0, err
	}

	t := r.store.builder().Table(tableProgress)
	preds := []*sql.Predicate{sql.EQ(t.C("user_id"), query.UserID)}
	if params.DateFrom != nil {
		preds = append(preds, sql.GTE(t.C("date"), entity.DateOf(params.DateFrom.UTC())))
	}
	if params.DateTo != nil {
		preds = append(preds, sql.LTE(t.C("date"), entity.DateOf(params.DateTo.UTC())))
	}
	if params.MinMinutes != nil {
		preds = append(preds, sql.GTE(t.C("total_study_minutes"), *params.MinMinutes))
	}
	pred := sql.And(preds...)

	total, err := r.store.count(ctx, t, pred)
	if err != nil {
		return nil, 0, fmt.Errorf("count daily progress: %w", err)
	}
	if query.Empty() {
		return []entity.DailyProgress{}, total, nil
	}

	sel := r.store.builder().Select(qualify(t, progressColumns)...).From(t).
		Where(pred).
		OrderBy(params.orderTerms(t, listDailyProgressSchema.Order)...)
	page(sel, query.Skip, query.Limit)

	records, err := r.collect(ctx, sel, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list daily progress: %w", err)
	}
	return records, total, nil
}

func (r *DailyProgressRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entity.DailyProgress, error) {
	if limit <= 0 {
		return []entity.DailyProgress{}, nil
	}
	t := r.store.builder().Table(tableProgress)
	sel := r.store.builder().Select(qualify(t, progressColumns)...).From(t).
		Where(sql.EQ(t.C("user_id"), userID)).
		OrderBy(t.C("date") + " DESC").
		Limit(limit)

	records, err := r.collect(ctx, sel, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent daily progress: %w", err)
	}
	return records, nil
}

func (r *DailyProgressRepository) ListUserIDsByDate(ctx context.Context, date time.Time) ([]uuid.UUID, error) {
	t := r.store.builder().Table(tableProgress)
	sel := r.store.builder().Select(t.C("user_id")).From(t).
		Where(sql.EQ(t.C("date"), entity.DateOf(date))).
		OrderBy(t.C("user_id") + " ASC")

	var users []uuid.UUID
	err := r.store.query(ctx, sel, func(rows *sql.Rows) error {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return err
		}
		users = append(users, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users by date: %w", err)
	}
	return users, nil
}

func (r *DailyProgressRepository) UpdateStreakSnapshot(ctx context.Context, userID uuid.UUID, date time.Time, streakDays int) error {
	upd := r.store.builder().Update(tableProgress).
		Set("streak_days", streakDays).
		Where(sql.And(sql.EQ("user_id", userID), sql.EQ("date", entity.DateOf(date))))
	affected, err := r.store.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("update streak snapshot: %w", err)
	}
	if affected == 0 {
		return entity.ErrDailyProgressNotFound
	}
	return nil
}

func (r *DailyProgressRepository) collect(ctx context.Context, sel *sql.Selector, capacity int) ([]entity.DailyProgress, error) {
	records := make([]entity.DailyProgress, 0, capacity)
	err := r.store.query(ctx, sel, func(rows *sql.Rows) error {
		var p entity.DailyProgress
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Date, &p.TotalStudyMinutes, &p.CardsReviewed, &p.CardsMastered,
			&p.NotesCreated, &p.StreakDays, &p.CreatedAt,
		); err != nil {
			return err
		}
		p.Date = entity.DateOf(p.Date)
		p.CreatedAt = p.CreatedAt.UTC()
		records = append(records, p)
		return nil
	})
	return records, err
}
