package repository

import (
	"context"
	stdsql "database/sql"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

var sessionColumns = []string{
	"id", "user_id", "subject_id", "session_type", "started_at", "ended_at", "duration_minutes",
	"cards_reviewed", "cards_correct", "focus_score", "mood_rating", "is_completed",
}

// StudySessionRepository stores sessions in the study_sessions table.
type StudySessionRepository struct{ store *Store }

func NewStudySessionRepository(store *Store) repository.StudySessionRepository {
	return &StudySessionRepository{store: store}
}

func (r *StudySessionRepository) Create(ctx context.Context, s *entity.StudySession) (*entity.StudySession, error) {
	ins := r.store.builder().Insert(tableSessions).
		Columns(sessionColumns...).
		Values(
			s.ID, s.UserID, nullUUID(s.SubjectID), s.SessionType, s.StartedAt.UTC(), utcTime(s.EndedAt), s.DurationMinutes,
			s.CardsReviewed, s.CardsCorrect, s.FocusScore, s.MoodRating, s.IsCompleted,
		)
	if _, err := r.store.run(ctx, ins); err != nil {
		return nil, fmt.Errorf("create study session: %w", err)
	}
	return r.GetByID(ctx, s.UserID, s.ID)
}

func (r *StudySessionRepository) Update(ctx context.Context, s *entity.StudySession) (*entity.StudySession, error) {
	upd := r.store.builder().Update(tableSessions).
		Set("subject_id", nullUUID(s.SubjectID)).
		Set("session_type", s.SessionType).
		Set("ended_at", utcTime(s.EndedAt)).
		Set("duration_minutes", s.DurationMinutes).
		Set("cards_reviewed", s.CardsReviewed).
		Set("cards_correct", s.CardsCorrect).
		Set("focus_score", s.FocusScore).
		Set("mood_rating", s.MoodRating).
		Set("is_completed", s.IsCompleted).
		Where(sql.And(sql.EQ("id", s.ID), sql.EQ("user_id", s.UserID)))
	affected, err := r.store.exec(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("update study session: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrStudySessionNotFound
	}
	return r.GetByID(ctx, s.UserID, s.ID)
}

func (r *StudySessionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.StudySession, error) {
	t := r.store.builder().Table(tableSessions)
	sel := r.store.builder().Select(qualify(t, sessionColumns)...).From(t).
		Where(sql.And(sql.EQ(t.C("id"), id), sql.EQ(t.C("user_id"), userID)))

	sessions, err := r.collect(ctx, sel, 1)
	if err != nil {
		return nil, fmt.Errorf("get study session: %w", err)
	}
	if len(sessions) == 0 {
		return nil, entity.ErrStudySessionNotFound
	}
	return &sessions[0], nil
}

func (r *StudySessionRepository) List(ctx context.Context, query *repository.ListStudySessionQuery) ([]entity.StudySession, int64, error) {
	t := r.store.builder().Table(tableSessions)
	preds := []*sql.Predicate{sql.EQ(t.C("user_id"), query.UserID)}
	if query.SubjectID != nil {
		preds = append(preds, sql.EQ(t.C("subject_id"), *query.SubjectID))
	}
	if query.SessionType != nil {
		preds = append(preds, sql.EQ(t.C("session_type"), *query.SessionType))
	}
	pred := sql.And(preds...)

	total, err := r.store.count(ctx, t, pred)
	if err != nil {
		return nil, 0, fmt.Errorf("count study sessions: %w", err)
	}
	if query.Empty() {
		return []entity.StudySession{}, total, nil
	}

	sel := r.store.builder().Select(qualify(t, sessionColumns)...).From(t).
		Where(pred).
		OrderBy(t.C("started_at")+" DESC", t.C("id")+" ASC")
	page(sel, query.Skip, query.Limit)

	sessions, err := r.collect(ctx, sel, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list study sessions: %w", err)
	}
	return sessions, total, nil
}

// Delete removes the session; reviews keep their history with session_id cleared by ON DELETE SET NULL.
func (r *StudySessionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	del := r.store.builder().Delete(tableSessions).
		Where(sql.And(sql.EQ("id", id), sql.EQ("user_id", userID)))
	affected, err := r.store.exec(ctx, del)
	if err != nil {
		return fmt.Errorf("delete study session: %w", err)
	}
	if affected == 0 {
		return entity.ErrStudySessionNotFound
	}
	return nil
}

func (r *StudySessionRepository) collect(ctx context.Context, sel *sql.Selector, capacity int) ([]entity.StudySession, error) {
	sessions := make([]entity.StudySession, 0, capacity)
	err := r.store.query(ctx, sel, func(rows *sql.Rows) error {
		var (
			s           entity.StudySession
			subjectID   uuid.NullUUID
			sessionType stdsql.NullString
			endedAt     stdsql.NullTime
			duration    stdsql.NullInt64
			focus       stdsql.NullFloat64
			mood        stdsql.NullInt64
		)
		if err := rows.Scan(
			&s.ID, &s.UserID, &subjectID, &sessionType, &s.StartedAt, &endedAt, &duration,
			&s.CardsReviewed, &s.CardsCorrect, &focus, &mood, &s.IsCompleted,
		); err != nil {
			return err
		}
		s.SubjectID = uuidPtr(subjectID)
		s.SessionType = stringPtr(sessionType)
		s.StartedAt = s.StartedAt.UTC()
		s.EndedAt = timePtr(endedAt)
		s.DurationMinutes = intPtr(duration)
		s.FocusScore = floatPtr(focus)
		s.MoodRating = intPtr(mood)
		sessions = append(sessions, s)
		return nil
	})
	return sessions, err
}
