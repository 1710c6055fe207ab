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

var reviewColumns = []string{
	"id", "flashcard_id", "user_id", "session_id", "quality_rating", "response_time_seconds",
	"previous_ease_factor", "new_ease_factor", "previous_interval", "new_interval", "reviewed_at",
}

type ReviewRepository struct{ store *Store }

func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &ReviewRepository{store: store}
}

func (r *ReviewRepository) Create(ctx context.Context, review *entity.FlashcardReview) (*entity.FlashcardReview, error) {
	ins := r.store.builder().Insert(tableReviews).
		Columns(reviewColumns...).
		Values(
			review.ID, review.FlashcardID, review.UserID, nullUUID(review.SessionID), review.QualityRating, review.ResponseTimeSeconds,
			review.PreviousEaseFactor, review.NewEaseFactor, review.PreviousInterval, review.NewInterval, review.ReviewedAt.UTC(),
		)
	if _, err := r.store.run(ctx, ins); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	saved := *review
	saved.ReviewedAt = saved.ReviewedAt.UTC()
	return &saved, nil
}

func (r *ReviewRepository) ListByFlashcard(ctx context.Context, userID, flashcardID uuid.UUID, p repository.Pagination) ([]entity.FlashcardReview, int64, error) {
	t := r.store.builder().Table(tableReviews)
	pred := sql.And(sql.EQ(t.C("flashcard_id"), flashcardID), sql.EQ(t.C("user_id"), userID))

	total, err := r.store.count(ctx, t, pred)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}
	if p.Empty() {
		return []entity.FlashcardReview{}, total, nil
	}

	sel := r.store.builder().Select(qualify(t, reviewColumns)...).From(t).
		Where(pred).
		OrderBy(t.C("reviewed_at")+" DESC", t.C("id")+" ASC")
	page(sel, p.Skip, p.Limit)

	reviews := make([]entity.FlashcardReview, 0, p.Limit)
	err = r.store.query(ctx, sel, func(rows *sql.Rows) error {
		var (
			review       entity.FlashcardReview
			sessionID    uuid.NullUUID
			responseTime stdsql.NullInt64
			prevEase     stdsql.NullFloat64
			newEase      stdsql.NullFloat64
			prevInterval stdsql.NullInt64
			newInterval  stdsql.NullInt64
		)
		if err := rows.Scan(
			&review.ID, &review.FlashcardID, &review.UserID, &sessionID, &review.QualityRating, &responseTime,
			&prevEase, &newEase, &prevInterval, &newInterval, &review.ReviewedAt,
		); err != nil {
			return err
		}
		review.SessionID = uuidPtr(sessionID)
		review.ResponseTimeSeconds = intPtr(responseTime)
		review.PreviousEaseFactor = floatPtr(prevEase)
		review.NewEaseFactor = floatPtr(newEase)
		review.PreviousInterval = intPtr(prevInterval)
		review.NewInterval = intPtr(newInterval)
		review.ReviewedAt = review.ReviewedAt.UTC()
		reviews = append(reviews, review)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, total, nil
}
