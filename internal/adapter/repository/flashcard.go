package repository

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

var cardColumns = []string{
	"id", "deck_id", "front_content", "back_content", "front_content_type", "back_content_type",
	"hint", "explanation", "difficulty_rating", "ease_factor", "interval_days", "repetitions",
	"next_review_date", "total_reviews", "correct_reviews", "is_suspended", "created_at",
}

// FlashcardRepository stores cards in the flashcards table. A card belongs to
// a user through its deck, so ownership checks go through a deck subquery.
type FlashcardRepository struct{ store *Store }

func NewFlashcardRepository(store *Store) repository.FlashcardRepository {
	return &FlashcardRepository{store: store}
}

func (r *FlashcardRepository) Create(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	ins := r.store.builder().Insert(tableCards).
		Columns(cardColumns...).
		Values(
			card.ID, card.DeckID, card.FrontContent, card.BackContent, card.FrontContentType, card.BackContentType,
			card.Hint, card.Explanation, card.DifficultyRating, card.EaseFactor, card.IntervalDays, card.Repetitions,
			utcTime(card.NextReviewDate), card.TotalReviews, card.CorrectReviews, card.IsSuspended, card.CreatedAt.UTC(),
		)
	if _, err := r.store.run(ctx, ins); err != nil {
		return nil, fmt.Errorf("create flashcard: %w", err)
	}
	return r.byID(ctx, card.ID)
}

func (r *FlashcardRepository) Update(ctx context.Context, card *entity.Flashcard) (*entity.Flashcard, error) {
	upd := r.store.builder().Update(tableCards).
		Set("front_content", card.FrontContent).
		Set("back_content", card.BackContent).
		Set("front_content_type", card.FrontContentType).
		Set("back_content_type", card.BackContentType).
		Set("hint", card.Hint).
		Set("explanation", card.Explanation).
		Set("difficulty_rating", card.DifficultyRating).
		Set("ease_factor", card.EaseFactor).
		Set("interval_days", card.IntervalDays).
		Set("repetitions", card.Repetitions).
		Set("next_review_date", utcTime(card.NextReviewDate)).
		Set("total_reviews", card.TotalReviews).
		Set("correct_reviews", card.CorrectReviews).
		Set("is_suspended", card.IsSuspended).
		Where(sql.EQ("id", card.ID))
	affected, err := r.store.exec(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("update flashcard: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrFlashcardNotFound
	}
	return r.byID(ctx, card.ID)
}

func (r *FlashcardRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Flashcard, error) {
	return r.get(ctx, userID, id, false)
}

func (r *FlashcardRepository) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.Flashcard, error) {
	return r.get(ctx, userID, id, true)
}

func (r *FlashcardRepository) get(ctx context.Context, userID, id uuid.UUID, forUpdate bool) (*entity.Flashcard, error) {
	t := r.store.builder().Table(tableCards)
	sel := r.store.builder().Select(qualify(t, cardColumns)...).From(t).
		Where(sql.And(sql.EQ(t.C("id"), id), r.ownedBy(t, userID)))
	if forUpdate {
		sel = r.store.lock(ctx, sel)
	}
	return r.one(ctx, sel)
}

// byID reads a card back after a write; the caller has already checked ownership.
func (r *FlashcardRepository) byID(ctx context.Context, id uuid.UUID) (*entity.Flashcard, error) {
	t := r.store.builder().Table(tableCards)
	sel := r.store.builder().Select(qualify(t, cardColumns)...).From(t).
		Where(sql.EQ(t.C("id"), id))
	return r.one(ctx, sel)
}

func (r *FlashcardRepository) one(ctx context.Context, sel *sql.Selector) (*entity.Flashcard, error) {
	var found *entity.Flashcard
	err := r.store.query(ctx, sel, func(rows *sql.Rows) error {
		card, err := scanFlashcard(rows)
		found = card
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get flashcard: %w", err)
	}
	if found == nil {
		return nil, entity.ErrFlashcardNotFound
	}
	return found, nil
}

// ownedBy restricts cards to decks owned by userID without joining, so a row lock only covers the card.
func (r *FlashcardRepository) ownedBy(t *sql.SelectTable, userID uuid.UUID) *sql.Predicate {
	decks := r.store.builder().Table(tableDecks)
	owned := r.store.builder().Select(decks.C("id")).From(decks).
		Where(sql.EQ(decks.C("user_id"), userID))
	return sql.In(t.C("deck_id"), owned)
}

func (r *FlashcardRepository) List(ctx context.Context, query *repository.ListFlashcardQuery) ([]entity.Flashcard, int64, error) {
	t := r.store.builder().Table(tableCards)
	preds := []*sql.Predicate{sql.EQ(t.C("deck_id"), query.DeckID), r.ownedBy(t, query.UserID)}
	if query.IsSuspended != nil {
		preds = append(preds, sql.EQ(t.C("is_suspended"), *query.IsSuspended))
	}
	pred := sql.And(preds...)

	total, err := r.store.count(ctx, t, pred)
	if err != nil {
		return nil, 0, fmt.Errorf("count flashcards: %w", err)
	}
	if query.Empty() {
		return []entity.Flashcard{}, total, nil
	}

	cards, err := r.list(ctx, t, pred, query.Pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("list flashcards: %w", err)
	}
	return cards, total, nil
}

// ListDue applies the due predicate in SQL: not suspended, and either never
// scheduled or scheduled at or before asOf.
func (r *FlashcardRepository) ListDue(ctx context.Context, userID uuid.UUID, asOf time.Time, p repository.Pagination) ([]entity.Flashcard, error) {
	if p.Empty() {
		return []entity.Flashcard{}, nil
	}
	t := r.store.builder().Table(tableCards)
	pred := sql.And(
		r.ownedBy(t, userID),
		sql.EQ(t.C("is_suspended"), false),
		sql.Or(
			sql.IsNull(t.C("next_review_date")),
			sql.LTE(t.C("next_review_date"), asOf.UTC()),
		),
	)
	cards, err := r.list(ctx, t, pred, p)
	if err != nil {
		return nil, fmt.Errorf("list due flashcards: %w", err)
	}
	return cards, nil
}

func (r *FlashcardRepository) list(ctx context.Context, t *sql.SelectTable, pred *sql.Predicate, p repository.Pagination) ([]entity.Flashcard, error) {
	sel := r.store.builder().Select(qualify(t, cardColumns)...).From(t).
		Where(pred).
		OrderBy(t.C("created_at")+" ASC", t.C("id")+" ASC")
	page(sel, p.Skip, p.Limit)

	cards := make([]entity.Flashcard, 0, p.Limit)
	err := r.store.query(ctx, sel, func(rows *sql.Rows) error {
		card, err := scanFlashcard(rows)
		if err != nil {
			return err
		}
		cards = append(cards, *card)
		return nil
	})
	return cards, err
}

// Delete removes the card and, through ON DELETE CASCADE, its reviews.
func (r *FlashcardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.exec(ctx, r.store.builder().Delete(tableCards).Where(sql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("delete flashcard: %w", err)
	}
	if affected == 0 {
		return entity.ErrFlashcardNotFound
	}
	return nil
}

func scanFlashcard(rows *sql.Rows) (*entity.Flashcard, error) {
	var (
		card       entity.Flashcard
		frontType  stdsql.NullString
		backType   stdsql.NullString
		hint       stdsql.NullString
		explain    stdsql.NullString
		difficulty stdsql.NullInt64
		ease       stdsql.NullFloat64
		nextReview stdsql.NullTime
	)
	if err := rows.Scan(
		&card.ID, &card.DeckID, &card.FrontContent, &card.BackContent, &frontType, &backType,
		&hint, &explain, &difficulty, &ease, &card.IntervalDays, &card.Repetitions,
		&nextReview, &card.TotalReviews, &card.CorrectReviews, &card.IsSuspended, &card.CreatedAt,
	); err != nil {
		return nil, err
	}
	card.FrontContentType = stringPtr(frontType)
	card.BackContentType = stringPtr(backType)
	card.Hint = stringPtr(hint)
	card.Explanation = stringPtr(explain)
	card.DifficultyRating = intPtr(difficulty)
	card.EaseFactor = floatPtr(ease)
	card.NextReviewDate = timePtr(nextReview)
	card.CreatedAt = card.CreatedAt.UTC()
	return &card, nil
}
