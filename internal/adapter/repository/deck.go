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

var deckColumns = []string{
	"id", "user_id", "subject_id", "title", "description", "is_public", "is_archived",
	"total_cards", "mastered_cards", "created_at", "last_studied_at",
}

// DeckRepository stores flashcard decks in the flashcard_decks table.
type DeckRepository struct{ store *Store }

func NewDeckRepository(store *Store) repository.DeckRepository {
	return &DeckRepository{store: store}
}

func (r *DeckRepository) Create(ctx context.Context, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error) {
	ins := r.store.builder().Insert(tableDecks).
		Columns(deckColumns...).
		Values(
			deck.ID, deck.UserID, nullUUID(deck.SubjectID), deck.Title, deck.Description, deck.IsPublic, deck.IsArchived,
			deck.TotalCards, deck.MasteredCards, deck.CreatedAt.UTC(), utcTime(deck.LastStudiedAt),
		)
	if _, err := r.store.run(ctx, ins); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}
	return r.GetByID(ctx, deck.UserID, deck.ID)
}

func (r *DeckRepository) Update(ctx context.Context, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error) {
	upd := r.store.builder().Update(tableDecks).
		Set("subject_id", nullUUID(deck.SubjectID)).
		Set("title", deck.Title).
		Set("description", deck.Description).
		Set("is_public", deck.IsPublic).
		Set("is_archived", deck.IsArchived).
		Set("total_cards", deck.TotalCards).
		Set("mastered_cards", deck.MasteredCards).
		Set("last_studied_at", utcTime(deck.LastStudiedAt)).
		Where(sql.And(sql.EQ("id", deck.ID), sql.EQ("user_id", deck.UserID)))
	affected, err := r.store.exec(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("update deck: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrDeckNotFound
	}
	return r.GetByID(ctx, deck.UserID, deck.ID)
}

func (r *DeckRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.FlashcardDeck, error) {
	return r.get(ctx, userID, id, false)
}

func (r *DeckRepository) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.FlashcardDeck, error) {
	return r.get(ctx, userID, id, true)
}

func (r *DeckRepository) get(ctx context.Context, userID, id uuid.UUID, forUpdate bool) (*entity.FlashcardDeck, error) {
	t := r.store.builder().Table(tableDecks)
	sel := r.store.builder().Select(qualify(t, deckColumns)...).From(t).
		Where(sql.And(sql.EQ(t.C("id"), id), sql.EQ(t.C("user_id"), userID)))
	if forUpdate {
		sel = r.store.lock(ctx, sel)
	}

	var found *entity.FlashcardDeck
	err := r.store.query(ctx, sel, func(rows *sql.Rows) error {
		deck, err := scanDeck(rows)
		found = deck
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	if found == nil {
		return nil, entity.ErrDeckNotFound
	}
	return found, nil
}

func (r *DeckRepository) List(ctx context.Context, query *repository.ListDeckQuery) ([]entity.FlashcardDeck, int64, error) {
	var params listDecksParams
	if err := bindQuery(query, &params, listDecksSchema); err != nil {
		return nil, 0, err
	}

	t := r.store.builder().Table(tableDecks)
	pred := deckPredicate(t, query, params)
	total, err := r.store.count(ctx, t, pred)
	if err != nil {
		return nil, 0, fmt.Errorf("count decks: %w", err)
	}
	if query.Empty() {
		return []entity.FlashcardDeck{}, total, nil
	}

	sel := r.store.builder().Select(qualify(t, deckColumns)...).From(t).
		Where(pred).
		OrderBy(params.orderTerms(t, listDecksSchema.Order)...)
	page(sel, query.Skip, query.Limit)

	decks := make([]entity.FlashcardDeck, 0, query.Limit)
	err = r.store.query(ctx, sel, func(rows *sql.Rows) error {
		deck, err := scanDeck(rows)
		if err != nil {
			return err
		}
		decks = append(decks, *deck)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list decks: %w", err)
	}
	return decks, total, nil
}

func deckPredicate(t *sql.SelectTable, query *repository.ListDeckQuery, params listDecksParams) *sql.Predicate {
	preds := []*sql.Predicate{sql.EQ(t.C("user_id"), query.UserID)}
	if query.SubjectID != nil {
		preds = append(preds, sql.EQ(t.C("subject_id"), *query.SubjectID))
	}
	if query.IsArchived != nil {
		preds = append(preds, sql.EQ(t.C("is_archived"), *query.IsArchived))
	}
	if params.Title != nil {
		preds = append(preds, sql.EQ(t.C("title"), *params.Title))
	}
	if params.TitlePrefix != nil {
		preds = append(preds, sql.HasPrefix(t.C("title"), *params.TitlePrefix))
	}
	if params.IsPublic != nil {
		preds = append(preds, sql.EQ(t.C("is_public"), *params.IsPublic))
	}
	if params.IsArchived != nil {
		preds = append(preds, sql.EQ(t.C("is_archived"), *params.IsArchived))
	}
	if params.MinCards != nil {
		preds = append(preds, sql.GTE(t.C("total_cards"), *params.MinCards))
	}
	if params.MaxCards != nil {
		preds = append(preds, sql.LTE(t.C("total_cards"), *params.MaxCards))
	}
	if params.CreatedFrom != nil {
		preds = append(preds, sql.GTE(t.C("created_at"), params.CreatedFrom.UTC()))
	}
	if params.CreatedTo != nil {
		preds = append(preds, sql.LTE(t.C("created_at"), params.CreatedTo.UTC()))
	}
	return sql.And(preds...)
}

// Delete removes the deck; its cards and their reviews go with it through ON DELETE CASCADE.
func (r *DeckRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	del := r.store.builder().Delete(tableDecks).
		Where(sql.And(sql.EQ("id", id), sql.EQ("user_id", userID)))
	affected, err := r.store.exec(ctx, del)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	if affected == 0 {
		return entity.ErrDeckNotFound
	}
	return nil
}

func scanDeck(rows *sql.Rows) (*entity.FlashcardDeck, error) {
	var (
		deck        entity.FlashcardDeck
		subjectID   uuid.NullUUID
		description stdsql.NullString
		lastStudied stdsql.NullTime
	)
	if err := rows.Scan(
		&deck.ID, &deck.UserID, &subjectID, &deck.Title, &description, &deck.IsPublic, &deck.IsArchived,
		&deck.TotalCards, &deck.MasteredCards, &deck.CreatedAt, &lastStudied,
	); err != nil {
		return nil, err
	}
	deck.SubjectID = uuidPtr(subjectID)
	deck.Description = stringPtr(description)
	deck.LastStudiedAt = timePtr(lastStudied)
	deck.CreatedAt = deck.CreatedAt.UTC()
	return &deck, nil
}
