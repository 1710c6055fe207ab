package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
	"github.com/google/uuid"
)

func TestRecordReviewPersistsCardAndReview(t *testing.T) {
	f := newStudyFixture(t)
	user := uuid.New()
	deck := f.deck(t, user)
	card := f.card(t, user, deck.ID)

	ease := 2.5
	interval := 3
	next := f.now.Add(72 * time.Hour)
	review, err := f.reviews.RecordReview(context.Background(), user, card.ID, entity.ReviewSubmission{
		QualityRating:  4,
		NewEaseFactor:  &ease,
		NewInterval:    &interval,
		NextReviewDate: &next,
	})
	if err != nil {
		t.Fatalf("RecordReview failed: %v", err)
	}
	if review.ID == uuid.Nil || review.FlashcardID != card.ID || review.UserID != user {
		t.Errorf("unexpected review identity %+v", review)
	}
	if review.PreviousEaseFactor != nil || review.PreviousInterval == nil || *review.PreviousInterval != 0 {
		t.Errorf("expected previous state of a fresh card, got %v / %v", review.PreviousEaseFactor, review.PreviousInterval)
	}
	if !review.ReviewedAt.Equal(f.now) {
		t.Errorf("expected reviewed_at %v, got %v", f.now, review.ReviewedAt)
	}

	stored, err := f.cards.GetFlashcard(context.Background(), user, card.ID)
	if err != nil {
		t.Fatalf("GetFlashcard failed: %v", err)
	}
	if stored.TotalReviews != 1 || stored.CorrectReviews != 1 || stored.Repetitions != 1 {
		t.Errorf("unexpected counters %d/%d/%d", stored.TotalReviews, stored.CorrectReviews, stored.Repetitions)
	}
	if stored.EaseFactor == nil || *stored.EaseFactor != 2.5 || stored.IntervalDays != 3 {
		t.Errorf("expected supplied schedule to be stored, got %v / %d", stored.EaseFactor, stored.IntervalDays)
	}
	if entity.IsDue(*stored, f.now) {
		t.Error("card should no longer be due")
	}

	deckAfter, _ := f.decks.GetDeck(context.Background(), user, deck.ID)
	if deckAfter.TotalCards != 1 {
		t.Errorf("review must not touch deck counters, got %d", deckAfter.TotalCards)
	}
}

func TestRecordReviewValidationLeavesCardUntouched(t *testing.T) {
	f := newStudyFixture(t)
	user := uuid.New()
	deck := f.deck(t, user)
	card := f.card(t, user, deck.ID)

	_, err := f.reviews.RecordReview(context.Background(), user, card.ID, entity.ReviewSubmission{QualityRating: 7})
	if !errors.Is(err, entity.ErrInvalidQualityRating) {
		t.Fatalf("expected ErrInvalidQualityRating, got %v", err)
	}
	stored, _ := f.cards.GetFlashcard(context.Background(), user, card.ID)
	if stored.TotalReviews != 0 {
		t.Errorf("expected no mutation, got total %d", stored.TotalReviews)
	}
	if len(f.store.reviews) != 0 {
		t.Errorf("expected no review, got %d", len(f.store.reviews))
	}
}

func TestRecordReviewSessionMustBelongToUser(t *testing.T) {
	f := newStudyFixture(t)
	user, other := uuid.New(), uuid.New()
	deck := f.deck(t, user)
	card := f.card(t, user, deck.ID)
	sessions := NewStudySessionUsecase(fakeSessionRepo{f.store})

	foreign, err := sessions.StartStudySession(context.Background(), other, &entity.StudySession{})
	if err != nil {
		t.Fatalf("StartStudySession failed: %v", err)
	}
	_, err = f.reviews.RecordReview(context.Background(), user, card.ID, entity.ReviewSubmission{QualityRating: 3, SessionID: &foreign.ID})
	if !errors.Is(err, entity.ErrStudySessionNotFound) {
		t.Fatalf("expected ErrStudySessionNotFound, got %v", err)
	}
	if len(f.store.reviews) != 0 {
		t.Fatalf("expected no review, got %d", len(f.store.reviews))
	}

	own, err := sessions.StartStudySession(context.Background(), user, &entity.StudySession{})
	if err != nil {
		t.Fatalf("StartStudySession failed: %v", err)
	}
	review, err := f.reviews.RecordReview(context.Background(), user, card.ID, entity.ReviewSubmission{QualityRating: 3, SessionID: &own.ID})
	if err != nil {
		t.Fatalf("RecordReview failed: %v", err)
	}
	if review.SessionID == nil || *review.SessionID != own.ID {
		t.Fatalf("expected review linked to session, got %v", review.SessionID)
	}
}

func TestRecordReviewNotOwned(t *testing.T) {
	f := newStudyFixture(t)
	owner := uuid.New()
	deck := f.deck(t, owner)
	card := f.card(t, owner, deck.ID)

	_, err := f.reviews.RecordReview(context.Background(), uuid.New(), card.ID, entity.ReviewSubmission{QualityRating: 3})
	if !errors.Is(err, entity.ErrFlashcardNotFound) {
		t.Fatalf("expected ErrFlashcardNotFound, got %v", err)
	}
}

func TestRecordReviewRollsBackOnFailure(t *testing.T) {
	f := newStudyFixture(t)
	user := uuid.New()
	deck := f.deck(t, user)
	card := f.card(t, user, deck.ID)

	boom := errors.New("disk full")
	f.store.failReviewCreate = boom
	if _, err := f.reviews.RecordReview(context.Background(), user, card.ID, entity.ReviewSubmission{QualityRating: 5}); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
	stored, _ := f.cards.GetFlashcard(context.Background(), user, card.ID)
	if stored.TotalReviews != 0 {
		t.Errorf("expected card update to roll back, got total %d", stored.TotalReviews)
	}
}

func TestConcurrentReviewsDoNotLoseUpdates(t *testing.T) {
	f := newStudyFixture(t)
	user := uuid.New()
	deck := f.deck(t, user)
	card := f.card(t, user, deck.ID)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			if _, err := f.reviews.RecordReview(context.Background(), user, card.ID, entity.ReviewSubmission{QualityRating: q}); err != nil {
				t.Errorf("RecordReview failed: %v", err)
			}
		}(i % 6)
	}
	wg.Wait()

	stored, _ := f.cards.GetFlashcard(context.Background(), user, card.ID)
	if stored.TotalReviews != 30 {
		t.Errorf("expected 30 reviews, got %d", stored.TotalReviews)
	}
	if stored.CorrectReviews != 15 {
		t.Errorf("expected 15 correct, got %d", stored.CorrectReviews)
	}
}

func TestListReviewsNewestFirst(t *testing.T) {
	f := newStudyFixture(t)
	user := uuid.New()
	deck := f.deck(t, user)
	card := f.card(t, user, deck.ID)

	for _, q := range []int{1, 2, 5} {
		if _, err := f.reviews.RecordReview(context.Background(), user, card.ID, entity.ReviewSubmission{QualityRating: q}); err != nil {
			t.Fatalf("RecordReview failed: %v", err)
		}
	}

	reviews, total, err := f.reviews.ListReviews(context.Background(), user, card.ID, repository.Pagination{Limit: 2})
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if total != 3 || len(reviews) != 2 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(reviews), total)
	}
	if reviews[0].QualityRating != 5 || reviews[1].QualityRating != 2 {
		t.Errorf("expected newest first, got %d, %d", reviews[0].QualityRating, reviews[1].QualityRating)
	}

	if _, _, err := f.reviews.ListReviews(context.Background(), uuid.New(), card.ID, repository.Pagination{Limit: 2}); !errors.Is(err, entity.ErrFlashcardNotFound) {
		t.Errorf("expected ErrFlashcardNotFound for foreign card, got %v", err)
	}
}
