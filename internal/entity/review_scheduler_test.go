package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRecordReviewCounters(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	user := uuid.New()

	for q := MinQualityRating; q <= MaxQualityRating; q++ {
		card := Flashcard{ID: uuid.New(), TotalReviews: 4, CorrectReviews: 2, Repetitions: 3}
		updated, review, err := RecordReview(card, ReviewSubmission{QualityRating: q}, user, now)
		if err != nil {
			t.Fatalf("quality %d: unexpected error %v", q, err)
		}
		if updated.TotalReviews != 5 {
			t.Errorf("quality %d: expected total reviews 5, got %d", q, updated.TotalReviews)
		}
		wantCorrect := 2
		wantReps := 0
		if q >= PassThreshold {
			wantCorrect = 3
			wantReps = 4
		}
		if updated.CorrectReviews != wantCorrect {
			t.Errorf("quality %d: expected correct reviews %d, got %d", q, wantCorrect, updated.CorrectReviews)
		}
		if updated.Repetitions != wantReps {
			t.Errorf("quality %d: expected repetitions %d, got %d", q, wantReps, updated.Repetitions)
		}
		if review.QualityRating != q || review.FlashcardID != card.ID || review.UserID != user {
			t.Errorf("quality %d: unexpected review %+v", q, review)
		}
		if !review.ReviewedAt.Equal(now) {
			t.Errorf("quality %d: expected reviewed_at %v, got %v", q, now, review.ReviewedAt)
		}
		if card.TotalReviews != 4 {
			t.Errorf("quality %d: input card was mutated", q)
		}
	}
}

func TestRecordReviewRejectsOutOfRange(t *testing.T) {
	neg := -1
	cases := []struct {
		name string
		sub  ReviewSubmission
		want error
	}{
		{name: "below", sub: ReviewSubmission{QualityRating: -1}, want: ErrInvalidQualityRating},
		{name: "above", sub: ReviewSubmission{QualityRating: 6}, want: ErrInvalidQualityRating},
		{name: "response time", sub: ReviewSubmission{QualityRating: 3, ResponseTimeSeconds: &neg}, want: ErrInvalidResponseTime},
		{name: "interval", sub: ReviewSubmission{QualityRating: 3, NewInterval: &neg}, want: ErrInvalidReviewState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := Flashcard{TotalReviews: 1, CorrectReviews: 1}
			updated, _, err := RecordReview(card, tc.sub, uuid.New(), time.Now())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if updated.TotalReviews != 0 {
				t.Errorf("expected zero card on error, got %+v", updated)
			}
		})
	}
}

func TestRecordReviewSnapshotsState(t *testing.T) {
	ease := 2.5
	newEase := 2.6
	newInterval := 6
	next := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	card := Flashcard{EaseFactor: &ease, IntervalDays: 1}

	updated, review, err := RecordReview(card, ReviewSubmission{
		QualityRating:  4,
		NewEaseFactor:  &newEase,
		NewInterval:    &newInterval,
		NextReviewDate: &next,
	}, uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("RecordReview failed: %v", err)
	}
	if review.PreviousEaseFactor == nil || *review.PreviousEaseFactor != 2.5 {
		t.Errorf("expected previous ease 2.5, got %v", review.PreviousEaseFactor)
	}
	if review.PreviousInterval == nil || *review.PreviousInterval != 1 {
		t.Errorf("expected previous interval 1, got %v", review.PreviousInterval)
	}
	if review.NewEaseFactor == nil || *review.NewEaseFactor != 2.6 {
		t.Errorf("expected new ease 2.6, got %v", review.NewEaseFactor)
	}
	if review.NewInterval == nil || *review.NewInterval != 6 {
		t.Errorf("expected new interval 6, got %v", review.NewInterval)
	}
	if updated.EaseFactor == nil || *updated.EaseFactor != 2.6 || updated.IntervalDays != 6 {
		t.Errorf("expected card to carry new state, got ease=%v interval=%d", updated.EaseFactor, updated.IntervalDays)
	}
	if updated.NextReviewDate == nil || !updated.NextReviewDate.Equal(next) {
		t.Errorf("expected next review %v, got %v", next, updated.NextReviewDate)
	}

	newEase = 9
	if *updated.EaseFactor != 2.6 {
		t.Error("updated card aliases the submission")
	}
}

func TestRecordReviewWithoutSuppliedState(t *testing.T) {
	card := Flashcard{IntervalDays: 3}
	updated, review, err := RecordReview(card, ReviewSubmission{QualityRating: 1}, uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("RecordReview failed: %v", err)
	}
	if updated.EaseFactor != nil || updated.IntervalDays != 3 || updated.NextReviewDate != nil {
		t.Errorf("expected scheduling state to be untouched, got %+v", updated)
	}
	if review.PreviousEaseFactor != nil || review.NewEaseFactor != nil {
		t.Errorf("expected nil ease snapshots, got %v / %v", review.PreviousEaseFactor, review.NewEaseFactor)
	}
}

func TestRecordReviewKeepsCorrectBelowTotal(t *testing.T) {
	card := Flashcard{}
	ratings := []int{5, 0, 3, 2, 4, 4, 1, 5}
	for _, q := range ratings {
		var err error
		card, _, err = RecordReview(card, ReviewSubmission{QualityRating: q}, uuid.New(), time.Now())
		if err != nil {
			t.Fatalf("RecordReview failed: %v", err)
		}
		if card.CorrectReviews > card.TotalReviews {
			t.Fatalf("correct %d exceeds total %d", card.CorrectReviews, card.TotalReviews)
		}
	}
	if card.TotalReviews != len(ratings) || card.CorrectReviews != 5 {
		t.Errorf("expected 8/5, got %d/%d", card.TotalReviews, card.CorrectReviews)
	}
	if card.Repetitions != 1 {
		t.Errorf("expected repetitions 1 after last pass following a fail, got %d", card.Repetitions)
	}
}

func TestIsDue(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		card Flashcard
		want bool
	}{
		{name: "never scheduled", card: Flashcard{}, want: true},
		{name: "past", card: Flashcard{NextReviewDate: &past}, want: true},
		{name: "exactly now", card: Flashcard{NextReviewDate: &now}, want: true},
		{name: "future", card: Flashcard{NextReviewDate: &future}, want: false},
		{name: "suspended unscheduled", card: Flashcard{IsSuspended: true}, want: false},
		{name: "suspended past", card: Flashcard{IsSuspended: true, NextReviewDate: &past}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDue(tc.card, now); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}

	farPast := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	if !IsDue(Flashcard{}, farPast) {
		t.Error("unscheduled card must be due at any time")
	}
}

func TestSelectDueCards(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	var cards []Flashcard
	var dueIDs []uuid.UUID
	for i := 0; i < 7; i++ {
		c := Flashcard{ID: uuid.New()}
		switch i {
		case 2:
			c.IsSuspended = true
		case 4:
			c.NextReviewDate = &future
		default:
			dueIDs = append(dueIDs, c.ID)
		}
		cards = append(cards, c)
	}
	if len(dueIDs) != 5 {
		t.Fatalf("fixture expects 5 due cards, got %d", len(dueIDs))
	}

	got := SelectDueCards(cards, now, 0, 2)
	if len(got) != 2 || got[0].ID != dueIDs[0] || got[1].ID != dueIDs[1] {
		t.Errorf("expected first two due cards in order, got %v", ids(got))
	}

	got = SelectDueCards(cards, now, 3, 10)
	if len(got) != 2 || got[0].ID != dueIDs[3] || got[1].ID != dueIDs[4] {
		t.Errorf("expected last two due cards, got %v", ids(got))
	}

	if got := SelectDueCards(cards, now, 10, 5); len(got) != 0 {
		t.Errorf("expected empty page past the end, got %d cards", len(got))
	}
	if got := SelectDueCards(cards, now, 0, 0); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil page for limit 0, got %v", got)
	}
}

func ids(cards []Flashcard) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}
