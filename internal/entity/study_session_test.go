package entity

import (
	"errors"
	"testing"
	"time"
)

func TestStudySessionComplete(t *testing.T) {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	s := StudySession{StartedAt: start}

	s.Complete(start.Add(25*time.Minute + 59*time.Second))
	if !s.IsCompleted || s.EndedAt == nil || s.DurationMinutes == nil {
		t.Fatalf("session not closed: %+v", s)
	}
	if *s.DurationMinutes != 25 {
		t.Fatalf("expected 25 whole minutes, got %d", *s.DurationMinutes)
	}

	s.Complete(start.Add(-time.Hour))
	if *s.DurationMinutes != 0 || !s.EndedAt.Equal(start) {
		t.Fatalf("end before start should clamp to start: %+v", s)
	}
}

func TestStudySessionValidate(t *testing.T) {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	before := start.Add(-time.Minute)

	cases := []struct {
		name    string
		session StudySession
		wantErr bool
	}{
		{name: "fresh", session: StudySession{StartedAt: start}},
		{name: "tallies", session: StudySession{StartedAt: start, CardsReviewed: 4, CardsCorrect: 4}},
		{name: "missing start", session: StudySession{}, wantErr: true},
		{name: "negative reviewed", session: StudySession{StartedAt: start, CardsReviewed: -1}, wantErr: true},
		{name: "more correct than reviewed", session: StudySession{StartedAt: start, CardsReviewed: 1, CardsCorrect: 2}, wantErr: true},
		{name: "negative duration", session: StudySession{StartedAt: start, DurationMinutes: ptr(-5)}, wantErr: true},
		{name: "negative focus", session: StudySession{StartedAt: start, FocusScore: ptr(-0.5)}, wantErr: true},
		{name: "ends before start", session: StudySession{StartedAt: start, EndedAt: &before}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.session.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidStudySession) {
				t.Fatalf("expected ErrInvalidStudySession, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStudySessionUpdateApply(t *testing.T) {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	kind := "review"
	s := StudySession{StartedAt: start, SessionType: &kind, CardsReviewed: 3}

	StudySessionUpdate{SessionType: Some[*string](nil), CardsCorrect: Some(2)}.Apply(&s)
	if s.SessionType != nil || s.CardsCorrect != 2 || s.CardsReviewed != 3 {
		t.Fatalf("unexpected session after update: %+v", s)
	}

	blank := "  "
	s.SessionType = &blank
	s.Normalize(start)
	if s.SessionType != nil {
		t.Fatalf("blank session type should be dropped, got %q", *s.SessionType)
	}
}
