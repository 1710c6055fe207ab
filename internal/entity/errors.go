package entity

import "errors"

// Domain errors for study aggregates.
var (
	ErrInvalidUserID = errors.New("invalid user ID")

	ErrDeckNotFound    = errors.New("flashcard deck not found")
	ErrInvalidDeckID   = errors.New("invalid flashcard deck ID")
	ErrInvalidDeck     = errors.New("invalid flashcard deck")
	ErrInvalidDeckName = errors.New("flashcard deck title is required")

	ErrFlashcardNotFound       = errors.New("flashcard not found")
	ErrInvalidFlashcardID      = errors.New("invalid flashcard ID")
	ErrInvalidFlashcard        = errors.New("invalid flashcard")
	ErrInvalidFlashcardContent = errors.New("flashcard content is empty or unsafe")

	ErrInvalidQualityRating = errors.New("quality rating out of range")
	ErrInvalidResponseTime  = errors.New("response time must not be negative")
	ErrInvalidReviewState   = errors.New("invalid review scheduling state")

	ErrDailyProgressNotFound  = errors.New("daily progress not found for this date")
	ErrDuplicateDailyProgress = errors.New("daily progress for this date already exists")
	ErrInvalidDailyProgress   = errors.New("invalid daily progress")

	ErrStudySessionNotFound  = errors.New("study session not found")
	ErrInvalidStudySessionID = errors.New("invalid study session ID")
	ErrInvalidStudySession   = errors.New("invalid study session")

	ErrInvalidPagination = errors.New("invalid pagination")
	ErrInvalidFilter     = errors.New("invalid filter expression")
)
