package mapping

import (
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

type Flashcard struct {
	ID               uuid.UUID  `json:"id"`
	DeckID           uuid.UUID  `json:"deck_id"`
	FrontContent     string     `json:"front_content"`
	BackContent      string     `json:"back_content"`
	FrontContentType *string    `json:"front_content_type"`
	BackContentType  *string    `json:"back_content_type"`
	Hint             *string    `json:"hint"`
	Explanation      *string    `json:"explanation"`
	DifficultyRating *int       `json:"difficulty_rating"`
	EaseFactor       *float64   `json:"ease_factor"`
	IntervalDays     int        `json:"interval_days"`
	Repetitions      int        `json:"repetitions"`
	NextReviewDate   *time.Time `json:"next_review_date"`
	TotalReviews     int        `json:"total_reviews"`
	CorrectReviews   int        `json:"correct_reviews"`
	IsSuspended      bool       `json:"is_suspended"`
	CreatedAt        time.Time  `json:"created_at"`
}

type FlashcardCreate struct {
	DeckID           uuid.UUID `json:"deck_id"`
	FrontContent     string    `json:"front_content"`
	BackContent      string    `json:"back_content"`
	FrontContentType *string   `json:"front_content_type"`
	BackContentType  *string   `json:"back_content_type"`
	Hint             *string   `json:"hint"`
	Explanation      *string   `json:"explanation"`
	DifficultyRating *int      `json:"difficulty_rating"`
}

type FlashcardUpdate struct {
	FrontContent     entity.Optional[string]     `json:"front_content"`
	BackContent      entity.Optional[string]     `json:"back_content"`
	FrontContentType entity.Optional[*string]    `json:"front_content_type"`
	BackContentType  entity.Optional[*string]    `json:"back_content_type"`
	Hint             entity.Optional[*string]    `json:"hint"`
	Explanation      entity.Optional[*string]    `json:"explanation"`
	DifficultyRating entity.Optional[*int]       `json:"difficulty_rating"`
	EaseFactor       entity.Optional[*float64]   `json:"ease_factor"`
	IntervalDays     entity.Optional[int]        `json:"interval_days"`
	Repetitions      entity.Optional[int]        `json:"repetitions"`
	NextReviewDate   entity.Optional[*time.Time] `json:"next_review_date"`
	TotalReviews     entity.Optional[int]        `json:"total_reviews"`
	CorrectReviews   entity.Optional[int]        `json:"correct_reviews"`
	IsSuspended      entity.Optional[bool]       `json:"is_suspended"`
}

func ToFlashcard(in *entity.Flashcard) Flashcard {
	return Flashcard{
		ID:               in.ID,
		DeckID:           in.DeckID,
		FrontContent:     in.FrontContent,
		BackContent:      in.BackContent,
		FrontContentType: in.FrontContentType,
		BackContentType:  in.BackContentType,
		Hint:             in.Hint,
		Explanation:      in.Explanation,
		DifficultyRating: in.DifficultyRating,
		EaseFactor:       in.EaseFactor,
		IntervalDays:     in.IntervalDays,
		Repetitions:      in.Repetitions,
		NextReviewDate:   in.NextReviewDate,
		TotalReviews:     in.TotalReviews,
		CorrectReviews:   in.CorrectReviews,
		IsSuspended:      in.IsSuspended,
		CreatedAt:        in.CreatedAt,
	}
}

func FromFlashcardCreate(in FlashcardCreate) *entity.Flashcard {
	return &entity.Flashcard{
		DeckID:           in.DeckID,
		FrontContent:     in.FrontContent,
		BackContent:      in.BackContent,
		FrontContentType: in.FrontContentType,
		BackContentType:  in.BackContentType,
		Hint:             in.Hint,
		Explanation:      in.Explanation,
		DifficultyRating: in.DifficultyRating,
	}
}

func FromFlashcardUpdate(in FlashcardUpdate) entity.FlashcardUpdate {
	return entity.FlashcardUpdate{
		FrontContent:     in.FrontContent,
		BackContent:      in.BackContent,
		FrontContentType: in.FrontContentType,
		BackContentType:  in.BackContentType,
		Hint:             in.Hint,
		Explanation:      in.Explanation,
		DifficultyRating: in.DifficultyRating,
		EaseFactor:       in.EaseFactor,
		IntervalDays:     in.IntervalDays,
		Repetitions:      in.Repetitions,
		NextReviewDate:   in.NextReviewDate,
		TotalReviews:     in.TotalReviews,
		CorrectReviews:   in.CorrectReviews,
		IsSuspended:      in.IsSuspended,
	}
}
