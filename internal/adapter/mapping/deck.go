package mapping

import (
	"strings"
	"time"

	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/google/uuid"
)

type Deck struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	SubjectID     *uuid.UUID `json:"subject_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	IsPublic      bool       `json:"is_public"`
	IsArchived    bool       `json:"is_archived"`
	TotalCards    int        `json:"total_cards"`
	MasteredCards int        `json:"mastered_cards"`
	CreatedAt     time.Time  `json:"created_at"`
	LastStudiedAt *time.Time `json:"last_studied_at"`
}

type DeckCreate struct {
	SubjectID   *uuid.UUID `json:"subject_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsPublic    bool       `json:"is_public"`
	IsArchived  bool       `json:"is_archived"`
}

// DeckUpdate distinguishes absent fields from explicit nulls.
type DeckUpdate struct {
	Title         entity.Optional[string]     `json:"title"`
	Description   entity.Optional[*string]    `json:"description"`
	SubjectID     entity.Optional[*uuid.UUID] `json:"subject_id"`
	IsPublic      entity.Optional[bool]       `json:"is_public"`
	IsArchived    entity.Optional[bool]       `json:"is_archived"`
	TotalCards    entity.Optional[int]        `json:"total_cards"`
	MasteredCards entity.Optional[int]        `json:"mastered_cards"`
	LastStudiedAt entity.Optional[*time.Time] `json:"last_studied_at"`
}

func ToDeck(in *entity.FlashcardDeck) Deck {
	return Deck{
		ID:            in.ID,
		UserID:        in.UserID,
		SubjectID:     in.SubjectID,
		Title:         in.Title,
		Description:   in.Description,
		IsPublic:      in.IsPublic,
		IsArchived:    in.IsArchived,
		TotalCards:    in.TotalCards,
		MasteredCards: in.MasteredCards,
		CreatedAt:     in.CreatedAt,
		LastStudiedAt: in.LastStudiedAt,
	}
}

func FromDeckCreate(in DeckCreate) *entity.FlashcardDeck {
	return &entity.FlashcardDeck{
		SubjectID:   in.SubjectID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		IsPublic:    in.IsPublic,
		IsArchived:  in.IsArchived,
	}
}

func FromDeckUpdate(in DeckUpdate) entity.FlashcardDeckUpdate {
	return entity.FlashcardDeckUpdate{
		Title:         in.Title,
		Description:   in.Description,
		SubjectID:     in.SubjectID,
		IsPublic:      in.IsPublic,
		IsArchived:    in.IsArchived,
		TotalCards:    in.TotalCards,
		MasteredCards: in.MasteredCards,
		LastStudiedAt: in.LastStudiedAt,
	}
}
