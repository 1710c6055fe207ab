package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/eslsoft/studyhub/internal/adapter/spreadsheet"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/usecase"
)

type recordingCards struct {
	usecase.FlashcardUsecase
	created []entity.Flashcard
}

func (r *recordingCards) CreateFlashcard(_ context.Context, _ uuid.UUID, card *entity.Flashcard) (*entity.Flashcard, error) {
	if strings.Contains(card.FrontContent, "<script") {
		return nil, entity.ErrInvalidFlashcardContent
	}
	r.created = append(r.created, *card)
	return card, nil
}

type recordingDecks struct {
	usecase.DeckUsecase
	titles []string
}

func (r *recordingDecks) CreateDeck(_ context.Context, userID uuid.UUID, deck *entity.FlashcardDeck) (*entity.FlashcardDeck, error) {
	r.titles = append(r.titles, deck.Title)
	return &entity.FlashcardDeck{ID: uuid.New(), UserID: userID, Title: deck.Title}, nil
}

func (r *recordingDecks) GetDeck(_ context.Context, _ uuid.UUID, id uuid.UUID) (*entity.FlashcardDeck, error) {
	return &entity.FlashcardDeck{ID: id}, nil
}

func TestImportRows(t *testing.T) {
	sheet, err := spreadsheet.ReadCSV(strings.NewReader("front,back,hint\nhola,hello,greeting\n<script>,bad,\nadios,bye,\n"))
	if err != nil {
		t.Fatal(err)
	}
	cards := &recordingCards{}
	deckID := uuid.New()

	created, failures := importRows(context.Background(), cards, uuid.New(), deckID, sheet.Rows)
	if created != 2 || len(cards.created) != 2 {
		t.Fatalf("expected 2 created, got %d", created)
	}
	if len(failures) != 1 || !strings.HasPrefix(failures[0], "row 3:") {
		t.Fatalf("unexpected failures: %v", failures)
	}
	first := cards.created[0]
	if first.DeckID != deckID || first.Hint == nil || *first.Hint != "greeting" {
		t.Fatalf("unexpected card: %+v", first)
	}
}

func TestImportRowsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	created, failures := importRows(ctx, &recordingCards{}, uuid.New(), uuid.New(), []spreadsheet.Row{{Line: 1, Front: "a", Back: "b"}})
	if created != 0 || len(failures) != 1 {
		t.Fatalf("expected cancelled import, got %d %v", created, failures)
	}
}

func TestResolveDeck(t *testing.T) {
	decks := &recordingDecks{}
	userID := uuid.New()

	id, err := resolveDeck(context.Background(), decks, userID, "", "  Spanish  ")
	if err != nil || id == uuid.Nil || decks.titles[0] != "Spanish" {
		t.Fatalf("expected new deck, got %s %v %v", id, err, decks.titles)
	}

	existing := uuid.New()
	id, err = resolveDeck(context.Background(), decks, userID, existing.String(), "")
	if err != nil || id != existing {
		t.Fatalf("expected existing deck, got %s %v", id, err)
	}

	if _, err := resolveDeck(context.Background(), decks, userID, "nope", ""); err == nil {
		t.Fatal("expected invalid deck id error")
	}
	if _, err := resolveDeck(context.Background(), decks, userID, "", " "); err == nil {
		t.Fatal("expected missing title error")
	}
}
