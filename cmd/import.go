/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/studyhub/internal/adapter/spreadsheet"
	"github.com/eslsoft/studyhub/internal/app"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/usecase"
)

const (
	importFileKey  = "import.file"
	importDeckKey  = "import.deck"
	importUserKey  = "import.user"
	importSheetKey = "import.sheet"
	importTitleKey = "import.title"
)

var importCmd = &cobra.Command{
	Use:   "import-deck",
	Short: "Import flashcards from an .xlsx or .csv file into a deck",
	Long: `Rows are read as front, back, hint, explanation. A header row naming
those columns may reorder them. Cards are created one by one through the
flashcard usecase so the deck's card count stays in step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := viper.GetString(importFileKey)
		if path == "" {
			return errors.New("--file is required")
		}
		userID, err := uuid.Parse(viper.GetString(importUserKey))
		if err != nil {
			return fmt.Errorf("--user: %w", entity.ErrInvalidUserID)
		}

		sheet, err := spreadsheet.ReadFile(path, viper.GetString(importSheetKey))
		if err != nil {
			return err
		}

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()
		if err := container.Store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		deckID, err := resolveDeck(ctx, container.Decks, userID, viper.GetString(importDeckKey), viper.GetString(importTitleKey))
		if err != nil {
			return err
		}

		created, failures := importRows(ctx, container.Cards, userID, deckID, sheet.Rows)
		for _, msg := range append(sheet.Skipped, failures...) {
			cmd.PrintErrln(msg)
		}
		cmd.Printf("imported %d of %d rows into deck %s\n", created, len(sheet.Rows)+len(sheet.Skipped), deckID)
		if created == 0 && len(sheet.Rows) > 0 {
			return errors.New("no rows were imported")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("file", "f", "", "path to an .xlsx or .csv file")
	importCmd.Flags().String("deck", "", "target deck ID")
	importCmd.Flags().String("user", "", "owner user ID")
	importCmd.Flags().String("sheet", "", "worksheet name (default: first sheet)")
	importCmd.Flags().String("title", "", "create a new deck with this title when --deck is empty")

	bindFlagToViper(importFileKey, importCmd.Flags().Lookup("file"))
	bindFlagToViper(importDeckKey, importCmd.Flags().Lookup("deck"))
	bindFlagToViper(importUserKey, importCmd.Flags().Lookup("user"))
	bindFlagToViper(importSheetKey, importCmd.Flags().Lookup("sheet"))
	bindFlagToViper(importTitleKey, importCmd.Flags().Lookup("title"))
}

func resolveDeck(ctx context.Context, decks usecase.DeckUsecase, userID uuid.UUID, deck, title string) (uuid.UUID, error) {
	if deck != "" {
		id, err := uuid.Parse(deck)
		if err != nil {
			return uuid.Nil, fmt.Errorf("--deck: %w", entity.ErrInvalidDeckID)
		}
		if _, err := decks.GetDeck(ctx, userID, id); err != nil {
			return uuid.Nil, err
		}
		return id, nil
	}
	if strings.TrimSpace(title) == "" {
		return uuid.Nil, errors.New("either --deck or --title is required")
	}
	created, err := decks.CreateDeck(ctx, userID, &entity.FlashcardDeck{Title: strings.TrimSpace(title)})
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

// importRows keeps going past failed rows and reports them by source line.
func importRows(ctx context.Context, cards usecase.FlashcardUsecase, userID, deckID uuid.UUID, rows []spreadsheet.Row) (int, []string) {
	var (
		created  int
		failures []string
	)
	for _, row := range rows {
		if ctx.Err() != nil {
			failures = append(failures, fmt.Sprintf("row %d: %v", row.Line, ctx.Err()))
			break
		}
		_, err := cards.CreateFlashcard(ctx, userID, &entity.Flashcard{
			DeckID:       deckID,
			FrontContent: row.Front,
			BackContent:  row.Back,
			Hint:         row.Hint,
			Explanation:  row.Explanation,
		})
		if err != nil {
			failures = append(failures, fmt.Sprintf("row %d: %v", row.Line, err))
			continue
		}
		created++
	}
	return created, failures
}
