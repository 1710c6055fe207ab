package repository

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
)

const (
	tableDecks    = "flashcard_decks"
	tableCards    = "flashcards"
	tableReviews  = "flashcard_reviews"
	tableProgress = "daily_progress"
	tableSessions = "study_sessions"
)

type columnTypes struct {
	uuid, timestamp, float string
}

func (s *Store) columnTypes() columnTypes {
	if s.drv.Dialect() == dialect.Postgres {
		return columnTypes{uuid: "UUID", timestamp: "TIMESTAMPTZ", float: "DOUBLE PRECISION"}
	}
	return columnTypes{uuid: "TEXT", timestamp: "DATETIME", float: "REAL"}
}

// Migrate creates the schema when it does not exist yet. It is safe to run repeatedly.
func (s *Store) Migrate(ctx context.Context) error {
	b := s.builder()
	t := s.columnTypes()

	references := func(col, table, onDelete string) *sql.ForeignKeyBuilder {
		return sql.ForeignKey().Columns(col).
			Reference(sql.Reference().Table(table).Columns("id")).
			OnDelete(onDelete)
	}
	cascade := func(col, table string) *sql.ForeignKeyBuilder { return references(col, table, "CASCADE") }

	stmts := []sql.Querier{
		b.CreateTable(tableDecks).IfNotExists().
			Columns(
				sql.Column("id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("user_id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("subject_id").Type(t.uuid),
				sql.Column("title").Type("TEXT").Attr("NOT NULL"),
				sql.Column("description").Type("TEXT"),
				sql.Column("is_public").Type("BOOLEAN").Attr("NOT NULL DEFAULT FALSE"),
				sql.Column("is_archived").Type("BOOLEAN").Attr("NOT NULL DEFAULT FALSE"),
				sql.Column("total_cards").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("mastered_cards").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("created_at").Type(t.timestamp).Attr("NOT NULL"),
				sql.Column("last_studied_at").Type(t.timestamp),
			).
			PrimaryKey("id"),
		b.CreateIndex("flashcard_decks_user_id_created_at").IfNotExists().
			Table(tableDecks).Columns("user_id", "created_at"),

		b.CreateTable(tableCards).IfNotExists().
			Columns(
				sql.Column("id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("deck_id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("front_content").Type("TEXT").Attr("NOT NULL"),
				sql.Column("back_content").Type("TEXT").Attr("NOT NULL"),
				sql.Column("front_content_type").Type("TEXT"),
				sql.Column("back_content_type").Type("TEXT"),
				sql.Column("hint").Type("TEXT"),
				sql.Column("explanation").Type("TEXT"),
				sql.Column("difficulty_rating").Type("INTEGER"),
				sql.Column("ease_factor").Type(t.float),
				sql.Column("interval_days").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("repetitions").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("next_review_date").Type(t.timestamp),
				sql.Column("total_reviews").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("correct_reviews").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("is_suspended").Type("BOOLEAN").Attr("NOT NULL DEFAULT FALSE"),
				sql.Column("created_at").Type(t.timestamp).Attr("NOT NULL"),
			).
			PrimaryKey("id").
			ForeignKeys(cascade("deck_id", tableDecks)),
		b.CreateIndex("flashcards_deck_id_created_at").IfNotExists().
			Table(tableCards).Columns("deck_id", "created_at", "id"),

		b.CreateTable(tableSessions).IfNotExists().
			Columns(
				sql.Column("id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("user_id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("subject_id").Type(t.uuid),
				sql.Column("session_type").Type("TEXT"),
				sql.Column("started_at").Type(t.timestamp).Attr("NOT NULL"),
				sql.Column("ended_at").Type(t.timestamp),
				sql.Column("duration_minutes").Type("INTEGER"),
				sql.Column("cards_reviewed").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("cards_correct").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("focus_score").Type(t.float),
				sql.Column("mood_rating").Type("INTEGER"),
				sql.Column("is_completed").Type("BOOLEAN").Attr("NOT NULL DEFAULT FALSE"),
			).
			PrimaryKey("id"),
		b.CreateIndex("study_sessions_user_id_started_at").IfNotExists().
			Table(tableSessions).Columns("user_id", "started_at"),

		b.CreateTable(tableReviews).IfNotExists().
			Columns(
				sql.Column("id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("flashcard_id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("user_id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("session_id").Type(t.uuid),
				sql.Column("quality_rating").Type("INTEGER").Attr("NOT NULL"),
				sql.Column("response_time_seconds").Type("INTEGER"),
				sql.Column("previous_ease_factor").Type(t.float),
				sql.Column("new_ease_factor").Type(t.float),
				sql.Column("previous_interval").Type("INTEGER"),
				sql.Column("new_interval").Type("INTEGER"),
				sql.Column("reviewed_at").Type(t.timestamp).Attr("NOT NULL"),
			).
			PrimaryKey("id").
			ForeignKeys(
				cascade("flashcard_id", tableCards),
				references("session_id", tableSessions, "SET NULL"),
			),
		b.CreateIndex("flashcard_reviews_flashcard_id_reviewed_at").IfNotExists().
			Table(tableReviews).Columns("flashcard_id", "reviewed_at"),

		b.CreateTable(tableProgress).IfNotExists().
			Columns(
				sql.Column("id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("user_id").Type(t.uuid).Attr("NOT NULL"),
				sql.Column("date").Type("DATE").Attr("NOT NULL"),
				sql.Column("total_study_minutes").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("cards_reviewed").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("cards_mastered").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("notes_created").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("streak_days").Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
				sql.Column("created_at").Type(t.timestamp).Attr("NOT NULL"),
			).
			PrimaryKey("id"),
		b.CreateIndex("daily_progress_user_id_date").IfNotExists().Unique().
			Table(tableProgress).Columns("user_id", "date"),
	}

	return s.WithinTx(ctx, func(ctx context.Context) error {
		for _, stmt := range stmts {
			if _, err := s.run(ctx, stmt); err != nil {
				query, _ := stmt.Query()
				return fmt.Errorf("migrate %q: %w", query, err)
			}
		}
		return nil
	})
}
