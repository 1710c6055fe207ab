package repository

import (
	stdsql "database/sql"
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

func qualify(t *sql.SelectTable, columns []string) []string {
	return lo.Map(columns, func(c string, _ int) string { return t.C(c) })
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func utcTime(t *time.Time) stdsql.NullTime {
	if t == nil {
		return stdsql.NullTime{}
	}
	return stdsql.NullTime{Time: t.UTC(), Valid: true}
}

func uuidPtr(v uuid.NullUUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	return lo.ToPtr(v.UUID)
}

func stringPtr(v stdsql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return lo.ToPtr(v.String)
}

func timePtr(v stdsql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return lo.ToPtr(v.Time.UTC())
}

func intPtr(v stdsql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return lo.ToPtr(int(v.Int64))
}

func floatPtr(v stdsql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return lo.ToPtr(v.Float64)
}
