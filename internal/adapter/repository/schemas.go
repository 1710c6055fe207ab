package repository

import (
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/pkg/filterexpr"
)

var listDecksSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"title": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Title",
				filterexpr.OpSW: "TitlePrefix",
			},
		},
		"is_public": {
			Kind: filterexpr.KindBool,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "IsPublic"},
		},
		"is_archived": {
			Kind: filterexpr.KindBool,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "IsArchived"},
		},
		"total_cards": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "MinCards",
				filterexpr.OpLTE: "MaxCards",
			},
		},
		"created_at": {
			Kind: filterexpr.KindTimestamp,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "CreatedFrom",
				filterexpr.OpLTE: "CreatedTo",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "created_at",
		DefaultPrimaryDesc: true,
		FallbackKey:        "id",
		FallbackDesc:       false,
		Fields: map[string]filterexpr.OrderField{
			"created_at":      {Expr: "created_at", Nulls: "last"},
			"last_studied_at": {Expr: "last_studied_at", Nulls: "last"},
			"title":           {Expr: "title", Nulls: "last"},
			"total_cards":     {Expr: "total_cards", Nulls: "last"},
			"id":              {Expr: "id", Nulls: "last"},
		},
	},
}

type listDecksParams struct {
	Title       *string
	TitlePrefix *string
	IsPublic    *bool
	IsArchived  *bool
	MinCards    *int
	MaxCards    *int
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	orderParams
}

var listDailyProgressSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"date": {
			Kind: filterexpr.KindTimestamp,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "DateFrom",
				filterexpr.OpLTE: "DateTo",
			},
		},
		"total_study_minutes": {
			Kind: filterexpr.KindNumber,
			Ops:  map[filterexpr.Op]string{filterexpr.OpGTE: "MinMinutes"},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "date",
		DefaultPrimaryDesc: true,
		FallbackKey:        "id",
		FallbackDesc:       false,
		Fields: map[string]filterexpr.OrderField{
			"date":                {Expr: "date", Nulls: "last"},
			"total_study_minutes": {Expr: "total_study_minutes", Nulls: "last"},
			"cards_reviewed":      {Expr: "cards_reviewed", Nulls: "last"},
			"id":                  {Expr: "id", Nulls: "last"},
		},
	},
}

type listDailyProgressParams struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	MinMinutes *int

	orderParams
}

// orderParams receives the ordering chosen by filterexpr.Bind.
type orderParams struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func bindQuery[M filterexpr.Msg, P any](msg M, params *P, schema filterexpr.ResourceSchema) error {
	if err := filterexpr.Bind(msg, params, schema); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidFilter, err)
	}
	return nil
}

// orderTerms renders the bound ordering against t using the schema's whitelisted expressions.
func (o orderParams) orderTerms(t *sql.SelectTable, schema filterexpr.OrderSchema) []string {
	terms := make([]string, 0, 2)
	for _, term := range []struct {
		key  string
		desc bool
	}{
		{key: o.PrimaryKey, desc: o.PrimaryDesc},
		{key: o.SecondaryKey, desc: o.SecondaryDesc},
	} {
		field, ok := schema.Fields[term.key]
		if !ok {
			continue
		}
		// Qualified columns are written as-is by the selector, so modifiers can be appended.
		expr := t.C(field.Expr)
		if term.desc {
			expr += " DESC"
		} else {
			expr += " ASC"
		}
		if field.Nulls == "last" {
			expr += " NULLS LAST"
		}
		terms = append(terms, expr)
	}
	return terms
}
