package filterexpr

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"
)

type listRequest struct {
	filter  string
	orderBy string
}

func (r listRequest) GetFilter() string  { return r.filter }
func (r listRequest) GetOrderBy() string { return r.orderBy }

type listDecksParams struct {
	Title         *string
	TitlePrefix   *string
	IsArchived    *bool
	MinCards      *int
	MaxCards      *int
	CreatedAfter  *time.Time
	Titles        []string
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

var decksSchema = ResourceSchema{
	Filter: map[string]FilterField{
		"title": {
			Kind: KindString,
			Ops: map[Op]string{
				OpEQ: "Title",
				OpSW: "TitlePrefix",
				OpIN: "Titles",
			},
		},
		"is_archived": {
			Kind: KindBool,
			Ops:  map[Op]string{OpEQ: "IsArchived"},
		},
		"total_cards": {
			Kind: KindNumber,
			Ops: map[Op]string{
				OpGTE: "MinCards",
				OpLTE: "MaxCards",
			},
		},
		"created_at": {
			Kind: KindTimestamp,
			Ops:  map[Op]string{OpGTE: "CreatedAfter"},
		},
	},
	Order: OrderSchema{
		DefaultPrimary:     "created_at",
		DefaultPrimaryDesc: true,
		FallbackKey:        "id",
		Fields: map[string]OrderField{
			"created_at": {Expr: "created_at"},
			"title":      {Expr: "title"},
			"id":         {Expr: "id"},
		},
	},
}

func TestBindDecks(t *testing.T) {
	var params listDecksParams
	timestamp := "2025-01-01T00:00:00Z"
	filter := fmt.Sprintf("title.startsWith('Bio') && is_archived == false && total_cards >= 5 && created_at >= timestamp('%s')", timestamp)

	if err := Bind(listRequest{filter: filter}, &params, decksSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}

	if params.TitlePrefix == nil || *params.TitlePrefix != "Bio" {
		t.Fatalf("expected TitlePrefix to be 'Bio', got %v", params.TitlePrefix)
	}
	if params.IsArchived == nil || *params.IsArchived {
		t.Fatalf("expected IsArchived false, got %v", params.IsArchived)
	}
	if params.MinCards == nil || *params.MinCards != 5 {
		t.Fatalf("expected MinCards 5, got %v", params.MinCards)
	}
	if params.MaxCards != nil {
		t.Fatalf("expected MaxCards to be nil, got %v", params.MaxCards)
	}
	want, _ := time.Parse(time.RFC3339, timestamp)
	if params.CreatedAfter == nil || !params.CreatedAfter.Equal(want) {
		t.Fatalf("expected CreatedAfter %v, got %v", want, params.CreatedAfter)
	}
	if params.PrimaryKey != "created_at" || !params.PrimaryDesc || params.SecondaryKey != "id" {
		t.Fatalf("expected default ordering, got %+v", params)
	}
}

func TestBindOrderBy(t *testing.T) {
	var params listDecksParams
	if err := Bind(listRequest{orderBy: "title asc, created_at desc"}, &params, decksSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	if params.PrimaryKey != "title" || params.PrimaryDesc {
		t.Fatalf("expected title asc, got %s desc=%v", params.PrimaryKey, params.PrimaryDesc)
	}
	if params.SecondaryKey != "created_at" || !params.SecondaryDesc {
		t.Fatalf("expected created_at desc, got %s desc=%v", params.SecondaryKey, params.SecondaryDesc)
	}
}

func TestBindInOperator(t *testing.T) {
	var params listDecksParams
	if err := Bind(listRequest{filter: "title in ['Bio', 'Chem']"}, &params, decksSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	want := []string{"Bio", "Chem"}
	if !reflect.DeepEqual(params.Titles, want) {
		t.Fatalf("expected Titles %v, got %v", want, params.Titles)
	}
}

func TestBindCustomSetter(t *testing.T) {
	type params struct {
		Title         string
		PrimaryKey    string
		PrimaryDesc   bool
		SecondaryKey  string
		SecondaryDesc bool
	}
	schema := decksSchema
	schema.Filter = map[string]FilterField{
		"title": {
			Kind: KindString,
			Ops:  map[Op]string{OpEQ: "Title"},
			Setter: func(field reflect.Value, v any) error {
				text, ok := v.(string)
				if !ok {
					return fmt.Errorf("expected string, got %T", v)
				}
				field.SetString(strings.ToUpper(text))
				return nil
			},
		},
	}

	var p params
	if err := Bind(listRequest{filter: "title == 'bio'"}, &p, schema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	if p.Title != "BIO" {
		t.Fatalf("expected setter to upper-case the title, got %q", p.Title)
	}
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		orderBy string
		want    string
	}{
		{name: "unsupported field", filter: "unknown == 'x'", want: "not allowed"},
		{name: "unsupported operator", filter: "title <= 'A'", want: "operator"},
		{name: "bad literal type", filter: "title == 1", want: "expected string"},
		{name: "bool comparison", filter: "is_archived == 'yes'", want: "expected bool"},
		{name: "bad logical op", filter: "title == 'A' || total_cards <= 10", want: "only AND"},
		{name: "non literal", filter: "total_cards <= foo", want: "right-hand side"},
		{name: "list of numbers", filter: "title in [1]", want: "list literal elements must be strings"},
		{name: "unknown order key", orderBy: "score desc", want: "cannot be used for ordering"},
		{name: "bad direction", orderBy: "title sideways", want: "invalid direction"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var params listDecksParams
			err := Bind(listRequest{filter: tc.filter, orderBy: tc.orderBy}, &params, decksSchema)
			if err == nil {
				t.Fatalf("expected error for %q / %q", tc.filter, tc.orderBy)
			}
			if !strings.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.want)) {
				t.Fatalf("expected error to contain %q, got %v", tc.want, err)
			}
		})
	}
}

func TestBindNilParams(t *testing.T) {
	var params *listDecksParams
	if err := Bind(listRequest{filter: "title == 'x'"}, params, decksSchema); err == nil {
		t.Fatalf("expected error when params is nil pointer")
	}
}
