package repository

import "context"

// Pagination holds skip/limit parameters for listing entities.
type Pagination struct {
	Skip  int
	Limit int
}

// Empty reports whether the page can never contain rows.
func (p Pagination) Empty() bool { return p.Limit <= 0 }

type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }

// Transactor runs fn inside a single storage transaction carried by ctx.
// Nested calls join the outer transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
