package repository

import (
	"context"
	stdsql "database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
)

type txKey struct{}

// Store is the shared SQL handle behind every repository. It also implements
// repository.Transactor by carrying the open transaction in the context.
type Store struct {
	drv dialect.Driver
}

// NewStore wraps an ent SQL driver.
func NewStore(drv dialect.Driver) *Store {
	return &Store{drv: drv}
}

// WithinTx runs fn in a transaction. Calls nested inside fn reuse the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(dialect.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) conn(ctx context.Context) dialect.ExecQuerier {
	if tx, ok := ctx.Value(txKey{}).(dialect.Tx); ok {
		return tx
	}
	return s.drv
}

func (s *Store) builder() *sql.DialectBuilder {
	return sql.Dialect(s.drv.Dialect())
}

// lock adds a row lock to sel when running on PostgreSQL inside a transaction.
// SQLite has no row locks; its single connection already serialises writers.
func (s *Store) lock(ctx context.Context, sel *sql.Selector) *sql.Selector {
	if s.drv.Dialect() != dialect.Postgres {
		return sel
	}
	if _, ok := ctx.Value(txKey{}).(dialect.Tx); !ok {
		return sel
	}
	return sel.ForUpdate()
}

func (s *Store) query(ctx context.Context, q sql.Querier, each func(rows *sql.Rows) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	query, args := q.Query()
	rows := &sql.Rows{}
	if err := s.conn(ctx).Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := each(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *Store) run(ctx context.Context, q sql.Querier) (stdsql.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query, args := q.Query()
	var res stdsql.Result
	if err := s.conn(ctx).Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) exec(ctx context.Context, q sql.Querier) (int64, error) {
	res, err := s.run(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) count(ctx context.Context, table *sql.SelectTable, pred *sql.Predicate) (int64, error) {
	sel := s.builder().Select(sql.Count("*")).From(table)
	if pred != nil {
		sel.Where(pred)
	}
	var total int64
	err := s.query(ctx, sel, func(rows *sql.Rows) error {
		return rows.Scan(&total)
	})
	return total, err
}

func page(sel *sql.Selector, skip, limit int) *sql.Selector {
	if skip > 0 {
		sel.Offset(skip)
	}
	return sel.Limit(limit)
}
