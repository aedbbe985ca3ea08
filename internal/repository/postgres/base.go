package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// NewBaseRepository creates a new base repository. SQL is generated for the dialect of
// the driver behind db, so the same repositories run on Postgres and SQLite.
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db, dialect: goqu.Dialect(dialectFor(db.DriverName()))}
}

func dialectFor(driver string) string {
	switch driver {
	case "sqlite3", "sqlite":
		return "sqlite3"
	default:
		return "postgres"
	}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

type txKey struct{}

// ext returns the transaction carried by ctx, or the database when there is none.
func (r *BaseRepository) ext(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return r.db
}

// RunInTx runs fn in one transaction. Repository calls made with the ctx handed to fn
// join it; the transaction commits only if fn returns nil.
func (r *BaseRepository) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// WithTx executes a function within a transaction. Inside RunInTx it reuses the
// surrounding transaction.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(tx)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
