package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor runs units of work on a gorm handle. The open transaction is
// carried in the context so repositories of different modules share it; a
// nested call joins the outer transaction.
type Transactor struct {
	db        *gorm.DB
	writeOpts *sql.TxOptions
	readOpts  *sql.TxOptions
}

func NewTransactor(db *gorm.DB) *Transactor {
	t := &Transactor{db: db}
	// Serializable gives mutations a total order on postgres; sqlite already
	// allows a single writer and rejects non-default isolation options.
	if db.Dialector.Name() == "postgres" {
		t.writeOpts = &sql.TxOptions{Isolation: sql.LevelSerializable}
		t.readOpts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return t
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, t.options(t.writeOpts)...)
}

func (t *Transactor) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, t.options(t.readOpts)...)
}

func (t *Transactor) options(opts *sql.TxOptions) []*sql.TxOptions {
	if opts == nil {
		return nil
	}
	return []*sql.TxOptions{opts}
}

// Conn returns the transaction carried by ctx, or fallback bound to ctx.
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
