// Package database wires database/sql to trm so the importer can run its
// snapshot swap in a single transaction while reads stay on the pool.
package database

import (
	"context"
	"database/sql"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
)

// DB hands repositories the transaction bound to the context when one is
// open, and the raw pool otherwise.
type DB struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
}

func NewDB(db *sql.DB) *DB {
	return &DB{
		db:     db,
		getter: trmsql.DefaultCtxGetter,
	}
}

func (db *DB) Conn(ctx context.Context) trmsql.Tr {
	return db.getter.DefaultTrOrDB(ctx, db.db)
}

// TransactionManagerInterface runs fn inside a transaction carried on the
// context. Services depend on this interface, not the concrete manager.
type TransactionManagerInterface interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionManager struct {
	manager *manager.Manager
}

func NewTransactionManager(db *sql.DB) (*TransactionManager, error) {
	trManager, err := manager.New(trmsql.NewDefaultFactory(db))
	if err != nil {
		return nil, err
	}

	return &TransactionManager{manager: trManager}, nil
}

func (tm *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.manager.Do(ctx, fn)
}
