package main

import (
	"context"
	"database/sql"
	"fmt"

	recordsservice "noticebase/internal/records/service"
	recordsstore "noticebase/internal/records/store"
)

// recordsPostgresTx runs records operations in a single database transaction.
// The caller's context is already detached from cancellation by the service,
// so no deadline is applied here.
type recordsPostgresTx struct {
	db *sql.DB
}

func newRecordsPostgresTx(db *sql.DB) *recordsPostgresTx {
	return &recordsPostgresTx{db: db}
}

func (t *recordsPostgresTx) RunInTx(ctx context.Context, fn func(store recordsservice.Store) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(recordsstore.NewPostgresTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
