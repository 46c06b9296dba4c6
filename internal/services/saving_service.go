package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/store"
)

func (e *Engine) CreateSaving(ctx context.Context, in store.SavingInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.savings.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

func (e *Engine) UpdateSaving(ctx context.Context, id int64, in store.SavingInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.savings.Update(ctx, tx, id, in)
		return err
	})
}

// DeleteSaving removes the saving and every deposit or withdrawal
// filed against it.
func (e *Engine) DeleteSaving(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := e.transactions.DeleteBySaving(ctx, tx, id); err != nil {
			return err
		}
		_, err := e.savings.Delete(ctx, tx, id)
		return err
	})
}
