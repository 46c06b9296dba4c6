package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/money"
	"fintracker/internal/store"
)

func (e *Engine) CreateCurrency(ctx context.Context, in store.CurrencyInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		return e.currencies.Insert(ctx, tx, in)
	})
}

// UpdateCurrency rewrites the currency row. With normalize set, a
// decimal precision change shifts every stored amount denominated in
// the currency to the new scale in the same transaction; either both
// survive or neither does. Without it only the declared precision
// moves, leaving the stored minor units as they are.
func (e *Engine) UpdateCurrency(ctx context.Context, iso string, in store.CurrencyInput, normalize bool) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := e.currencies.GetByISO(ctx, tx, iso)
		if err != nil {
			return err
		}
		if _, err := e.currencies.Update(ctx, tx, iso, in); err != nil {
			return err
		}
		offset := money.ClampDecimals(in.Decimals) - current.Decimals
		if !normalize || offset == 0 {
			return nil
		}
		return e.rescaler.Rescale(ctx, tx, iso, offset)
	})
}

// DeleteCurrency refuses while any wallet still uses the currency.
func (e *Engine) DeleteCurrency(ctx context.Context, iso string) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		inUse, err := e.currencies.InUse(ctx, tx, iso)
		if err != nil {
			return err
		}
		if inUse {
			return store.ErrCurrencyInUse
		}
		_, err = e.currencies.Delete(ctx, tx, iso)
		return err
	})
}
