package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/store"
)

func (e *Engine) CreateWallet(ctx context.Context, in store.WalletInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.wallets.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

func (e *Engine) UpdateWallet(ctx context.Context, id int64, in store.WalletInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.wallets.Update(ctx, tx, id, in)
		return err
	})
}

// DeleteWallet removes a wallet and everything owned by it:
// transactions, debts, savings, templates and recurrence rules, plus
// its budget memberships. It refuses while any of the wallet's
// transactions belongs to a live transfer, because removing one leg
// would leave the transfer dangling.
func (e *Engine) DeleteWallet(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		used, err := e.wallets.UsedInTransfer(ctx, tx, id)
		if err != nil {
			return err
		}
		if used {
			return store.ErrWalletUsedInTransfer
		}
		if _, err := e.transactions.DeleteByWallet(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.debts.DeleteByWallet(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.savings.DeleteByWallet(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.txModels.DeleteByWallet(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.trModels.DeleteByWallet(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.recurringTx.DeleteByWallet(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.recurringTr.DeleteByWallet(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.budgetWallets.DeleteByTarget(ctx, tx, id); err != nil {
			return err
		}
		_, err = e.wallets.Delete(ctx, tx, id)
		return err
	})
}
