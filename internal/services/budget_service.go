package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/store"
)

type BudgetDraft struct {
	store.BudgetInput
	Wallets []int64
}

// CreateBudget checks the wallet set before writing anything: the
// budget needs at least one existing wallet and all of them must share
// one currency, which becomes the budget's currency.
func (e *Engine) CreateBudget(ctx context.Context, d BudgetDraft) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		in, err := e.checkBudgetWallets(ctx, tx, d)
		if err != nil {
			return err
		}
		id, err = e.budgets.Insert(ctx, tx, in)
		if err != nil {
			return err
		}
		return e.budgetWallets.Reconcile(ctx, tx, id, d.Wallets)
	})
	return id, err
}

func (e *Engine) UpdateBudget(ctx context.Context, id int64, d BudgetDraft) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		in, err := e.checkBudgetWallets(ctx, tx, d)
		if err != nil {
			return err
		}
		if _, err := e.budgets.Update(ctx, tx, id, in); err != nil {
			return err
		}
		return e.budgetWallets.Reconcile(ctx, tx, id, d.Wallets)
	})
}

func (e *Engine) DeleteBudget(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := e.budgetWallets.DeleteByOwner(ctx, tx, id); err != nil {
			return err
		}
		_, err := e.budgets.Delete(ctx, tx, id)
		return err
	})
}

func (e *Engine) checkBudgetWallets(ctx context.Context, tx *sqlx.Tx, d BudgetDraft) (store.BudgetInput, error) {
	if len(d.Wallets) == 0 {
		return store.BudgetInput{}, store.ErrWalletsNotFound
	}
	wallets, err := e.wallets.ListByIDs(ctx, tx, d.Wallets)
	if err != nil {
		return store.BudgetInput{}, err
	}
	if len(wallets) != len(d.Wallets) {
		return store.BudgetInput{}, store.ErrWalletsNotFound
	}
	currency := wallets[0].Currency
	for _, w := range wallets[1:] {
		if w.Currency != currency {
			return store.BudgetInput{}, store.ErrWalletsNotConsistent
		}
	}
	in := d.BudgetInput
	in.Currency = currency
	return in, nil
}
