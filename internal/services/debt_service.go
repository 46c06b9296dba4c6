package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/store"
)

type DebtDraft struct {
	store.DebtInput
	People []int64
}

// CreateDebt records the debt together with its master transaction:
// borrowed money enters the wallet, lent money leaves it. The master
// carries the seeded debt or credit category so later repayments can
// be told apart from it.
func (e *Engine) CreateDebt(ctx context.Context, d DebtDraft) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.debts.Insert(ctx, tx, d.DebtInput)
		if err != nil {
			return err
		}
		cat, direction, err := e.debtMasterCategory(ctx, tx, d.Type)
		if err != nil {
			return err
		}
		if _, err := e.transactions.Insert(ctx, tx, store.TransactionInput{
			Money:        d.Money,
			Date:         d.Date,
			Description:  d.Description,
			Category:     cat.ID,
			Direction:    direction,
			Type:         store.TransactionTypeDebt,
			Wallet:       d.Wallet,
			Place:        d.Place,
			Note:         d.Note,
			Debt:         &id,
			Confirmed:    true,
			CountInTotal: true,
		}); err != nil {
			return err
		}
		return e.debtPeople.Reconcile(ctx, tx, id, d.People)
	})
	return id, err
}

// UpdateDebt rewrites the debt and keeps its master transaction in
// step: amount, date, wallet and description propagate. A master that
// was deleted by hand stays gone.
func (e *Engine) UpdateDebt(ctx context.Context, id int64, d DebtDraft) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := e.debts.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := e.debts.Update(ctx, tx, id, d.DebtInput); err != nil {
			return err
		}

		oldCat, _, err := e.debtMasterCategory(ctx, tx, current.Type)
		if err != nil {
			return err
		}
		master, err := e.transactions.FindDebtMaster(ctx, tx, id, oldCat.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return e.debtPeople.Reconcile(ctx, tx, id, d.People)
		}
		if err != nil {
			return err
		}
		newCat, direction, err := e.debtMasterCategory(ctx, tx, d.Type)
		if err != nil {
			return err
		}
		if _, err := e.transactions.Update(ctx, tx, master.ID, store.TransactionInput{
			Money:        d.Money,
			Date:         d.Date,
			Description:  d.Description,
			Category:     newCat.ID,
			Direction:    direction,
			Type:         store.TransactionTypeDebt,
			Wallet:       d.Wallet,
			Place:        d.Place,
			Note:         d.Note,
			Debt:         &id,
			Confirmed:    master.Confirmed,
			CountInTotal: master.CountInTotal,
		}); err != nil {
			return err
		}
		return e.debtPeople.Reconcile(ctx, tx, id, d.People)
	})
}

// DeleteDebt removes the debt with every transaction filed against it,
// the master and all repayments alike.
func (e *Engine) DeleteDebt(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := e.transactions.DeleteByDebt(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.debtPeople.DeleteByOwner(ctx, tx, id); err != nil {
			return err
		}
		_, err := e.debts.Delete(ctx, tx, id)
		return err
	})
}

func (e *Engine) debtMasterCategory(ctx context.Context, tx store.Tx, debtType int) (store.Category, int, error) {
	if debtType == store.DebtTypeCredit {
		cat, err := e.categories.GetByTag(ctx, tx, store.TagCredit)
		return cat, store.DirectionExpense, err
	}
	cat, err := e.categories.GetByTag(ctx, tx, store.TagDebt)
	return cat, store.DirectionIncome, err
}
