package services

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/recurrence"
	"fintracker/internal/store"
)

// TransactionDraft carries the transaction fields plus the people and
// attachments associated with it. The association sets are absolute:
// whatever is passed becomes the full set.
type TransactionDraft struct {
	store.TransactionInput
	People      []int64
	Attachments []int64
}

func (e *Engine) CreateTransaction(ctx context.Context, d TransactionDraft) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		// A transaction attached to a recurrence rule carries the
		// rule-and-date derived stable id, so it counts as that
		// date's occurrence and expansion never duplicates it.
		if d.Recurrence != nil && d.SyncID == "" {
			rule, err := e.recurringTx.GetByID(ctx, tx, *d.Recurrence)
			if err != nil {
				return err
			}
			date, err := time.Parse(store.DateLayout, d.Date)
			if err != nil {
				return err
			}
			d.SyncID = recurrence.OccurrenceSyncID(rule.SyncID, date)
		}
		var err error
		id, err = e.transactions.Insert(ctx, tx, d.TransactionInput)
		if err != nil {
			return err
		}
		return e.reconcileTransactionLinks(ctx, tx, id, d)
	})
	return id, err
}

// UpdateTransaction refuses when the transaction is a transfer leg;
// legs are only editable through their transfer.
func (e *Engine) UpdateTransaction(ctx context.Context, id int64, d TransactionDraft) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		used, err := e.transactions.UsedInTransfer(ctx, tx, id)
		if err != nil {
			return err
		}
		if used {
			return store.ErrTransactionUsedInTransfer
		}
		if _, err := e.transactions.Update(ctx, tx, id, d.TransactionInput); err != nil {
			return err
		}
		return e.reconcileTransactionLinks(ctx, tx, id, d)
	})
}

// DeleteTransaction refuses when the transaction is a transfer leg.
func (e *Engine) DeleteTransaction(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		used, err := e.transactions.UsedInTransfer(ctx, tx, id)
		if err != nil {
			return err
		}
		if used {
			return store.ErrTransactionUsedInTransfer
		}
		return e.removeTransaction(ctx, tx, id)
	})
}

// removeTransaction deletes a transaction and its association links.
// Transfer leg checks are the caller's job.
func (e *Engine) removeTransaction(ctx context.Context, tx *sqlx.Tx, id int64) error {
	if _, err := e.transactionPeople.DeleteByOwner(ctx, tx, id); err != nil {
		return err
	}
	if _, err := e.transactionAttachments.DeleteByOwner(ctx, tx, id); err != nil {
		return err
	}
	_, err := e.transactions.Delete(ctx, tx, id)
	return err
}

func (e *Engine) reconcileTransactionLinks(ctx context.Context, tx *sqlx.Tx, id int64, d TransactionDraft) error {
	if err := e.transactionPeople.Reconcile(ctx, tx, id, d.People); err != nil {
		return err
	}
	return e.transactionAttachments.Reconcile(ctx, tx, id, d.Attachments)
}
