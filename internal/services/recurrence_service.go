package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/recurrence"
	"fintracker/internal/store"
)

func (e *Engine) CreateRecurringTransaction(ctx context.Context, in store.RecurringTransactionInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		next, err := firstOccurrence(in.Rule, in.StartDate)
		if err != nil {
			return err
		}
		id, err = e.recurringTx.Insert(ctx, tx, in)
		if err != nil {
			return err
		}
		return e.recurringTx.SetOccurrences(ctx, tx, id, nil, next)
	})
	return id, err
}

// UpdateRecurringTransaction rewrites the rule and recomputes the next
// pending occurrence. Occurrences already materialized stay: the new
// schedule only governs dates after the last recorded one.
func (e *Engine) UpdateRecurringTransaction(ctx context.Context, id int64, in store.RecurringTransactionInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := e.recurringTx.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := occurrenceAfter(in.Rule, in.StartDate, nullableDate(current.LastOccurrence))
		if err != nil {
			return err
		}
		if _, err := e.recurringTx.Update(ctx, tx, id, in); err != nil {
			return err
		}
		return e.recurringTx.SetOccurrences(ctx, tx, id, nullableDate(current.LastOccurrence), next)
	})
}

// DeleteRecurringTransaction drops the rule but keeps the
// transactions it produced, detached from it.
func (e *Engine) DeleteRecurringTransaction(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := e.transactions.ClearRecurrence(ctx, tx, id); err != nil {
			return err
		}
		_, err := e.recurringTx.Delete(ctx, tx, id)
		return err
	})
}

func (e *Engine) CreateRecurringTransfer(ctx context.Context, in store.RecurringTransferInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		next, err := firstOccurrence(in.Rule, in.StartDate)
		if err != nil {
			return err
		}
		id, err = e.recurringTr.Insert(ctx, tx, in)
		if err != nil {
			return err
		}
		return e.recurringTr.SetOccurrences(ctx, tx, id, nil, next)
	})
	return id, err
}

func (e *Engine) UpdateRecurringTransfer(ctx context.Context, id int64, in store.RecurringTransferInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := e.recurringTr.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := occurrenceAfter(in.Rule, in.StartDate, nullableDate(current.LastOccurrence))
		if err != nil {
			return err
		}
		if _, err := e.recurringTr.Update(ctx, tx, id, in); err != nil {
			return err
		}
		return e.recurringTr.SetOccurrences(ctx, tx, id, nullableDate(current.LastOccurrence), next)
	})
}

func (e *Engine) DeleteRecurringTransfer(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := e.transfers.ClearRecurrence(ctx, tx, id); err != nil {
			return err
		}
		_, err := e.recurringTr.Delete(ctx, tx, id)
		return err
	})
}

// ExpandDue materializes every pending occurrence up to now across all
// recurrence rules. Each occurrence carries a stable identifier derived
// from the rule and the date, so running the expansion twice over the
// same window writes nothing the second time.
func (e *Engine) ExpandDue(ctx context.Context, now time.Time) error {
	today := now.UTC().Format(store.DateLayout)
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		dueTx, err := e.recurringTx.ListDue(ctx, tx, today)
		if err != nil {
			return err
		}
		for _, r := range dueTx {
			if err := e.expandRecurringTransaction(ctx, tx, r, today); err != nil {
				return err
			}
		}
		dueTr, err := e.recurringTr.ListDue(ctx, tx, today)
		if err != nil {
			return err
		}
		for _, r := range dueTr {
			if err := e.expandRecurringTransfer(ctx, tx, r, today); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *Engine) expandRecurringTransaction(ctx context.Context, tx *sqlx.Tx, r store.RecurringTransaction, today string) error {
	last := nullableDate(r.LastOccurrence)
	due, next, err := pendingOccurrences(r.Rule, r.StartDate, last, today)
	if err != nil {
		return err
	}
	for _, date := range due {
		syncID := recurrence.OccurrenceSyncID(r.SyncID, date)
		_, err := e.transactions.GetBySyncID(ctx, tx, syncID)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if _, err := e.transactions.Insert(ctx, tx, store.TransactionInput{
			Money:        r.Money,
			Date:         date.Format(store.DateLayout),
			Description:  r.Description,
			Category:     r.Category,
			Direction:    r.Direction,
			Type:         store.TransactionTypeStandard,
			Wallet:       r.Wallet,
			Place:        nullableID(r.Place),
			Note:         r.Note,
			Event:        nullableID(r.Event),
			Recurrence:   &r.ID,
			Confirmed:    r.Confirmed,
			CountInTotal: r.CountInTotal,
			SyncID:       syncID,
		}); err != nil {
			return err
		}
	}
	newLast := last
	if len(due) > 0 {
		d := due[len(due)-1].Format(store.DateLayout)
		newLast = &d
	}
	return e.recurringTx.SetOccurrences(ctx, tx, r.ID, newLast, next)
}

func (e *Engine) expandRecurringTransfer(ctx context.Context, tx *sqlx.Tx, r store.RecurringTransfer, today string) error {
	last := nullableDate(r.LastOccurrence)
	due, next, err := pendingOccurrences(r.Rule, r.StartDate, last, today)
	if err != nil {
		return err
	}
	for _, date := range due {
		syncID := recurrence.OccurrenceSyncID(r.SyncID, date)
		_, err := e.transfers.GetBySyncID(ctx, tx, syncID)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if _, err := e.createTransfer(ctx, tx, TransferDraft{
			Description:  r.Description,
			Date:         date.Format(store.DateLayout),
			WalletFrom:   r.WalletFrom,
			WalletTo:     r.WalletTo,
			Money:        r.Money,
			TaxMoney:     r.TaxMoney,
			Note:         r.Note,
			Place:        nullableID(r.Place),
			Event:        nullableID(r.Event),
			Confirmed:    r.Confirmed,
			CountInTotal: r.CountInTotal,
			Recurrence:   &r.ID,
			SyncID:       syncID,
		}); err != nil {
			return err
		}
	}
	newLast := last
	if len(due) > 0 {
		d := due[len(due)-1].Format(store.DateLayout)
		newLast = &d
	}
	return e.recurringTr.SetOccurrences(ctx, tx, r.ID, newLast, next)
}

// pendingOccurrences walks the rule anchored at start and splits the
// schedule at today: dates after last and up to today are due, the
// first date beyond today becomes the new next pointer.
func pendingOccurrences(rawRule, start string, last *string, today string) ([]time.Time, *string, error) {
	rule, err := parseRule(rawRule, start)
	if err != nil {
		return nil, nil, err
	}
	var due []time.Time
	for {
		occ, ok := rule.Next()
		if !ok {
			return due, nil, nil
		}
		date := occ.Format(store.DateLayout)
		if last != nil && date <= *last {
			continue
		}
		if date > today {
			return due, &date, nil
		}
		due = append(due, occ)
	}
}

// firstOccurrence returns the first scheduled date of a new rule.
func firstOccurrence(rawRule, start string) (*string, error) {
	return occurrenceAfter(rawRule, start, nil)
}

// occurrenceAfter returns the first scheduled date strictly after
// last, or the first date at all when last is nil.
func occurrenceAfter(rawRule, start string, last *string) (*string, error) {
	rule, err := parseRule(rawRule, start)
	if err != nil {
		return nil, err
	}
	for {
		occ, ok := rule.Next()
		if !ok {
			return nil, nil
		}
		date := occ.Format(store.DateLayout)
		if last != nil && date <= *last {
			continue
		}
		return &date, nil
	}
}

func parseRule(rawRule, start string) (recurrence.Rule, error) {
	anchor, err := time.Parse(store.DateLayout, start)
	if err != nil {
		return nil, store.ErrInvalidRecurrenceRule
	}
	rule, err := recurrence.Parse(rawRule, anchor)
	if err != nil {
		return nil, store.ErrInvalidRecurrenceRule
	}
	return rule, nil
}

func nullableDate(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	d := v.String
	return &d
}
