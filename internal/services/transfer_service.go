package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/store"
)

// TransferDraft describes a transfer between two wallets. A non-zero
// TaxMoney adds a third leg charged to the source wallet, so the
// source loses money plus tax while the destination gains exactly
// money.
type TransferDraft struct {
	Description  string
	Date         string
	WalletFrom   int64
	WalletTo     int64
	Money        int64
	TaxMoney     int64
	Note         string
	Place        *int64
	Event        *int64
	Confirmed    bool
	CountInTotal bool
	People       []int64
	Attachments  []int64
	// Recurrence and SyncID are set by the recurrence expander;
	// interactive writes leave them zero.
	Recurrence *int64
	SyncID     string
}

func (e *Engine) CreateTransfer(ctx context.Context, d TransferDraft) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.createTransfer(ctx, tx, d)
		return err
	})
	return id, err
}

func (e *Engine) createTransfer(ctx context.Context, tx *sqlx.Tx, d TransferDraft) (int64, error) {
	transferCat, err := e.categories.GetByTag(ctx, tx, store.TagTransfer)
	if err != nil {
		return 0, err
	}

	fromID, err := e.transactions.Insert(ctx, tx,
		e.legInput(d, d.WalletFrom, d.Money, store.DirectionExpense, transferCat.ID, legSyncID(d.SyncID, "out")))
	if err != nil {
		return 0, err
	}
	toID, err := e.transactions.Insert(ctx, tx,
		e.legInput(d, d.WalletTo, d.Money, store.DirectionIncome, transferCat.ID, legSyncID(d.SyncID, "in")))
	if err != nil {
		return 0, err
	}
	var taxID *int64
	if d.TaxMoney > 0 {
		taxCat, err := e.categories.GetByTag(ctx, tx, store.TagTransferTax)
		if err != nil {
			return 0, err
		}
		id, err := e.transactions.Insert(ctx, tx,
			e.legInput(d, d.WalletFrom, d.TaxMoney, store.DirectionExpense, taxCat.ID, legSyncID(d.SyncID, "tax")))
		if err != nil {
			return 0, err
		}
		taxID = &id
	}

	transferID, err := e.transfers.Insert(ctx, tx, store.TransferInput{
		Description:     d.Description,
		Date:            d.Date,
		TransactionFrom: fromID,
		TransactionTo:   toID,
		TransactionTax:  taxID,
		Note:            d.Note,
		Place:           d.Place,
		Event:           d.Event,
		Recurrence:      d.Recurrence,
		SyncID:          d.SyncID,
	})
	if err != nil {
		return 0, err
	}
	return transferID, e.reconcileTransferLinks(ctx, tx, transferID, d)
}

// UpdateTransfer rewrites the transfer and its legs together. The tax
// leg appears or disappears as TaxMoney crosses zero.
func (e *Engine) UpdateTransfer(ctx context.Context, id int64, d TransferDraft) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := e.transfers.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		transferCat, err := e.categories.GetByTag(ctx, tx, store.TagTransfer)
		if err != nil {
			return err
		}

		if _, err := e.transactions.Update(ctx, tx, current.TransactionFrom,
			e.legInput(d, d.WalletFrom, d.Money, store.DirectionExpense, transferCat.ID, "")); err != nil {
			return err
		}
		if _, err := e.transactions.Update(ctx, tx, current.TransactionTo,
			e.legInput(d, d.WalletTo, d.Money, store.DirectionIncome, transferCat.ID, "")); err != nil {
			return err
		}

		taxID, err := e.reconcileTaxLeg(ctx, tx, current, d)
		if err != nil {
			return err
		}

		if _, err := e.transfers.Update(ctx, tx, id, store.TransferInput{
			Description:     d.Description,
			Date:            d.Date,
			TransactionFrom: current.TransactionFrom,
			TransactionTo:   current.TransactionTo,
			TransactionTax:  taxID,
			Note:            d.Note,
			Place:           d.Place,
			Event:           d.Event,
			Recurrence:      d.Recurrence,
		}); err != nil {
			return err
		}
		return e.reconcileTransferLinks(ctx, tx, id, d)
	})
}

func (e *Engine) reconcileTaxLeg(ctx context.Context, tx *sqlx.Tx, current store.Transfer, d TransferDraft) (*int64, error) {
	switch {
	case d.TaxMoney > 0 && current.TransactionTax.Valid:
		taxCat, err := e.categories.GetByTag(ctx, tx, store.TagTransferTax)
		if err != nil {
			return nil, err
		}
		taxID := current.TransactionTax.Int64
		if _, err := e.transactions.Update(ctx, tx, taxID,
			e.legInput(d, d.WalletFrom, d.TaxMoney, store.DirectionExpense, taxCat.ID, "")); err != nil {
			return nil, err
		}
		return &taxID, nil
	case d.TaxMoney > 0:
		taxCat, err := e.categories.GetByTag(ctx, tx, store.TagTransferTax)
		if err != nil {
			return nil, err
		}
		taxID, err := e.transactions.Insert(ctx, tx,
			e.legInput(d, d.WalletFrom, d.TaxMoney, store.DirectionExpense, taxCat.ID, ""))
		if err != nil {
			return nil, err
		}
		return &taxID, nil
	case current.TransactionTax.Valid:
		// Drop the pointer first so the leg is no longer a live
		// transfer member, then remove the leg.
		if err := e.transfers.ClearTax(ctx, tx, current.ID); err != nil {
			return nil, err
		}
		if _, err := e.transactions.Delete(ctx, tx, current.TransactionTax.Int64); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, nil
	}
}

// DeleteTransfer removes the transfer row and all of its legs.
func (e *Engine) DeleteTransfer(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := e.transfers.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := e.transferPeople.DeleteByOwner(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.transferAttachments.DeleteByOwner(ctx, tx, id); err != nil {
			return err
		}
		if _, err := e.transfers.Delete(ctx, tx, id); err != nil {
			return err
		}
		legs := []int64{current.TransactionFrom, current.TransactionTo}
		if current.TransactionTax.Valid {
			legs = append(legs, current.TransactionTax.Int64)
		}
		for _, leg := range legs {
			if _, err := e.transactions.Delete(ctx, tx, leg); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *Engine) legInput(d TransferDraft, wallet, amount int64, direction int, category int64, syncID string) store.TransactionInput {
	return store.TransactionInput{
		Money:        amount,
		Date:         d.Date,
		Description:  d.Description,
		Category:     category,
		Direction:    direction,
		Type:         store.TransactionTypeTransfer,
		Wallet:       wallet,
		Place:        d.Place,
		Note:         d.Note,
		Event:        d.Event,
		Confirmed:    d.Confirmed,
		CountInTotal: d.CountInTotal,
		SyncID:       syncID,
	}
}

func legSyncID(base, leg string) string {
	if base == "" {
		return ""
	}
	return base + "/" + leg
}

func (e *Engine) reconcileTransferLinks(ctx context.Context, tx *sqlx.Tx, id int64, d TransferDraft) error {
	if err := e.transferPeople.Reconcile(ctx, tx, id, d.People); err != nil {
		return err
	}
	return e.transferAttachments.Reconcile(ctx, tx, id, d.Attachments)
}
