package services

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/store"
)

// Templates are plain rows; the only derived behavior is spawning a
// real transaction or transfer from one.

func (e *Engine) CreateTransactionModel(ctx context.Context, in store.TransactionModelInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.txModels.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

func (e *Engine) UpdateTransactionModel(ctx context.Context, id int64, in store.TransactionModelInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.txModels.Update(ctx, tx, id, in)
		return err
	})
}

func (e *Engine) DeleteTransactionModel(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.txModels.Delete(ctx, tx, id)
		return err
	})
}

func (e *Engine) CreateTransferModel(ctx context.Context, in store.TransferModelInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.trModels.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

func (e *Engine) UpdateTransferModel(ctx context.Context, id int64, in store.TransferModelInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.trModels.Update(ctx, tx, id, in)
		return err
	})
}

func (e *Engine) DeleteTransferModel(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.trModels.Delete(ctx, tx, id)
		return err
	})
}

// ApplyTransactionModel spawns a dated transaction from a template.
func (e *Engine) ApplyTransactionModel(ctx context.Context, modelID int64, date string) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		m, err := e.txModels.GetByID(ctx, tx, modelID)
		if err != nil {
			return err
		}
		id, err = e.transactions.Insert(ctx, tx, store.TransactionInput{
			Money:        m.Money,
			Date:         date,
			Description:  m.Description,
			Category:     m.Category,
			Direction:    m.Direction,
			Type:         store.TransactionTypeStandard,
			Wallet:       m.Wallet,
			Place:        nullableID(m.Place),
			Note:         m.Note,
			Event:        nullableID(m.Event),
			Confirmed:    m.Confirmed,
			CountInTotal: m.CountInTotal,
		})
		return err
	})
	return id, err
}

// ApplyTransferModel spawns a dated transfer from a template.
func (e *Engine) ApplyTransferModel(ctx context.Context, modelID int64, date string) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		m, err := e.trModels.GetByID(ctx, tx, modelID)
		if err != nil {
			return err
		}
		id, err = e.createTransfer(ctx, tx, TransferDraft{
			Description:  m.Description,
			Date:         date,
			WalletFrom:   m.WalletFrom,
			WalletTo:     m.WalletTo,
			Money:        m.Money,
			TaxMoney:     m.TaxMoney,
			Note:         m.Note,
			Place:        nullableID(m.Place),
			Event:        nullableID(m.Event),
			Confirmed:    m.Confirmed,
			CountInTotal: m.CountInTotal,
		})
		return err
	})
	return id, err
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
