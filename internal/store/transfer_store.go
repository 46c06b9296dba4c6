package store

import (
	"context"
	"database/sql"
)

type TransferStore struct {
	db  DB
	cfg Config
}

type Transfer struct {
	ID              int64         `db:"id"`
	Description     string        `db:"description"`
	Date            string        `db:"date"`
	TransactionFrom int64         `db:"transaction_from"`
	TransactionTo   int64         `db:"transaction_to"`
	TransactionTax  sql.NullInt64 `db:"transaction_tax"`
	Note            string        `db:"note"`
	Place           sql.NullInt64 `db:"place"`
	Event           sql.NullInt64 `db:"event"`
	Recurrence      sql.NullInt64 `db:"recurrence"`
	SyncID          string        `db:"sync_id"`
	LastEdit        int64         `db:"last_edit"`
	Deleted         bool          `db:"deleted"`
}

type TransferInput struct {
	Description     string
	Date            string
	TransactionFrom int64
	TransactionTo   int64
	TransactionTax  *int64
	Note            string
	Place           *int64
	Event           *int64
	Recurrence      *int64
	// SyncID overrides the random stable identifier for recurrence
	// occurrences.
	SyncID string
}

func NewTransferStore(db DB, cfg Config) *TransferStore {
	return &TransferStore{db: db, cfg: cfg}
}

func (s *TransferStore) Insert(ctx context.Context, tx Execer, in TransferInput) (int64, error) {
	syncID := in.SyncID
	if syncID == "" {
		syncID = NewSyncID()
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO transfers (description, date, transaction_from, transaction_to, transaction_tax, note, place, event, recurrence, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Description, in.Date, in.TransactionFrom, in.TransactionTo, in.TransactionTax,
		in.Note, in.Place, in.Event, in.Recurrence, syncID, Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *TransferStore) Update(ctx context.Context, tx Execer, id int64, in TransferInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE transfers
		SET description = ?, date = ?, transaction_from = ?, transaction_to = ?, transaction_tax = ?, note = ?, place = ?, event = ?, recurrence = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Description, in.Date, in.TransactionFrom, in.TransactionTo, in.TransactionTax,
		in.Note, in.Place, in.Event, in.Recurrence, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearTax drops the tax leg reference after the leg itself was
// removed.
func (s *TransferStore) ClearTax(ctx context.Context, tx Execer, id int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE transfers SET transaction_tax = NULL, last_edit = ? WHERE id = ?`, Now(), id)
	return err
}

func (s *TransferStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "transfers", id)
}

// ClearRecurrence detaches materialized occurrences from a removed
// rule. The transfers themselves stay.
func (s *TransferStore) ClearRecurrence(ctx context.Context, tx Execer, recurrenceID int64) error {
	return clearColumn(ctx, tx, "transfers", "recurrence", recurrenceID)
}

func (s *TransferStore) GetByID(ctx context.Context, q Getter, id int64) (Transfer, error) {
	var row Transfer
	err := q.GetContext(ctx, &row, `
		SELECT id, description, date, transaction_from, transaction_to, transaction_tax, note, place, event, recurrence, sync_id, last_edit, deleted
		FROM transfers
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Transfer{}, err
	}
	return row, nil
}

// GetBySyncID looks a transfer up by stable identifier, including
// soft-deleted rows.
func (s *TransferStore) GetBySyncID(ctx context.Context, q Getter, syncID string) (Transfer, error) {
	var row Transfer
	err := q.GetContext(ctx, &row, `
		SELECT id, description, date, transaction_from, transaction_to, transaction_tax, note, place, event, recurrence, sync_id, last_edit, deleted
		FROM transfers
		WHERE sync_id = ?
	`, syncID)
	if err != nil {
		return Transfer{}, err
	}
	return row, nil
}

// ListByWallet returns every non-deleted transfer with at least one leg
// in the wallet.
func (s *TransferStore) ListByWallet(ctx context.Context, q Selecter, walletID int64) ([]Transfer, error) {
	var rows []Transfer
	err := q.SelectContext(ctx, &rows, `
		SELECT f.id, f.description, f.date, f.transaction_from, f.transaction_to, f.transaction_tax, f.note, f.place, f.event, f.recurrence, f.sync_id, f.last_edit, f.deleted
		FROM transfers f
		JOIN transactions t ON t.id IN (f.transaction_from, f.transaction_to, f.transaction_tax)
		WHERE f.deleted = 0 AND t.wallet = ?
		GROUP BY f.id
	`, walletID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
