package store

import (
	"context"
	"database/sql"
)

// Transaction directions.
const (
	DirectionExpense = 0
	DirectionIncome  = 1
)

// Transaction kinds.
const (
	TransactionTypeStandard = 0
	TransactionTypeTransfer = 1
	TransactionTypeDebt     = 2
	TransactionTypeSaving   = 3
	TransactionTypeModel    = 4
)

type TransactionStore struct {
	db  DB
	cfg Config
}

type Transaction struct {
	ID           int64          `db:"id"`
	Money        int64          `db:"money"`
	Date         string         `db:"date"`
	Description  string         `db:"description"`
	Category     int64          `db:"category"`
	Direction    int            `db:"direction"`
	Type         int            `db:"type"`
	Wallet       int64          `db:"wallet"`
	Place        sql.NullInt64  `db:"place"`
	Note         string         `db:"note"`
	Event        sql.NullInt64  `db:"event"`
	Saving       sql.NullInt64  `db:"saving"`
	Debt         sql.NullInt64  `db:"debt"`
	Recurrence   sql.NullInt64  `db:"recurrence"`
	Confirmed    bool           `db:"confirmed"`
	CountInTotal bool           `db:"count_in_total"`
	SyncID       string         `db:"sync_id"`
	LastEdit     int64          `db:"last_edit"`
	Deleted      bool           `db:"deleted"`
}

type TransactionInput struct {
	Money        int64
	Date         string
	Description  string
	Category     int64
	Direction    int
	Type         int
	Wallet       int64
	Place        *int64
	Note         string
	Event        *int64
	Saving       *int64
	Debt         *int64
	Recurrence   *int64
	Confirmed    bool
	CountInTotal bool
	// SyncID overrides the random stable identifier. Recurrence
	// occurrences pass a deterministic one so replays are idempotent.
	SyncID string
}

func NewTransactionStore(db DB, cfg Config) *TransactionStore {
	return &TransactionStore{db: db, cfg: cfg}
}

func (s *TransactionStore) Insert(ctx context.Context, tx Execer, in TransactionInput) (int64, error) {
	syncID := in.SyncID
	if syncID == "" {
		syncID = NewSyncID()
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (money, date, description, category, direction, type, wallet, place, note, event, saving, debt, recurrence, confirmed, count_in_total, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Money, in.Date, in.Description, in.Category, in.Direction, in.Type, in.Wallet, in.Place,
		in.Note, in.Event, in.Saving, in.Debt, in.Recurrence, in.Confirmed, in.CountInTotal, syncID, Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *TransactionStore) Update(ctx context.Context, tx Execer, id int64, in TransactionInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET money = ?, date = ?, description = ?, category = ?, direction = ?, type = ?, wallet = ?, place = ?, note = ?, event = ?, saving = ?, debt = ?, recurrence = ?, confirmed = ?, count_in_total = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Money, in.Date, in.Description, in.Category, in.Direction, in.Type, in.Wallet, in.Place,
		in.Note, in.Event, in.Saving, in.Debt, in.Recurrence, in.Confirmed, in.CountInTotal, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *TransactionStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "transactions", id)
}

// DeleteByWallet cascades a wallet removal onto its transactions.
func (s *TransactionStore) DeleteByWallet(ctx context.Context, tx Execer, walletID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, "transactions", "wallet", walletID)
}

// DeleteByDebt cascades a debt removal onto its transactions, the
// master transaction included.
func (s *TransactionStore) DeleteByDebt(ctx context.Context, tx Execer, debtID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, "transactions", "debt", debtID)
}

// DeleteBySaving cascades a saving removal onto its transactions.
func (s *TransactionStore) DeleteBySaving(ctx context.Context, tx Execer, savingID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, "transactions", "saving", savingID)
}

// ClearRecurrence detaches materialized occurrences from a removed
// rule. The transactions themselves stay.
func (s *TransactionStore) ClearRecurrence(ctx context.Context, tx Execer, recurrenceID int64) error {
	return clearColumn(ctx, tx, "transactions", "recurrence", recurrenceID)
}

func (s *TransactionStore) GetByID(ctx context.Context, q Getter, id int64) (Transaction, error) {
	var row Transaction
	err := q.GetContext(ctx, &row, `
		SELECT id, money, date, description, category, direction, type, wallet, place, note, event, saving, debt, recurrence, confirmed, count_in_total, sync_id, last_edit, deleted
		FROM transactions
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Transaction{}, err
	}
	return row, nil
}

// GetBySyncID looks a transaction up by stable identifier, including
// soft-deleted rows. Recurrence replays use it to detect occurrences
// that already exist.
func (s *TransactionStore) GetBySyncID(ctx context.Context, q Getter, syncID string) (Transaction, error) {
	var row Transaction
	err := q.GetContext(ctx, &row, `
		SELECT id, money, date, description, category, direction, type, wallet, place, note, event, saving, debt, recurrence, confirmed, count_in_total, sync_id, last_edit, deleted
		FROM transactions
		WHERE sync_id = ?
	`, syncID)
	if err != nil {
		return Transaction{}, err
	}
	return row, nil
}

// UsedInTransfer reports whether the transaction is currently one of a
// non-deleted transfer's legs. The leg test covers all three columns;
// only live transfer rows count.
func (s *TransactionStore) UsedInTransfer(ctx context.Context, q Getter, id int64) (bool, error) {
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM transfers
		WHERE (transaction_from = ? OR transaction_to = ? OR transaction_tax = ?) AND deleted = 0
	`, id, id, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindDebtMaster locates the master transaction created alongside a
// debt: same debt reference, debt kind, and the debt/credit system
// category.
func (s *TransactionStore) FindDebtMaster(ctx context.Context, q Getter, debtID int64, categoryID int64) (Transaction, error) {
	var row Transaction
	err := q.GetContext(ctx, &row, `
		SELECT id, money, date, description, category, direction, type, wallet, place, note, event, saving, debt, recurrence, confirmed, count_in_total, sync_id, last_edit, deleted
		FROM transactions
		WHERE debt = ? AND category = ? AND type = ? AND deleted = 0
	`, debtID, categoryID, TransactionTypeDebt)
	if err != nil {
		return Transaction{}, err
	}
	return row, nil
}
