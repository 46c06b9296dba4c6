package store

import (
	"context"
	"database/sql"
)

// RecurringTransactionStore holds transaction templates paired with a
// recurrence rule and the last/next occurrence pointers.
type RecurringTransactionStore struct {
	db  DB
	cfg Config
}

type RecurringTransaction struct {
	ID             int64          `db:"id"`
	Money          int64          `db:"money"`
	Description    string         `db:"description"`
	Category       int64          `db:"category"`
	Direction      int            `db:"direction"`
	Wallet         int64          `db:"wallet"`
	Place          sql.NullInt64  `db:"place"`
	Note           string         `db:"note"`
	Event          sql.NullInt64  `db:"event"`
	Confirmed      bool           `db:"confirmed"`
	CountInTotal   bool           `db:"count_in_total"`
	StartDate      string         `db:"start_date"`
	LastOccurrence sql.NullString `db:"last_occurrence"`
	NextOccurrence sql.NullString `db:"next_occurrence"`
	Rule           string         `db:"rule"`
	SyncID         string         `db:"sync_id"`
	LastEdit       int64          `db:"last_edit"`
	Deleted        bool           `db:"deleted"`
}

type RecurringTransactionInput struct {
	Money        int64
	Description  string
	Category     int64
	Direction    int
	Wallet       int64
	Place        *int64
	Note         string
	Event        *int64
	Confirmed    bool
	CountInTotal bool
	StartDate    string
	Rule         string
}

func NewRecurringTransactionStore(db DB, cfg Config) *RecurringTransactionStore {
	return &RecurringTransactionStore{db: db, cfg: cfg}
}

func (s *RecurringTransactionStore) Insert(ctx context.Context, tx Execer, in RecurringTransactionInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO recurring_transactions (money, description, category, direction, wallet, place, note, event, confirmed, count_in_total, start_date, rule, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Money, in.Description, in.Category, in.Direction, in.Wallet, in.Place, in.Note, in.Event,
		in.Confirmed, in.CountInTotal, in.StartDate, in.Rule, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *RecurringTransactionStore) Update(ctx context.Context, tx Execer, id int64, in RecurringTransactionInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE recurring_transactions
		SET money = ?, description = ?, category = ?, direction = ?, wallet = ?, place = ?, note = ?, event = ?, confirmed = ?, count_in_total = ?, start_date = ?, rule = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Money, in.Description, in.Category, in.Direction, in.Wallet, in.Place, in.Note, in.Event,
		in.Confirmed, in.CountInTotal, in.StartDate, in.Rule, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SetOccurrences moves the last/next occurrence pointers. A nil next
// means the rule is exhausted.
func (s *RecurringTransactionStore) SetOccurrences(ctx context.Context, tx Execer, id int64, last, next *string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE recurring_transactions SET last_occurrence = ?, next_occurrence = ?, last_edit = ? WHERE id = ?`,
		last, next, Now(), id)
	return err
}

func (s *RecurringTransactionStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "recurring_transactions", id)
}

// DeleteByWallet cascades a wallet removal onto its recurrences.
func (s *RecurringTransactionStore) DeleteByWallet(ctx context.Context, tx Execer, walletID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, "recurring_transactions", "wallet", walletID)
}

func (s *RecurringTransactionStore) GetByID(ctx context.Context, q Getter, id int64) (RecurringTransaction, error) {
	var row RecurringTransaction
	err := q.GetContext(ctx, &row, `
		SELECT id, money, description, category, direction, wallet, place, note, event, confirmed, count_in_total, start_date, last_occurrence, next_occurrence, rule, sync_id, last_edit, deleted
		FROM recurring_transactions
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return RecurringTransaction{}, err
	}
	return row, nil
}

// ListDue returns templates whose next occurrence is unset or not
// after the given date.
func (s *RecurringTransactionStore) ListDue(ctx context.Context, q Selecter, date string) ([]RecurringTransaction, error) {
	var rows []RecurringTransaction
	err := q.SelectContext(ctx, &rows, `
		SELECT id, money, description, category, direction, wallet, place, note, event, confirmed, count_in_total, start_date, last_occurrence, next_occurrence, rule, sync_id, last_edit, deleted
		FROM recurring_transactions
		WHERE deleted = 0 AND next_occurrence IS NOT NULL AND next_occurrence <= ?
	`, date)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RecurringTransferStore holds transfer templates paired with a
// recurrence rule.
type RecurringTransferStore struct {
	db  DB
	cfg Config
}

type RecurringTransfer struct {
	ID             int64          `db:"id"`
	Description    string         `db:"description"`
	WalletFrom     int64          `db:"wallet_from"`
	WalletTo       int64          `db:"wallet_to"`
	Money          int64          `db:"money"`
	Note           string         `db:"note"`
	Place          sql.NullInt64  `db:"place"`
	Event          sql.NullInt64  `db:"event"`
	Confirmed      bool           `db:"confirmed"`
	CountInTotal   bool           `db:"count_in_total"`
	TaxMoney       int64          `db:"tax_money"`
	StartDate      string         `db:"start_date"`
	LastOccurrence sql.NullString `db:"last_occurrence"`
	NextOccurrence sql.NullString `db:"next_occurrence"`
	Rule           string         `db:"rule"`
	SyncID         string         `db:"sync_id"`
	LastEdit       int64          `db:"last_edit"`
	Deleted        bool           `db:"deleted"`
}

type RecurringTransferInput struct {
	Description  string
	WalletFrom   int64
	WalletTo     int64
	Money        int64
	Note         string
	Place        *int64
	Event        *int64
	Confirmed    bool
	CountInTotal bool
	TaxMoney     int64
	StartDate    string
	Rule         string
}

func NewRecurringTransferStore(db DB, cfg Config) *RecurringTransferStore {
	return &RecurringTransferStore{db: db, cfg: cfg}
}

func (s *RecurringTransferStore) Insert(ctx context.Context, tx Execer, in RecurringTransferInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO recurring_transfers (description, wallet_from, wallet_to, money, note, place, event, confirmed, count_in_total, tax_money, start_date, rule, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Description, in.WalletFrom, in.WalletTo, in.Money, in.Note, in.Place, in.Event,
		in.Confirmed, in.CountInTotal, in.TaxMoney, in.StartDate, in.Rule, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *RecurringTransferStore) Update(ctx context.Context, tx Execer, id int64, in RecurringTransferInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE recurring_transfers
		SET description = ?, wallet_from = ?, wallet_to = ?, money = ?, note = ?, place = ?, event = ?, confirmed = ?, count_in_total = ?, tax_money = ?, start_date = ?, rule = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Description, in.WalletFrom, in.WalletTo, in.Money, in.Note, in.Place, in.Event,
		in.Confirmed, in.CountInTotal, in.TaxMoney, in.StartDate, in.Rule, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SetOccurrences moves the last/next occurrence pointers.
func (s *RecurringTransferStore) SetOccurrences(ctx context.Context, tx Execer, id int64, last, next *string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE recurring_transfers SET last_occurrence = ?, next_occurrence = ?, last_edit = ? WHERE id = ?`,
		last, next, Now(), id)
	return err
}

func (s *RecurringTransferStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "recurring_transfers", id)
}

// DeleteByWallet cascades a wallet removal onto recurrences using the
// wallet on either side.
func (s *RecurringTransferStore) DeleteByWallet(ctx context.Context, tx Execer, walletID int64) (int64, error) {
	if s.cfg.SoftDelete {
		res, err := tx.ExecContext(ctx,
			`UPDATE recurring_transfers SET deleted = 1, last_edit = ? WHERE (wallet_from = ? OR wallet_to = ?) AND deleted = 0`,
			Now(), walletID, walletID)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM recurring_transfers WHERE wallet_from = ? OR wallet_to = ?`, walletID, walletID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *RecurringTransferStore) GetByID(ctx context.Context, q Getter, id int64) (RecurringTransfer, error) {
	var row RecurringTransfer
	err := q.GetContext(ctx, &row, `
		SELECT id, description, wallet_from, wallet_to, money, note, place, event, confirmed, count_in_total, tax_money, start_date, last_occurrence, next_occurrence, rule, sync_id, last_edit, deleted
		FROM recurring_transfers
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return RecurringTransfer{}, err
	}
	return row, nil
}

// ListDue returns templates whose next occurrence is not after the
// given date.
func (s *RecurringTransferStore) ListDue(ctx context.Context, q Selecter, date string) ([]RecurringTransfer, error) {
	var rows []RecurringTransfer
	err := q.SelectContext(ctx, &rows, `
		SELECT id, description, wallet_from, wallet_to, money, note, place, event, confirmed, count_in_total, tax_money, start_date, last_occurrence, next_occurrence, rule, sync_id, last_edit, deleted
		FROM recurring_transfers
		WHERE deleted = 0 AND next_occurrence IS NOT NULL AND next_occurrence <= ?
	`, date)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
