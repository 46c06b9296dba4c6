package store

import (
	"context"
	"database/sql"
)

// Debt types.
const (
	DebtTypeDebt   = 0
	DebtTypeCredit = 1
)

type DebtStore struct {
	db  DB
	cfg Config
}

type Debt struct {
	ID             int64          `db:"id"`
	Type           int            `db:"type"`
	Icon           string         `db:"icon"`
	Description    string         `db:"description"`
	Date           string         `db:"date"`
	ExpirationDate sql.NullString `db:"expiration_date"`
	Wallet         int64          `db:"wallet"`
	Note           string         `db:"note"`
	Place          sql.NullInt64  `db:"place"`
	Money          int64          `db:"money"`
	Archived       bool           `db:"archived"`
	SyncID         string         `db:"sync_id"`
	LastEdit       int64          `db:"last_edit"`
	Deleted        bool           `db:"deleted"`
}

type DebtInput struct {
	Type           int
	Icon           string
	Description    string
	Date           string
	ExpirationDate *string
	Wallet         int64
	Note           string
	Place          *int64
	Money          int64
	Archived       bool
}

func NewDebtStore(db DB, cfg Config) *DebtStore {
	return &DebtStore{db: db, cfg: cfg}
}

func (s *DebtStore) Insert(ctx context.Context, tx Execer, in DebtInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO debts (type, icon, description, date, expiration_date, wallet, note, place, money, archived, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Type, in.Icon, in.Description, in.Date, in.ExpirationDate, in.Wallet, in.Note, in.Place, in.Money, in.Archived, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *DebtStore) Update(ctx context.Context, tx Execer, id int64, in DebtInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE debts
		SET type = ?, icon = ?, description = ?, date = ?, expiration_date = ?, wallet = ?, note = ?, place = ?, money = ?, archived = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Type, in.Icon, in.Description, in.Date, in.ExpirationDate, in.Wallet, in.Note, in.Place, in.Money, in.Archived, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *DebtStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "debts", id)
}

// DeleteByWallet cascades a wallet removal onto its debts.
func (s *DebtStore) DeleteByWallet(ctx context.Context, tx Execer, walletID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, "debts", "wallet", walletID)
}

func (s *DebtStore) GetByID(ctx context.Context, q Getter, id int64) (Debt, error) {
	var row Debt
	err := q.GetContext(ctx, &row, `
		SELECT id, type, icon, description, date, expiration_date, wallet, note, place, money, archived, sync_id, last_edit, deleted
		FROM debts
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Debt{}, err
	}
	return row, nil
}
