package store

import (
	"context"
	"database/sql"
)

// TransactionModelStore holds reusable transaction templates used to
// prefill new entries. Models have no date and no recurrence.
type TransactionModelStore struct {
	db  DB
	cfg Config
}

type TransactionModel struct {
	ID           int64         `db:"id"`
	Money        int64         `db:"money"`
	Description  string        `db:"description"`
	Category     int64         `db:"category"`
	Direction    int           `db:"direction"`
	Wallet       int64         `db:"wallet"`
	Place        sql.NullInt64 `db:"place"`
	Note         string        `db:"note"`
	Event        sql.NullInt64 `db:"event"`
	Confirmed    bool          `db:"confirmed"`
	CountInTotal bool          `db:"count_in_total"`
	SyncID       string        `db:"sync_id"`
	LastEdit     int64         `db:"last_edit"`
	Deleted      bool          `db:"deleted"`
}

type TransactionModelInput struct {
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
}

func NewTransactionModelStore(db DB, cfg Config) *TransactionModelStore {
	return &TransactionModelStore{db: db, cfg: cfg}
}

func (s *TransactionModelStore) Insert(ctx context.Context, tx Execer, in TransactionModelInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO transaction_models (money, description, category, direction, wallet, place, note, event, confirmed, count_in_total, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Money, in.Description, in.Category, in.Direction, in.Wallet, in.Place, in.Note, in.Event, in.Confirmed, in.CountInTotal, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *TransactionModelStore) Update(ctx context.Context, tx Execer, id int64, in TransactionModelInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE transaction_models
		SET money = ?, description = ?, category = ?, direction = ?, wallet = ?, place = ?, note = ?, event = ?, confirmed = ?, count_in_total = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Money, in.Description, in.Category, in.Direction, in.Wallet, in.Place, in.Note, in.Event, in.Confirmed, in.CountInTotal, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *TransactionModelStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "transaction_models", id)
}

// DeleteByWallet cascades a wallet removal onto its models.
func (s *TransactionModelStore) DeleteByWallet(ctx context.Context, tx Execer, walletID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, "transaction_models", "wallet", walletID)
}

func (s *TransactionModelStore) GetByID(ctx context.Context, q Getter, id int64) (TransactionModel, error) {
	var row TransactionModel
	err := q.GetContext(ctx, &row, `
		SELECT id, money, description, category, direction, wallet, place, note, event, confirmed, count_in_total, sync_id, last_edit, deleted
		FROM transaction_models
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return TransactionModel{}, err
	}
	return row, nil
}

// TransferModelStore holds reusable transfer templates.
type TransferModelStore struct {
	db  DB
	cfg Config
}

type TransferModel struct {
	ID           int64         `db:"id"`
	Description  string        `db:"description"`
	WalletFrom   int64         `db:"wallet_from"`
	WalletTo     int64         `db:"wallet_to"`
	Money        int64         `db:"money"`
	Note         string        `db:"note"`
	Place        sql.NullInt64 `db:"place"`
	Event        sql.NullInt64 `db:"event"`
	Confirmed    bool          `db:"confirmed"`
	CountInTotal bool          `db:"count_in_total"`
	TaxMoney     int64         `db:"tax_money"`
	SyncID       string        `db:"sync_id"`
	LastEdit     int64         `db:"last_edit"`
	Deleted      bool          `db:"deleted"`
}

type TransferModelInput struct {
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
}

func NewTransferModelStore(db DB, cfg Config) *TransferModelStore {
	return &TransferModelStore{db: db, cfg: cfg}
}

func (s *TransferModelStore) Insert(ctx context.Context, tx Execer, in TransferModelInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO transfer_models (description, wallet_from, wallet_to, money, note, place, event, confirmed, count_in_total, tax_money, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Description, in.WalletFrom, in.WalletTo, in.Money, in.Note, in.Place, in.Event, in.Confirmed, in.CountInTotal, in.TaxMoney, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *TransferModelStore) Update(ctx context.Context, tx Execer, id int64, in TransferModelInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE transfer_models
		SET description = ?, wallet_from = ?, wallet_to = ?, money = ?, note = ?, place = ?, event = ?, confirmed = ?, count_in_total = ?, tax_money = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Description, in.WalletFrom, in.WalletTo, in.Money, in.Note, in.Place, in.Event, in.Confirmed, in.CountInTotal, in.TaxMoney, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *TransferModelStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "transfer_models", id)
}

// DeleteByWallet cascades a wallet removal onto transfer models using
// the wallet on either side.
func (s *TransferModelStore) DeleteByWallet(ctx context.Context, tx Execer, walletID int64) (int64, error) {
	if s.cfg.SoftDelete {
		res, err := tx.ExecContext(ctx,
			`UPDATE transfer_models SET deleted = 1, last_edit = ? WHERE (wallet_from = ? OR wallet_to = ?) AND deleted = 0`,
			Now(), walletID, walletID)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM transfer_models WHERE wallet_from = ? OR wallet_to = ?`, walletID, walletID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *TransferModelStore) GetByID(ctx context.Context, q Getter, id int64) (TransferModel, error) {
	var row TransferModel
	err := q.GetContext(ctx, &row, `
		SELECT id, description, wallet_from, wallet_to, money, note, place, event, confirmed, count_in_total, tax_money, sync_id, last_edit, deleted
		FROM transfer_models
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return TransferModel{}, err
	}
	return row, nil
}
