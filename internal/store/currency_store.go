package store

import (
	"context"
	"database/sql"
	"errors"

	"fintracker/internal/money"
)

type CurrencyStore struct {
	db  DB
	cfg Config
}

type Currency struct {
	ISO       string `db:"iso"`
	Name      string `db:"name"`
	Symbol    string `db:"symbol"`
	Decimals  int    `db:"decimals"`
	Favourite bool   `db:"favourite"`
	SyncID    string `db:"sync_id"`
	LastEdit  int64  `db:"last_edit"`
	Deleted   bool   `db:"deleted"`
}

type CurrencyInput struct {
	ISO       string
	Name      string
	Symbol    string
	Decimals  int
	Favourite bool
}

func NewCurrencyStore(db DB, cfg Config) *CurrencyStore {
	return &CurrencyStore{db: db, cfg: cfg}
}

func (s *CurrencyStore) Insert(ctx context.Context, tx Execer, in CurrencyInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO currencies (iso, name, symbol, decimals, favourite, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.ISO, in.Name, in.Symbol, money.ClampDecimals(in.Decimals), in.Favourite, NewSyncID(), Now())
	return err
}

func (s *CurrencyStore) Update(ctx context.Context, tx Execer, iso string, in CurrencyInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE currencies
		SET name = ?, symbol = ?, decimals = ?, favourite = ?, last_edit = ?
		WHERE iso = ? AND deleted = 0
	`, in.Name, in.Symbol, money.ClampDecimals(in.Decimals), in.Favourite, Now(), iso)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *CurrencyStore) Delete(ctx context.Context, tx Execer, iso string) (int64, error) {
	if s.cfg.SoftDelete {
		res, err := tx.ExecContext(ctx,
			`UPDATE currencies SET deleted = 1, last_edit = ? WHERE iso = ? AND deleted = 0`, Now(), iso)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM currencies WHERE iso = ?`, iso)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *CurrencyStore) GetByISO(ctx context.Context, q Getter, iso string) (Currency, error) {
	var row Currency
	err := q.GetContext(ctx, &row, `
		SELECT iso, name, symbol, decimals, favourite, sync_id, last_edit, deleted
		FROM currencies
		WHERE iso = ? AND deleted = 0
	`, iso)
	if err != nil {
		return Currency{}, err
	}
	return row, nil
}

// Exists reports whether a non-deleted currency is registered.
func (s *CurrencyStore) Exists(ctx context.Context, q Getter, iso string) (bool, error) {
	var one int
	err := q.GetContext(ctx, &one, `SELECT 1 FROM currencies WHERE iso = ? AND deleted = 0`, iso)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InUse reports whether any non-deleted wallet is denominated in iso.
func (s *CurrencyStore) InUse(ctx context.Context, q Getter, iso string) (bool, error) {
	var count int
	err := q.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM wallets WHERE currency = ? AND deleted = 0`, iso)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
