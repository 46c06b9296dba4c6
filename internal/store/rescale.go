package store

import (
	"context"

	"fintracker/internal/money"
)

// Rescaler rewrites stored monetary amounts after a currency precision
// change. The rewrite is a per-row scan, not a single arithmetic
// update: negative offsets round half up and zero tax amounts must
// stay zero, neither of which survives a blanket SQL expression.
// Soft-deleted rows are rewritten too, so a later sync never revives
// an amount at the wrong scale.
type Rescaler struct {
	db  DB
	cfg Config
}

func NewRescaler(db DB, cfg Config) *Rescaler {
	return &Rescaler{db: db, cfg: cfg}
}

type moneyRow struct {
	ID    int64 `db:"id"`
	Money int64 `db:"money"`
}

type twoMoneyRow struct {
	ID     int64 `db:"id"`
	First  int64 `db:"first"`
	Second int64 `db:"second"`
}

// Rescale applies the decimal offset (new decimals minus old) to every
// amount tied to the currency: wallet starting balances, then per
// wallet the debts, savings, transactions, models and recurrences, and
// finally the budgets denominated in it.
func (s *Rescaler) Rescale(ctx context.Context, tx DB, iso string, offset int) error {
	if offset == 0 {
		return nil
	}

	var wallets []moneyRow
	err := tx.SelectContext(ctx, &wallets,
		`SELECT id, start_money AS money FROM wallets WHERE currency = ?`, iso)
	if err != nil {
		return err
	}
	for _, w := range wallets {
		_, err := tx.ExecContext(ctx,
			`UPDATE wallets SET start_money = ?, last_edit = ? WHERE id = ?`,
			money.Rescale(w.Money, offset), Now(), w.ID)
		if err != nil {
			return err
		}
		if err := s.rescaleWallet(ctx, tx, w.ID, offset); err != nil {
			return err
		}
	}

	var budgets []moneyRow
	err = tx.SelectContext(ctx, &budgets,
		`SELECT id, money FROM budgets WHERE currency = ?`, iso)
	if err != nil {
		return err
	}
	for _, b := range budgets {
		_, err := tx.ExecContext(ctx,
			`UPDATE budgets SET money = ?, last_edit = ? WHERE id = ?`,
			money.Rescale(b.Money, offset), Now(), b.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Rescaler) rescaleWallet(ctx context.Context, tx DB, walletID int64, offset int) error {
	single := []struct {
		table  string
		column string
		where  string
	}{
		{"transactions", "money", "wallet"},
		{"debts", "money", "wallet"},
		{"transaction_models", "money", "wallet"},
		{"recurring_transactions", "money", "wallet"},
	}
	for _, t := range single {
		var rows []moneyRow
		err := tx.SelectContext(ctx, &rows,
			"SELECT id, "+t.column+" AS money FROM "+t.table+" WHERE "+t.where+" = ?", walletID)
		if err != nil {
			return err
		}
		for _, r := range rows {
			_, err := tx.ExecContext(ctx,
				"UPDATE "+t.table+" SET "+t.column+" = ?, last_edit = ? WHERE id = ?",
				money.Rescale(r.Money, offset), Now(), r.ID)
			if err != nil {
				return err
			}
		}
	}

	double := []struct {
		table   string
		first   string
		second  string
		where   string
	}{
		{"savings", "start_money", "end_money", "wallet"},
		{"transfer_models", "money", "tax_money", "wallet_from"},
		{"recurring_transfers", "money", "tax_money", "wallet_from"},
	}
	for _, t := range double {
		var rows []twoMoneyRow
		err := tx.SelectContext(ctx, &rows,
			"SELECT id, "+t.first+" AS first, "+t.second+" AS second FROM "+t.table+" WHERE "+t.where+" = ?", walletID)
		if err != nil {
			return err
		}
		for _, r := range rows {
			_, err := tx.ExecContext(ctx,
				"UPDATE "+t.table+" SET "+t.first+" = ?, "+t.second+" = ?, last_edit = ? WHERE id = ?",
				money.Rescale(r.First, offset), money.Rescale(r.Second, offset), Now(), r.ID)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
