package store

import (
	"context"
	"database/sql"
)

// Budget types.
const (
	BudgetTypeExpenses = 0
	BudgetTypeIncomes  = 1
	BudgetTypeCategory = 2
)

type BudgetStore struct {
	db  DB
	cfg Config
}

type Budget struct {
	ID        int64         `db:"id"`
	Type      int           `db:"type"`
	Category  sql.NullInt64 `db:"category"`
	StartDate string        `db:"start_date"`
	EndDate   string        `db:"end_date"`
	Money     int64         `db:"money"`
	Currency  string        `db:"currency"`
	SyncID    string        `db:"sync_id"`
	LastEdit  int64         `db:"last_edit"`
	Deleted   bool          `db:"deleted"`
}

type BudgetInput struct {
	Type      int
	Category  *int64
	StartDate string
	EndDate   string
	Money     int64
	Currency  string
}

func NewBudgetStore(db DB, cfg Config) *BudgetStore {
	return &BudgetStore{db: db, cfg: cfg}
}

func (s *BudgetStore) Insert(ctx context.Context, tx Execer, in BudgetInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO budgets (type, category, start_date, end_date, money, currency, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Type, in.Category, in.StartDate, in.EndDate, in.Money, in.Currency, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *BudgetStore) Update(ctx context.Context, tx Execer, id int64, in BudgetInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE budgets
		SET type = ?, category = ?, start_date = ?, end_date = ?, money = ?, currency = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Type, in.Category, in.StartDate, in.EndDate, in.Money, in.Currency, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *BudgetStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "budgets", id)
}

func (s *BudgetStore) GetByID(ctx context.Context, q Getter, id int64) (Budget, error) {
	var row Budget
	err := q.GetContext(ctx, &row, `
		SELECT id, type, category, start_date, end_date, money, currency, sync_id, last_edit, deleted
		FROM budgets
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Budget{}, err
	}
	return row, nil
}

// ListByCurrency returns every non-deleted budget denominated in iso.
func (s *BudgetStore) ListByCurrency(ctx context.Context, q Selecter, iso string) ([]Budget, error) {
	var rows []Budget
	err := q.SelectContext(ctx, &rows, `
		SELECT id, type, category, start_date, end_date, money, currency, sync_id, last_edit, deleted
		FROM budgets
		WHERE currency = ? AND deleted = 0
	`, iso)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SetMoney rewrites a budget target amount in place.
func (s *BudgetStore) SetMoney(ctx context.Context, tx Execer, id, amount int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE budgets SET money = ?, last_edit = ? WHERE id = ?`, amount, Now(), id)
	return err
}
