package store

import (
	"context"
	"database/sql"
	"errors"
)

// Category types.
const (
	CategoryTypeExpense = 0
	CategoryTypeIncome  = 1
	CategoryTypeSystem  = 2
)

// Tags of the pre-seeded system categories.
const (
	TagTransfer       = "transfer"
	TagTransferTax    = "transfer_tax"
	TagDebt           = "debt"
	TagCredit         = "credit"
	TagPaidDebt       = "paid_debt"
	TagPaidCredit     = "paid_credit"
	TagSavingDeposit  = "saving_deposit"
	TagSavingWithdraw = "saving_withdraw"
)

type CategoryStore struct {
	db  DB
	cfg Config
}

type Category struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Icon       string         `db:"icon"`
	Type       int            `db:"type"`
	Parent     sql.NullInt64  `db:"parent"`
	ShowReport bool           `db:"show_report"`
	SortIndex  int            `db:"sort_index"`
	Tag        sql.NullString `db:"tag"`
	SyncID     string         `db:"sync_id"`
	LastEdit   int64          `db:"last_edit"`
	Deleted    bool           `db:"deleted"`
}

type CategoryInput struct {
	Name       string
	Icon       string
	Type       int
	Parent     *int64
	ShowReport bool
	SortIndex  int
}

func NewCategoryStore(db DB, cfg Config) *CategoryStore {
	return &CategoryStore{db: db, cfg: cfg}
}

func (s *CategoryStore) Insert(ctx context.Context, tx Execer, in CategoryInput) (int64, error) {
	sortIndex := in.SortIndex
	if in.Parent != nil {
		// children keep a flat ordering under their parent
		sortIndex = 0
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO categories (name, icon, type, parent, show_report, sort_index, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Icon, in.Type, in.Parent, in.ShowReport, sortIndex, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *CategoryStore) Update(ctx context.Context, tx Execer, id int64, in CategoryInput) (int64, error) {
	sortIndex := in.SortIndex
	if in.Parent != nil {
		sortIndex = 0
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE categories
		SET name = ?, icon = ?, type = ?, parent = ?, show_report = ?, sort_index = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Name, in.Icon, in.Type, in.Parent, in.ShowReport, sortIndex, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateShowReport flips the one field a system category may change.
func (s *CategoryStore) UpdateShowReport(ctx context.Context, tx Execer, id int64, show bool) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE categories SET show_report = ?, last_edit = ? WHERE id = ? AND deleted = 0`, show, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *CategoryStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "categories", id)
}

func (s *CategoryStore) GetByID(ctx context.Context, q Getter, id int64) (Category, error) {
	var row Category
	err := q.GetContext(ctx, &row, `
		SELECT id, name, icon, type, parent, show_report, sort_index, tag, sync_id, last_edit, deleted
		FROM categories
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Category{}, err
	}
	return row, nil
}

// GetByTag resolves a system category by its address tag.
func (s *CategoryStore) GetByTag(ctx context.Context, q Getter, tag string) (Category, error) {
	var row Category
	err := q.GetContext(ctx, &row, `
		SELECT id, name, icon, type, parent, show_report, sort_index, tag, sync_id, last_edit, deleted
		FROM categories
		WHERE tag = ? AND deleted = 0
	`, tag)
	if err != nil {
		return Category{}, err
	}
	return row, nil
}

// HasChildren reports whether any non-deleted category points at id as
// its parent.
func (s *CategoryStore) HasChildren(ctx context.Context, q Getter, id int64) (bool, error) {
	var count int
	err := q.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM categories WHERE parent = ? AND deleted = 0`, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InUse reports whether any non-deleted transaction, model, recurrence
// or budget references the category.
func (s *CategoryStore) InUse(ctx context.Context, q Getter, id int64) (bool, error) {
	tables := []string{"transactions", "transaction_models", "recurring_transactions", "budgets"}
	for _, table := range tables {
		var count int
		err := q.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM "+table+" WHERE category = ? AND deleted = 0", id)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// RestampDirections rewrites the direction of every transaction using
// the category after its type flipped between income and expense.
func (s *CategoryStore) RestampDirections(ctx context.Context, tx Execer, id int64, direction int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE transactions SET direction = ?, last_edit = ? WHERE category = ? AND deleted = 0`,
		direction, Now(), id)
	return err
}
