package store

import "context"

type WalletStore struct {
	db  DB
	cfg Config
}

type Wallet struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Icon         string `db:"icon"`
	Currency     string `db:"currency"`
	Note         string `db:"note"`
	StartMoney   int64  `db:"start_money"`
	CountInTotal bool   `db:"count_in_total"`
	Archived     bool   `db:"archived"`
	Tag          string `db:"tag"`
	SortIndex    int    `db:"sort_index"`
	SyncID       string `db:"sync_id"`
	LastEdit     int64  `db:"last_edit"`
	Deleted      bool   `db:"deleted"`
}

type WalletInput struct {
	Name         string
	Icon         string
	Currency     string
	Note         string
	StartMoney   int64
	CountInTotal bool
	Archived     bool
	Tag          string
	SortIndex    int
}

func NewWalletStore(db DB, cfg Config) *WalletStore {
	return &WalletStore{db: db, cfg: cfg}
}

func (s *WalletStore) Insert(ctx context.Context, tx Execer, in WalletInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO wallets (name, icon, currency, note, start_money, count_in_total, archived, tag, sort_index, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Icon, in.Currency, in.Note, in.StartMoney, in.CountInTotal, in.Archived, in.Tag, in.SortIndex, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *WalletStore) Update(ctx context.Context, tx Execer, id int64, in WalletInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET name = ?, icon = ?, currency = ?, note = ?, start_money = ?, count_in_total = ?, archived = ?, tag = ?, sort_index = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Name, in.Icon, in.Currency, in.Note, in.StartMoney, in.CountInTotal, in.Archived, in.Tag, in.SortIndex, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *WalletStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "wallets", id)
}

func (s *WalletStore) GetByID(ctx context.Context, q Getter, id int64) (Wallet, error) {
	var row Wallet
	err := q.GetContext(ctx, &row, `
		SELECT id, name, icon, currency, note, start_money, count_in_total, archived, tag, sort_index, sync_id, last_edit, deleted
		FROM wallets
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Wallet{}, err
	}
	return row, nil
}

// ListByIDs returns the non-deleted wallets among ids, in no particular
// order. Missing ids are simply absent from the result.
func (s *WalletStore) ListByIDs(ctx context.Context, q Selecter, ids []int64) ([]Wallet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, name, icon, currency, note, start_money, count_in_total, archived, tag, sort_index, sync_id, last_edit, deleted
		FROM wallets
		WHERE deleted = 0 AND id IN (?` + repeatPlaceholder(len(ids)-1) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	var rows []Wallet
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListIDsByCurrency returns the ids of every non-deleted wallet
// denominated in iso.
func (s *WalletStore) ListIDsByCurrency(ctx context.Context, q Selecter, iso string) ([]int64, error) {
	var ids []int64
	err := q.SelectContext(ctx, &ids,
		`SELECT id FROM wallets WHERE currency = ? AND deleted = 0`, iso)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UsedInTransfer reports whether any of the wallet's transactions is a
// leg of a non-deleted transfer.
func (s *WalletStore) UsedInTransfer(ctx context.Context, q Getter, id int64) (bool, error) {
	var count int
	err := q.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM transfers f
		JOIN transactions t ON t.id IN (f.transaction_from, f.transaction_to, f.transaction_tax)
		WHERE f.deleted = 0 AND t.wallet = ?
	`, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}
