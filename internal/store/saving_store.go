package store

import (
	"context"
	"database/sql"
)

type SavingStore struct {
	db  DB
	cfg Config
}

type Saving struct {
	ID          int64          `db:"id"`
	Description string         `db:"description"`
	Icon        string         `db:"icon"`
	StartMoney  int64          `db:"start_money"`
	EndMoney    int64          `db:"end_money"`
	Wallet      int64          `db:"wallet"`
	EndDate     sql.NullString `db:"end_date"`
	Complete    bool           `db:"complete"`
	Note        string         `db:"note"`
	SyncID      string         `db:"sync_id"`
	LastEdit    int64          `db:"last_edit"`
	Deleted     bool           `db:"deleted"`
}

type SavingInput struct {
	Description string
	Icon        string
	StartMoney  int64
	EndMoney    int64
	Wallet      int64
	EndDate     *string
	Complete    bool
	Note        string
}

func NewSavingStore(db DB, cfg Config) *SavingStore {
	return &SavingStore{db: db, cfg: cfg}
}

func (s *SavingStore) Insert(ctx context.Context, tx Execer, in SavingInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO savings (description, icon, start_money, end_money, wallet, end_date, complete, note, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Description, in.Icon, in.StartMoney, in.EndMoney, in.Wallet, in.EndDate, in.Complete, in.Note, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SavingStore) Update(ctx context.Context, tx Execer, id int64, in SavingInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE savings
		SET description = ?, icon = ?, start_money = ?, end_money = ?, wallet = ?, end_date = ?, complete = ?, note = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Description, in.Icon, in.StartMoney, in.EndMoney, in.Wallet, in.EndDate, in.Complete, in.Note, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SavingStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "savings", id)
}

// DeleteByWallet cascades a wallet removal onto its savings.
func (s *SavingStore) DeleteByWallet(ctx context.Context, tx Execer, walletID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, "savings", "wallet", walletID)
}

func (s *SavingStore) GetByID(ctx context.Context, q Getter, id int64) (Saving, error) {
	var row Saving
	err := q.GetContext(ctx, &row, `
		SELECT id, description, icon, start_money, end_money, wallet, end_date, complete, note, sync_id, last_edit, deleted
		FROM savings
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Saving{}, err
	}
	return row, nil
}
