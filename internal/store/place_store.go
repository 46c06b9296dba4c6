package store

import (
	"context"
	"database/sql"
)

type PlaceStore struct {
	db  DB
	cfg Config
}

type Place struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Icon      string          `db:"icon"`
	Address   sql.NullString  `db:"address"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
	SyncID    string          `db:"sync_id"`
	LastEdit  int64           `db:"last_edit"`
	Deleted   bool            `db:"deleted"`
}

type PlaceInput struct {
	Name      string
	Icon      string
	Address   *string
	Latitude  *float64
	Longitude *float64
}

func NewPlaceStore(db DB, cfg Config) *PlaceStore {
	return &PlaceStore{db: db, cfg: cfg}
}

func (s *PlaceStore) Insert(ctx context.Context, tx Execer, in PlaceInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO places (name, icon, address, latitude, longitude, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Icon, in.Address, in.Latitude, in.Longitude, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *PlaceStore) Update(ctx context.Context, tx Execer, id int64, in PlaceInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE places
		SET name = ?, icon = ?, address = ?, latitude = ?, longitude = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Name, in.Icon, in.Address, in.Latitude, in.Longitude, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *PlaceStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "places", id)
}

func (s *PlaceStore) GetByID(ctx context.Context, q Getter, id int64) (Place, error) {
	var row Place
	err := q.GetContext(ctx, &row, `
		SELECT id, name, icon, address, latitude, longitude, sync_id, last_edit, deleted
		FROM places
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Place{}, err
	}
	return row, nil
}

// ClearReferences nulls the place pointer on every entity kind that can
// carry one.
func (s *PlaceStore) ClearReferences(ctx context.Context, tx Execer, id int64) error {
	tables := []string{"transactions", "transfers", "debts", "transaction_models", "transfer_models", "recurring_transactions", "recurring_transfers"}
	for _, table := range tables {
		if err := clearColumn(ctx, tx, table, "place", id); err != nil {
			return err
		}
	}
	return nil
}
