package store

import "context"

type EventStore struct {
	db  DB
	cfg Config
}

type Event struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Icon      string `db:"icon"`
	Note      string `db:"note"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	SyncID    string `db:"sync_id"`
	LastEdit  int64  `db:"last_edit"`
	Deleted   bool   `db:"deleted"`
}

type EventInput struct {
	Name      string
	Icon      string
	Note      string
	StartDate string
	EndDate   string
}

func NewEventStore(db DB, cfg Config) *EventStore {
	return &EventStore{db: db, cfg: cfg}
}

func (s *EventStore) Insert(ctx context.Context, tx Execer, in EventInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO events (name, icon, note, start_date, end_date, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Icon, in.Note, in.StartDate, in.EndDate, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *EventStore) Update(ctx context.Context, tx Execer, id int64, in EventInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE events
		SET name = ?, icon = ?, note = ?, start_date = ?, end_date = ?, last_edit = ?
		WHERE id = ? AND deleted = 0
	`, in.Name, in.Icon, in.Note, in.StartDate, in.EndDate, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *EventStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "events", id)
}

// ClearReferences nulls the event pointer on every row that carries
// it. Transactions and templates outlive the event they were filed
// under.
func (s *EventStore) ClearReferences(ctx context.Context, tx Execer, id int64) error {
	for _, table := range []string{
		"transactions", "transfers",
		"transaction_models", "transfer_models",
		"recurring_transactions", "recurring_transfers",
	} {
		if err := clearColumn(ctx, tx, table, "event", id); err != nil {
			return err
		}
	}
	return nil
}

func (s *EventStore) GetByID(ctx context.Context, q Getter, id int64) (Event, error) {
	var row Event
	err := q.GetContext(ctx, &row, `
		SELECT id, name, icon, note, start_date, end_date, sync_id, last_edit, deleted
		FROM events
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Event{}, err
	}
	return row, nil
}
