package store

import "context"

type PersonStore struct {
	db  DB
	cfg Config
}

type Person struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Icon     string `db:"icon"`
	Note     string `db:"note"`
	SyncID   string `db:"sync_id"`
	LastEdit int64  `db:"last_edit"`
	Deleted  bool   `db:"deleted"`
}

type PersonInput struct {
	Name string
	Icon string
	Note string
}

func NewPersonStore(db DB, cfg Config) *PersonStore {
	return &PersonStore{db: db, cfg: cfg}
}

func (s *PersonStore) Insert(ctx context.Context, tx Execer, in PersonInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO people (name, icon, note, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?)
	`, in.Name, in.Icon, in.Note, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *PersonStore) Update(ctx context.Context, tx Execer, id int64, in PersonInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE people SET name = ?, icon = ?, note = ?, last_edit = ? WHERE id = ? AND deleted = 0
	`, in.Name, in.Icon, in.Note, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *PersonStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "people", id)
}

func (s *PersonStore) GetByID(ctx context.Context, q Getter, id int64) (Person, error) {
	var row Person
	err := q.GetContext(ctx, &row, `
		SELECT id, name, icon, note, sync_id, last_edit, deleted
		FROM people
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Person{}, err
	}
	return row, nil
}
