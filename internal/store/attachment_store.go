package store

import "context"

type AttachmentStore struct {
	db  DB
	cfg Config
}

type Attachment struct {
	ID       int64  `db:"id"`
	File     string `db:"file"`
	Name     string `db:"name"`
	Type     string `db:"type"`
	Size     int64  `db:"size"`
	SyncID   string `db:"sync_id"`
	LastEdit int64  `db:"last_edit"`
	Deleted  bool   `db:"deleted"`
}

type AttachmentInput struct {
	File string
	Name string
	Type string
	Size int64
}

func NewAttachmentStore(db DB, cfg Config) *AttachmentStore {
	return &AttachmentStore{db: db, cfg: cfg}
}

func (s *AttachmentStore) Insert(ctx context.Context, tx Execer, in AttachmentInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO attachments (file, name, type, size, sync_id, last_edit)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.File, in.Name, in.Type, in.Size, NewSyncID(), Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *AttachmentStore) Update(ctx context.Context, tx Execer, id int64, in AttachmentInput) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE attachments SET file = ?, name = ?, type = ?, size = ?, last_edit = ? WHERE id = ? AND deleted = 0
	`, in.File, in.Name, in.Type, in.Size, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *AttachmentStore) Delete(ctx context.Context, tx Execer, id int64) (int64, error) {
	return s.cfg.deleteRow(ctx, tx, "attachments", id)
}

func (s *AttachmentStore) GetByID(ctx context.Context, q Getter, id int64) (Attachment, error) {
	var row Attachment
	err := q.GetContext(ctx, &row, `
		SELECT id, file, name, type, size, sync_id, last_edit, deleted
		FROM attachments
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return Attachment{}, err
	}
	return row, nil
}
