package store

import (
	"context"

	"fintracker/internal/schema"
)

// LinkStore manages one many-to-many association table. All link
// tables share the same shape: owner id, target id, stable identifier,
// timestamp, soft-delete flag, with a unique (owner, target) pair.
type LinkStore struct {
	db        DB
	cfg       Config
	table     string
	ownerCol  string
	targetCol string
}

func NewLinkStore(db DB, cfg Config, table, ownerCol, targetCol string) *LinkStore {
	return &LinkStore{db: db, cfg: cfg, table: table, ownerCol: ownerCol, targetCol: targetCol}
}

func NewTransactionPeople(db DB, cfg Config) *LinkStore {
	return NewLinkStore(db, cfg, schema.TableTransactionPeople, "transaction_id", "person_id")
}

func NewTransactionAttachments(db DB, cfg Config) *LinkStore {
	return NewLinkStore(db, cfg, schema.TableTransactionAttachments, "transaction_id", "attachment_id")
}

func NewTransferPeople(db DB, cfg Config) *LinkStore {
	return NewLinkStore(db, cfg, schema.TableTransferPeople, "transfer_id", "person_id")
}

func NewTransferAttachments(db DB, cfg Config) *LinkStore {
	return NewLinkStore(db, cfg, schema.TableTransferAttachments, "transfer_id", "attachment_id")
}

func NewDebtPeople(db DB, cfg Config) *LinkStore {
	return NewLinkStore(db, cfg, schema.TableDebtPeople, "debt_id", "person_id")
}

func NewBudgetWallets(db DB, cfg Config) *LinkStore {
	return NewLinkStore(db, cfg, schema.TableBudgetWallets, "budget_id", "wallet_id")
}

// Reconcile makes the association set of owner equal to targets. It
// first flags every current link deleted, then upserts each target:
// an insert that collides on the (owner, target) pair instead revives
// the existing row, keeping its stable identifier. No read-then-diff
// step; the redundant writes are the price of a predictable write
// path.
func (s *LinkStore) Reconcile(ctx context.Context, tx Execer, ownerID int64, targets []int64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE "+s.table+" SET deleted = 1, last_edit = ? WHERE "+s.ownerCol+" = ?", Now(), ownerID)
	if err != nil {
		return err
	}
	for _, target := range targets {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO "+s.table+" ("+s.ownerCol+", "+s.targetCol+", sync_id, last_edit) VALUES (?, ?, ?, ?)"+
				" ON CONFLICT("+s.ownerCol+", "+s.targetCol+") DO UPDATE SET deleted = 0, last_edit = excluded.last_edit",
			ownerID, target, NewSyncID(), Now())
		if err != nil {
			return err
		}
	}
	return nil
}

// TargetIDs returns the live target ids for owner in insertion order.
func (s *LinkStore) TargetIDs(ctx context.Context, q Selecter, ownerID int64) ([]int64, error) {
	var ids []int64
	err := q.SelectContext(ctx, &ids,
		"SELECT "+s.targetCol+" FROM "+s.table+" WHERE "+s.ownerCol+" = ? AND deleted = 0 ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByOwner removes every link of owner, honoring the delete mode.
func (s *LinkStore) DeleteByOwner(ctx context.Context, tx Execer, ownerID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, s.table, s.ownerCol, ownerID)
}

// DeleteByTarget removes every link pointing at target, honoring the
// delete mode. Used when a person or attachment goes away.
func (s *LinkStore) DeleteByTarget(ctx context.Context, tx Execer, targetID int64) (int64, error) {
	return s.cfg.deleteWhere(ctx, tx, s.table, s.targetCol, targetID)
}
