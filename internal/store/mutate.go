package store

import "context"

// deleteRow removes one row by id honoring the delete mode: flagged
// when SoftDelete is on, physical otherwise. Returns rows affected.
func (c Config) deleteRow(ctx context.Context, tx Execer, table string, id int64) (int64, error) {
	if c.SoftDelete {
		res, err := tx.ExecContext(ctx,
			"UPDATE "+table+" SET deleted = 1, last_edit = ? WHERE id = ? AND deleted = 0", Now(), id)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// deleteWhere removes every row matching a single-column condition,
// honoring the delete mode. Used by ownership cascades.
func (c Config) deleteWhere(ctx context.Context, tx Execer, table, column string, value any) (int64, error) {
	if c.SoftDelete {
		res, err := tx.ExecContext(ctx,
			"UPDATE "+table+" SET deleted = 1, last_edit = ? WHERE "+column+" = ? AND deleted = 0", Now(), value)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+column+" = ?", value)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// clearColumn nulls an optional reference column on every row pointing
// at value. Used when a place or event goes away: the referents stay,
// the pointer is dropped.
func clearColumn(ctx context.Context, tx Execer, table, column string, value any) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE "+table+" SET "+column+" = NULL, last_edit = ? WHERE "+column+" = ?", Now(), value)
	return err
}
