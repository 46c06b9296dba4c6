package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/store"
)

// CreateCategory enforces the hierarchy rules: one level deep at most,
// children share the parent's type, and the system type is reserved
// for the seeded rows.
func (e *Engine) CreateCategory(ctx context.Context, in store.CategoryInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if in.Type == store.CategoryTypeSystem {
			return store.ErrSystemCategoryNotModifiable
		}
		if err := e.checkCategoryParent(ctx, tx, in); err != nil {
			return err
		}
		var err error
		id, err = e.categories.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

// UpdateCategory rewrites a category. Flipping the type between
// expense and income restamps the direction of every transaction
// filed under it; a type change is refused while the category has
// children, since they would stop matching their parent.
func (e *Engine) UpdateCategory(ctx context.Context, id int64, in store.CategoryInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := e.categories.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.Type == store.CategoryTypeSystem || in.Type == store.CategoryTypeSystem {
			return store.ErrSystemCategoryNotModifiable
		}
		if in.Parent != nil && *in.Parent == id {
			return store.ErrCategoryHierarchyNotSupported
		}
		if in.Parent != nil {
			hasChildren, err := e.categories.HasChildren(ctx, tx, id)
			if err != nil {
				return err
			}
			if hasChildren {
				return store.ErrCategoryHierarchyNotSupported
			}
		}
		if err := e.checkCategoryParent(ctx, tx, in); err != nil {
			return err
		}
		if in.Type != current.Type {
			hasChildren, err := e.categories.HasChildren(ctx, tx, id)
			if err != nil {
				return err
			}
			if hasChildren {
				return store.ErrCategoryNotConsistent
			}
		}
		if _, err := e.categories.Update(ctx, tx, id, in); err != nil {
			return err
		}
		if in.Type != current.Type {
			return e.categories.RestampDirections(ctx, tx, id, in.Type)
		}
		return nil
	})
}

// SetCategoryShowReport toggles report visibility. It is the one field
// the seeded system categories may change.
func (e *Engine) SetCategoryShowReport(ctx context.Context, id int64, show bool) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.categories.UpdateShowReport(ctx, tx, id, show)
		return err
	})
}

func (e *Engine) DeleteCategory(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := e.categories.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.Type == store.CategoryTypeSystem {
			return store.ErrSystemCategoryNotModifiable
		}
		hasChildren, err := e.categories.HasChildren(ctx, tx, id)
		if err != nil {
			return err
		}
		if hasChildren {
			return store.ErrCategoryHasChildren
		}
		inUse, err := e.categories.InUse(ctx, tx, id)
		if err != nil {
			return err
		}
		if inUse {
			return store.ErrCategoryInUse
		}
		_, err = e.categories.Delete(ctx, tx, id)
		return err
	})
}

func (e *Engine) checkCategoryParent(ctx context.Context, tx store.Tx, in store.CategoryInput) error {
	if in.Parent == nil {
		return nil
	}
	parent, err := e.categories.GetByID(ctx, tx, *in.Parent)
	if err != nil {
		return err
	}
	if parent.Parent.Valid {
		return store.ErrCategoryHierarchyNotSupported
	}
	if parent.Type != in.Type {
		return store.ErrCategoryNotConsistent
	}
	return nil
}
