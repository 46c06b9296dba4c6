package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fintracker/internal/store"
)

// Events, places, people and attachments are annotation entities:
// other rows point at them, they own nothing. Deleting one detaches
// it everywhere instead of cascading.

func (e *Engine) CreateEvent(ctx context.Context, in store.EventInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.events.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

func (e *Engine) UpdateEvent(ctx context.Context, id int64, in store.EventInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.events.Update(ctx, tx, id, in)
		return err
	})
}

func (e *Engine) DeleteEvent(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := e.events.ClearReferences(ctx, tx, id); err != nil {
			return err
		}
		_, err := e.events.Delete(ctx, tx, id)
		return err
	})
}

func (e *Engine) CreatePlace(ctx context.Context, in store.PlaceInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.places.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

func (e *Engine) UpdatePlace(ctx context.Context, id int64, in store.PlaceInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.places.Update(ctx, tx, id, in)
		return err
	})
}

func (e *Engine) DeletePlace(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := e.places.ClearReferences(ctx, tx, id); err != nil {
			return err
		}
		_, err := e.places.Delete(ctx, tx, id)
		return err
	})
}

func (e *Engine) CreatePerson(ctx context.Context, in store.PersonInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.people.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

func (e *Engine) UpdatePerson(ctx context.Context, id int64, in store.PersonInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.people.Update(ctx, tx, id, in)
		return err
	})
}

func (e *Engine) DeletePerson(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, links := range []*store.LinkStore{e.transactionPeople, e.transferPeople, e.debtPeople} {
			if _, err := links.DeleteByTarget(ctx, tx, id); err != nil {
				return err
			}
		}
		_, err := e.people.Delete(ctx, tx, id)
		return err
	})
}

func (e *Engine) CreateAttachment(ctx context.Context, in store.AttachmentInput) (int64, error) {
	var id int64
	err := e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = e.attachments.Insert(ctx, tx, in)
		return err
	})
	return id, err
}

func (e *Engine) UpdateAttachment(ctx context.Context, id int64, in store.AttachmentInput) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := e.attachments.Update(ctx, tx, id, in)
		return err
	})
}

func (e *Engine) DeleteAttachment(ctx context.Context, id int64) error {
	return e.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, links := range []*store.LinkStore{e.transactionAttachments, e.transferAttachments} {
			if _, err := links.DeleteByTarget(ctx, tx, id); err != nil {
				return err
			}
		}
		_, err := e.attachments.Delete(ctx, tx, id)
		return err
	})
}
