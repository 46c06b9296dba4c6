package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type DB interface {
	Execer
	Getter
	Selecter
}

type Tx interface {
	Execer
	Getter
}

// Config carries store-wide options fixed at construction.
type Config struct {
	// SoftDelete flags rows instead of removing them, so deletions can
	// be synchronized to other devices later. Reads always skip
	// flagged rows.
	SoftDelete bool
}

// DateLayout is the stored format of all entity dates.
const DateLayout = "2006-01-02"

// Now returns the timestamp written into last_edit columns.
func Now() int64 {
	return time.Now().UTC().Unix()
}

// NewSyncID mints a fresh stable identifier.
func NewSyncID() string {
	return uuid.NewString()
}
